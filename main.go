package main

import "commutectl/cmd"

func main() {
	cmd.Execute()
}
