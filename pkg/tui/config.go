package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"commutectl/pkg/commute"
	"commutectl/pkg/config"
	"commutectl/pkg/transit"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("❌ %v", err)))
			fmt.Println("Editing the default configuration instead; saving replaces the current file.")
			cfg = config.Default()
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Appearance (Accent, Trains Shown)", "appearance"),
						huh.NewOption("Set Morning Station (Outbound)", "outbound"),
						huh.NewOption("Set Evening Station (Inbound)", "inbound"),
						huh.NewOption("Set Switch Hours", "cutoffs"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "appearance":
			err = runSetAppearanceTUI(cfg)
		case "outbound":
			err = runSetStationTUI(cfg, &cfg.Outbound, "morning")
		case "inbound":
			err = runSetStationTUI(cfg, &cfg.Inbound, "evening")
		case "cutoffs":
			err = runSetCutoffsTUI(cfg)
		case "view":
			fmt.Println(RenderConfig(cfg))
		}

		if err != nil {
			return err
		}
	}
}

// RenderConfig summarises the current configuration
func RenderConfig(cfg *config.AppConfig) string {
	path, _ := config.Path()

	var b strings.Builder
	b.WriteString(accentStyle.Render(fmt.Sprintf("\n--- Current Configuration (%s) ---", path)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Morning: %s (%s) → %s until %d:00\n", cfg.Outbound.Origin, cfg.Outbound.StationCode, cfg.Outbound.Destination, cfg.MorningCutoff)
	fmt.Fprintf(&b, "Evening: %s (%s) → %s until %d:00\n", cfg.Inbound.Origin, cfg.Inbound.StationCode, cfg.Inbound.Destination, cfg.EveningCutoff)
	fmt.Fprintf(&b, "Timezone: %s\n", cfg.Timezone)
	fmt.Fprintf(&b, "Departures shown: %d\n", cfg.DisplayLimit)
	fmt.Fprintf(&b, "Accent Color: %s\n", cfg.AccentColor)
	return b.String()
}

func runSetStationTUI(cfg *config.AppConfig, leg *config.LegConfig, label string) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Which station do you leave from in the %s?", label)).
				Description("The departure board of this station is queried for live trains.").
				Placeholder("e.g. Roma Tuscolana").
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "" {
		fmt.Println("Operation cancelled: No station provided.")
		return nil
	}

	client := transit.NewClient(transit.WithBaseURL(cfg.Transit.BaseURL))
	var stations []transit.Station
	var fetchErr error

	_ = spinner.New().
		Title(fmt.Sprintf("Searching ViaggiaTreno for '%s'...", input)).
		Action(func() {
			stations, fetchErr = client.FetchStations(context.Background(), input)
		}).
		Run()

	if fetchErr != nil {
		return fmt.Errorf("could not lookup station: %w", fetchErr)
	}

	if len(stations) == 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("❌ No matching stations found for '%s'", input)))
		return nil
	}

	var options []huh.Option[string]
	for _, s := range stations {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", titleCaser.String(s.LongName), s.ID), s.ID))
	}

	var selected string
	pickForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pick the matching station").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := pickForm.Run(); err != nil {
		return err
	}

	for _, s := range stations {
		if s.ID == selected {
			leg.Origin = titleCaser.String(s.LongName)
			leg.StationCode = s.ID
		}
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Saved %s station: %s (ID: %s)\n", label, leg.Origin, leg.StationCode)))
	return nil
}

func runSetCutoffsTUI(cfg *config.AppConfig) error {
	morning := strconv.Itoa(cfg.MorningCutoff)
	evening := strconv.Itoa(cfg.EveningCutoff)

	hourValidator := func(v string) error {
		h, err := strconv.Atoi(v)
		if err != nil || h < 0 || h > 24 {
			return fmt.Errorf("please enter an hour between 0 and 24")
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Switch to the evening leg at (hour)").
				Value(&morning).
				Validate(hourValidator),
			huh.NewInput().
				Title("Switch back to the morning leg at (hour)").
				Value(&evening).
				Validate(hourValidator),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.MorningCutoff, _ = strconv.Atoi(morning)
	cfg.EveningCutoff, _ = strconv.Atoi(evening)

	if err := cfg.Validate(); err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("❌ %v", err)))
		return nil
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Commute switches at %d:00 and %d:00\n", cfg.MorningCutoff, cfg.EveningCutoff)))
	return nil
}

// accentPalette lists the preset accents offered before a custom hex code
var accentPalette = []struct {
	Name  string
	Color string
}{
	{"FL1 Green", "42"},
	{"Tuscolana Purple", "99"},
	{"Tiber Blue", "86"},
	{"Frecciarossa Red", "196"},
}

const customAccent = "custom"

// runSetAppearanceTUI edits the accent and the number of trains in a single form.
// The hex input is only shown when a custom accent is picked.
func runSetAppearanceTUI(cfg *config.AppConfig) error {
	accent, hexInput := splitAccent(cfg.AccentColor)
	limit := cfg.DisplayLimit

	accentOptions := make([]huh.Option[string], 0, len(accentPalette)+1)
	for _, p := range accentPalette {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("● " + p.Name)
		accentOptions = append(accentOptions, huh.NewOption(swatch, p.Color))
	}
	accentOptions = append(accentOptions, huh.NewOption("✨ Custom hex code", customAccent))

	limitOptions := make([]huh.Option[int], 0, commute.MaxDepartures)
	for n := 1; n <= commute.MaxDepartures; n++ {
		limitOptions = append(limitOptions, huh.NewOption(strconv.Itoa(n), n))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Accent color").
				Options(accentOptions...).
				Value(&accent),
			huh.NewSelect[int]().
				Title("Trains shown on the board").
				Options(limitOptions...).
				Value(&limit),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Hex color code").
				Description("Example: #00A651").
				Placeholder("#").
				Value(&hexInput).
				Validate(ValidateHexColor),
		).WithHideFunc(func() bool { return accent != customAccent }),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	accent = joinAccent(accent, hexInput)
	cfg.AccentColor = accent
	cfg.DisplayLimit = limit

	if err := config.Save(cfg); err != nil {
		return err
	}

	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Accent %s saved, showing %d trains.\n", accent, limit)))
	return nil
}

// splitAccent maps a saved accent to the select value and the custom hex input
func splitAccent(saved string) (choice, hex string) {
	if strings.HasPrefix(saved, "#") {
		return customAccent, saved
	}
	return saved, ""
}

func joinAccent(choice, hex string) string {
	if choice == customAccent {
		return hex
	}
	return choice
}

// ValidateHexColor accepts #RRGGBB codes
func ValidateHexColor(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	for _, r := range str[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fmt.Errorf("must be a valid 6-character hex code starting with #")
		}
	}
	return nil
}
