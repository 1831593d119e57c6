package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"commutectl/pkg/commute"
	"commutectl/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// These act as fallbacks initially, but are replaced by GetTheme()
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// GetTheme loads the user's saved accent color and constructs the UI theme.
func GetTheme() *huh.Theme {
	cfg, err := config.Load()
	baseColor := "42" // Default FL1 green

	if err == nil && cfg != nil && cfg.AccentColor != "" {
		baseColor = cfg.AccentColor
	}

	// Update the global lipgloss accent so plain CLI output also receives the color
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))

	return GetCustomTheme(baseColor)
}

// GetCustomTheme builds a huh.Theme around baseColor
func GetCustomTheme(baseColor string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	// Softer borders for unfocused elements
	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// RunTUI launches the main menu interactive form experience
func RunTUI(ctx context.Context, planner *commute.Planner, opts RenderOptions) error {
	var action string

	initialForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("🚆 Next Departures", "board"),
					huh.NewOption("🧭 Preview Commute Leg", "leg"),
					huh.NewOption("⚙️ Settings", "config"),
				).
				Value(&action),
		),
	).WithTheme(GetTheme())

	if err := initialForm.Run(); err != nil {
		return err
	}

	switch action {
	case "leg":
		return runLegPreviewTUI(planner.Settings())
	case "config":
		return RunConfigTUI()
	}

	return RunBoardView(ctx, planner, time.Now(), opts)
}

func runLegPreviewTUI(settings commute.Settings) error {
	var hourStr string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Which hour do you want to preview?").
				Description("Enter an hour between 0 and 23.").
				Placeholder(strconv.Itoa(time.Now().In(settings.Loc()).Hour())).
				Value(&hourStr).
				Validate(func(v string) error {
					if v == "" {
						return nil // Default to the current hour
					}
					h, err := strconv.Atoi(v)
					if err != nil || h < 0 || h > 23 {
						return fmt.Errorf("please enter a valid hour between 0 and 23")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	hour := time.Now().In(settings.Loc()).Hour()
	if hourStr != "" {
		hour, _ = strconv.Atoi(hourStr)
	}

	fmt.Println(RenderLeg(commute.ResolveLeg(settings, hour), hour))
	return nil
}
