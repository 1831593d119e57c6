package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"commutectl/pkg/commute"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nightServiceEnd is the hour after which daytime frequencies resume
const nightServiceEnd = 6

var (
	urgentColor = lipgloss.Color("#ff4757")
	soonColor   = lipgloss.Color("#ffa502")
	normalColor = lipgloss.Color("#ffffff")
	laterColor  = lipgloss.Color("#a4b0be")

	outboundBackground = lipgloss.Color("#2c5530")
	inboundBackground  = lipgloss.Color("#2d4a3a")

	titleCaser = cases.Title(language.Italian)
)

// RenderOptions controls how a board is drawn
type RenderOptions struct {
	Limit          int
	ShowProvenance bool
}

func urgencyStyle(u commute.Urgency) (lipgloss.Style, string) {
	base := lipgloss.NewStyle()
	switch u {
	case commute.Urgent:
		return base.Foreground(urgentColor), "🏃"
	case commute.Soon:
		return base.Foreground(soonColor), "⚡"
	case commute.Later:
		return base.Foreground(laterColor), "•"
	default:
		return base.Foreground(normalColor), "•"
	}
}

// departureLine formats "HH:MM +Dm (Nm)" for one status
func departureLine(st commute.DepartureStatus) string {
	delayText := ""
	if st.DelayMinutes > 0 {
		delayText = fmt.Sprintf(" +%dm", st.DelayMinutes)
	}
	minutesText := " (now!)"
	if st.MinutesUntil > 0 {
		minutesText = fmt.Sprintf(" (%dm)", st.MinutesUntil)
	}
	return st.DisplayTime + delayText + minutesText
}

// footerText picks the hint shown below the departures
func footerText(settings commute.Settings, leg commute.CommuteLeg, hour int) string {
	switch {
	case leg.Direction == commute.Outbound && settings.Outbound.Mock.InPeak(hour):
		return "Morning peak - allow extra time"
	case hour >= settings.EveningCutoff || hour < nightServiceEnd:
		return "Limited night service"
	default:
		return fmt.Sprintf("Auto-switches at %d:00", commute.NextSwitchHour(settings, hour))
	}
}

// RenderBoard draws the departure board. It only consumes the classified
// statuses; live and synthesized boards look the same unless ShowProvenance is set.
func RenderBoard(board commute.Board, settings commute.Settings, opts RenderOptions) string {
	leg := board.Leg
	now := board.Now.In(settings.Loc())

	bg := outboundBackground
	if leg.Direction == commute.Inbound {
		bg = inboundBackground
	}

	header := lipgloss.NewStyle().Bold(true).Render(strings.TrimSpace(fmt.Sprintf("%s %s %s", leg.Icon, leg.Origin, now.Format(commute.DisplayLayout))))
	subtitle := lipgloss.NewStyle().Faint(true).Render("→ " + leg.Destination)

	lines := []string{header, subtitle, ""}

	statuses := board.Statuses
	if opts.Limit > 0 && len(statuses) > opts.Limit {
		statuses = statuses[:opts.Limit]
	}

	if len(statuses) == 0 {
		lines = append(lines, "No trains scheduled")
	}

	for _, st := range statuses {
		style, prefix := urgencyStyle(st.Urgency)
		lines = append(lines, style.Bold(true).Render(fmt.Sprintf("%s %s", prefix, departureLine(st))))

		detail := "  " + st.Departure.TrainID
		if st.Departure.Destination != "" {
			detail += " · " + titleCaser.String(st.Departure.Destination)
		}
		lines = append(lines, style.Faint(true).Render(detail))
	}

	lines = append(lines, "")
	footer := footerText(settings, leg, now.Hour())
	if opts.ShowProvenance && board.Provenance == commute.Synthesized {
		footer += fmt.Sprintf(" (scheduled estimate: %s)", board.Reason)
	}
	lines = append(lines, lipgloss.NewStyle().Faint(true).Render(footer))

	return lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.Color("#ffffff")).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

// RenderLeg describes the leg that is active at the given hour
func RenderLeg(leg commute.CommuteLeg, hour int) string {
	title := accentStyle.Bold(true).Render(fmt.Sprintf("%02d:00 → %s", hour, leg.Direction))
	body := fmt.Sprintf("%s %s → %s\nStation board: %s\nRelevant destinations: %s",
		leg.Icon, leg.Origin, leg.Destination, leg.StationCode,
		titleCaser.String(strings.Join(leg.Filters, ", ")))
	return title + "\n" + strings.TrimSpace(body)
}

// RunBoardView builds the board for now behind a spinner and prints it
func RunBoardView(ctx context.Context, planner *commute.Planner, now time.Time, opts RenderOptions) error {
	var board commute.Board

	err := spinner.New().
		Title("Fetching live departures...").
		Action(func() {
			board = planner.Build(ctx, now)
		}).
		Run()
	if err != nil {
		return fmt.Errorf("could not show departures: %w", err)
	}

	fmt.Println(RenderBoard(board, planner.Settings(), opts))
	return nil
}
