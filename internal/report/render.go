package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatTable, FormatJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (available: %v)", s, Formats)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	positiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// Render writes r to w in the given format.
func Render(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatText:
		return renderText(w, r)
	case FormatTable:
		return renderTable(w, r)
	case FormatJSON:
		return renderJSON(w, r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func formatEV(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// renderText writes one line per hand and the total, e.g.
//
//	AKs => maxbet hand for 1.234 ev
//	total ev = 0.123
func renderText(w io.Writer, r *Report) error {
	for _, row := range r.Rows {
		if _, err := fmt.Fprintf(w, "%s => %s for %s ev\n", row.Class, row.Play, formatEV(row.EV)); err != nil {
			return err
		}
	}
	if r.Complete {
		if _, err := fmt.Fprintf(w, "total ev = %s\n", formatEV(r.TotalEV)); err != nil {
			return err
		}
	}
	return nil
}

func styleEV(v float64) string {
	s := fmt.Sprintf("%+.4f", v)
	if v < 0 {
		return negativeStyle.Render(s)
	}
	return positiveStyle.Render(s)
}

func renderTable(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("play"),
		headerStyle.Render("ev"),
		headerStyle.Render("95% ci"),
		headerStyle.Render("maxbet"),
		headerStyle.Render("flop"),
		headerStyle.Render("river"))

	for _, row := range r.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			handStyle.Render(row.Class.String()),
			row.Play,
			styleEV(row.EV),
			mutedStyle.Render(fmt.Sprintf("[%+.3f, %+.3f]", row.CILow, row.CIHigh)),
			styleEV(row.Maxbet),
			styleEV(row.Flop),
			styleEV(row.River))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if r.Complete {
		_, err := fmt.Fprintf(w, "\n%s %s\n", headerStyle.Render("total ev"), styleEV(r.TotalEV))
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", mutedStyle.Render(fmt.Sprintf("total ev omitted: %d of 169 hands simulated", len(r.Rows))))
	return err
}

type jsonRow struct {
	Hand   string     `json:"hand"`
	Play   Play       `json:"play"`
	EV     float64    `json:"ev"`
	CI95   [2]float64 `json:"ci95"`
	Maxbet float64    `json:"maxbet"`
	Flop   float64    `json:"flop"`
	River  float64    `json:"river"`
	Trials int        `json:"trials"`
}

type jsonReport struct {
	RunID   string    `json:"run_id"`
	Seed    int64     `json:"seed"`
	Trials  int       `json:"trials"`
	Ranker  string    `json:"ranker"`
	Hands   []jsonRow `json:"hands"`
	TotalEV *float64  `json:"total_ev,omitempty"`
}

func renderJSON(w io.Writer, r *Report) error {
	out := jsonReport{
		RunID:  r.RunID,
		Seed:   r.Seed,
		Trials: r.Trials,
		Ranker: r.Ranker,
		Hands:  make([]jsonRow, 0, len(r.Rows)),
	}
	for _, row := range r.Rows {
		out.Hands = append(out.Hands, jsonRow{
			Hand:   row.Class.String(),
			Play:   row.Play,
			EV:     row.EV,
			CI95:   [2]float64{row.CILow, row.CIHigh},
			Maxbet: row.Maxbet,
			Flop:   row.Flop,
			River:  row.River,
			Trials: row.Trials,
		})
	}
	if r.Complete {
		total := r.TotalEV
		out.TotalEV = &total
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
