package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
)

// DisplayWidth is how many characters of a response the table shows before truncating.
const DisplayWidth = 40

// Truncate shortens s to DisplayWidth runes followed by "...". Line breaks are flattened
// so that a multi-line response stays on one table row.
func Truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= DisplayWidth {
		return s
	}
	return string(runes[:DisplayWidth]) + "..."
}

// SummaryLine is the headline of a session, e.g. "3 unique out of 10 total".
func SummaryLine(result models.SessionResult) string {
	return fmt.Sprintf("%d unique out of %d total", result.UniqueCount, len(result.Responses))
}

// Render writes the human-readable report of one session.
func Render(w io.Writer, result models.SessionResult) error {
	header := fmt.Sprintf("Model %s, temperature %.2f, %d calls in %s",
		result.Request.Model, result.Request.Temperature, result.Request.NumCalls, result.Duration.Round(time.Millisecond))
	if _, err := fmt.Fprintln(w, colorFaint.Sprint(header)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s\nConsistency: %s\n\n",
		colorBold.Sprint(SummaryLine(result)), ColorConsistency(result.Consistency)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	table := NewTable(
		Column{Header: "Response"},
		Column{Header: "Count", Align: AlignRight},
		Column{Header: "Percentage", Align: AlignRight},
	)
	for _, entry := range result.Frequencies {
		table.AddRow(Truncate(entry.Response), fmt.Sprintf("%d", entry.Count), fmt.Sprintf("%.1f%%", entry.Percentage))
	}
	return table.Render(w)
}

// RenderJSON writes the full session result as indented JSON.
func RenderJSON(w io.Writer, result models.SessionResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
