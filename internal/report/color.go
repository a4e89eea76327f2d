package report

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
	colorFaint  = color.New(color.Faint)
)

// ColorConsistency renders a score as "%.1f%%": green from 80, yellow from 50, red below.
func ColorConsistency(score float64) string {
	s := fmt.Sprintf("%.1f%%", score)
	switch {
	case score >= 80:
		return colorGreen.Sprint(s)
	case score >= 50:
		return colorYellow.Sprint(s)
	default:
		return colorRed.Sprint(s)
	}
}
