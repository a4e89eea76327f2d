package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func sampleResult() models.SessionResult {
	return models.SessionResult{
		Request:   models.SamplingRequest{Model: "gpt-4o", Temperature: 0.7, NumCalls: 4},
		Responses: models.ResponseSet{"Shelly", "Max", "Shelly", "A very long response that keeps going well beyond forty characters"},
		Frequencies: models.FrequencyTable{
			{Response: "Shelly", Count: 2, Percentage: 50},
			{Response: "Max", Count: 1, Percentage: 25},
			{Response: "A very long response that keeps going well beyond forty characters", Count: 1, Percentage: 25},
		},
		UniqueCount: 3,
		Consistency: 50,
		Duration:    1500 * time.Millisecond,
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "Shelly", "Shelly"},
		{"exactly forty", strings.Repeat("a", 40), strings.Repeat("a", 40)},
		{"forty one", strings.Repeat("a", 41), strings.Repeat("a", 40) + "..."},
		{"multibyte", strings.Repeat("é", 45), strings.Repeat("é", 40) + "..."},
		{"newlines flattened", "line one\nline two", "line one line two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in))
		})
	}
}

func TestSummaryLine(t *testing.T) {
	assert.Equal(t, "3 unique out of 4 total", SummaryLine(sampleResult()))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "3 unique out of 4 total")
	assert.Contains(t, out, "Consistency: 50.0%")
	assert.Contains(t, out, "Response")
	assert.Contains(t, out, "Percentage")
	assert.Contains(t, out, "A very long response that keeps going we...")
	assert.NotContains(t, out, "forty characters")
	assert.Contains(t, out, "25.0%")

	// Highest count is listed first.
	assert.Less(t, strings.Index(out, "Shelly"), strings.Index(out, "Max"))
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, sampleResult()))

	var decoded models.SessionResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.UniqueCount)
	assert.Equal(t, 50.0, decoded.Consistency)
}

func TestColorConsistency(t *testing.T) {
	assert.Equal(t, "100.0%", ColorConsistency(100))
	assert.Equal(t, "33.3%", ColorConsistency(100.0/3))
}

func TestTable_MissingValues(t *testing.T) {
	tbl := NewTable(Column{Header: "A"}, Column{Header: "B"}, Column{Header: "C"})
	tbl.AddRow("only-one")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  only-one", lines[2])
}
