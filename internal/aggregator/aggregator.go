package aggregator

import (
	"sort"

	"github.com/povarna/generative-ai-agents/consistency-agent/internal/models"
)

// Aggregator groups a ResponseSet by exact string equality. It holds no state.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) Aggregate(responses models.ResponseSet, numCalls int) models.Aggregation {
	table := Frequencies(responses, numCalls)
	return models.Aggregation{
		Frequencies: table,
		UniqueCount: len(table),
		Consistency: Consistency(numCalls, len(table)),
	}
}

// Frequencies counts each distinct response. Entries are sorted by count descending,
// ties keep first-occurrence order.
func Frequencies(responses models.ResponseSet, numCalls int) models.FrequencyTable {
	if numCalls <= 0 {
		return models.FrequencyTable{}
	}

	index := make(map[string]int, len(responses))
	table := make(models.FrequencyTable, 0)
	for i, response := range responses {
		if pos, ok := index[response]; ok {
			table[pos].Count++
			continue
		}
		index[response] = len(table)
		table = append(table, models.FrequencyEntry{
			Response:   response,
			Count:      1,
			FirstIndex: i,
		})
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Count > table[j].Count
	})

	for i := range table {
		table[i].Percentage = float64(table[i].Count) / float64(numCalls) * 100
	}

	return table
}

// Consistency is 100*(numCalls-unique+1)/numCalls, and 100 for a single call.
// When every response differs the score bottoms out at 100/numCalls.
func Consistency(numCalls int, uniqueCount int) float64 {
	switch {
	case numCalls <= 0:
		return 0
	case numCalls == 1:
		return 100
	}
	return 100 * float64(numCalls-uniqueCount+1) / float64(numCalls)
}
