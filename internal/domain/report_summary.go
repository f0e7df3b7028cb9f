package domain

import (
	"sort"

	m "gooze.dev/pkg/fuzzmut/internal/model"
	"gooze.dev/pkg/fuzzmut/pkg"
)

// collectReports drains the spill into a slice ordered by input, strategy
// and iteration, so the manifest does not depend on worker scheduling.
func collectReports(reports pkg.FileSpill[m.Report]) ([]m.Report, error) {
	collected := make([]m.Report, 0, reports.Len())

	err := reports.Range(func(_ uint64, report m.Report) error {
		collected = append(collected, report)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(collected, func(i, j int) bool {
		a, b := collected[i], collected[j]
		if a.Input != b.Input {
			return a.Input < b.Input
		}

		if a.Strategy != b.Strategy {
			return a.Strategy < b.Strategy
		}

		return a.Iteration < b.Iteration
	})

	return collected, nil
}

// summarizeReports counts outcomes per strategy, in the order the
// strategies were requested.
func summarizeReports(reports []m.Report, strategies []m.Strategy) []m.RunSummary {
	index := make(map[m.Strategy]int, len(strategies))
	summaries := make([]m.RunSummary, 0, len(strategies))

	for _, strategy := range strategies {
		if _, ok := index[strategy]; ok {
			continue
		}

		index[strategy] = len(summaries)
		summaries = append(summaries, m.RunSummary{Strategy: strategy})
	}

	for _, report := range reports {
		i, ok := index[report.Strategy]
		if !ok {
			continue
		}

		switch report.Status {
		case m.Generated:
			summaries[i].Generated++
			summaries[i].Bytes += report.Size
		case m.Skipped:
			summaries[i].Skipped++
		case m.Failed:
			summaries[i].Failed++
		}
	}

	return summaries
}
