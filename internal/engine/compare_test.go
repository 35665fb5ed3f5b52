package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtaplin21/panelgrid/internal/model"
)

func TestCompareStrategies_RunsEveryStrategy(t *testing.T) {
	site := model.Site{Width: 500, Length: 500}
	panels := makePanels(6, 40, 50)

	results := CompareStrategies(panels, site, testSettings())

	require.Len(t, results, len(AllStrategies))
	seen := make(map[Strategy]bool)
	for _, r := range results {
		seen[r.Strategy] = true
		assert.Equal(t, len(panels), r.Placed+r.Unplaced, "strategy %s lost panels", r.Strategy)
		assert.GreaterOrEqual(t, r.Utilization, 0.0)
	}
	for _, s := range AllStrategies {
		assert.True(t, seen[s], "strategy %s missing from comparison", s)
	}
}

func TestCompareStrategies_SortedBestFirst(t *testing.T) {
	// A tight site separates the strategies by how many panels they fit.
	site := model.Site{Width: 100, Length: 120}
	panels := makePanels(8, 40, 50)

	results := CompareStrategies(panels, site, testSettings())

	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		assert.GreaterOrEqual(t, prev.Placed, cur.Placed)
		if prev.Placed == cur.Placed {
			assert.LessOrEqual(t, prev.Conflicts, cur.Conflicts)
		}
	}
}
