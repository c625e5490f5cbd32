package engine

import (
	"sort"

	"github.com/Mario960060/cosmichub/internal/model"
)

// MergeFlags combines flag lists from the generators into one feed, ordered
// by severity rank (critical first) with ties broken by recency. The sort is
// stable, so flags equal on both keys keep their generator order.
func MergeFlags(groups ...[]*model.RedFlag) []*model.RedFlag {
	merged := make([]*model.RedFlag, 0)
	for _, g := range groups {
		merged = append(merged, g...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if ri, rj := merged[i].Severity.Rank(), merged[j].Severity.Rank(); ri != rj {
			return ri > rj
		}
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	return merged
}
