package services

import (
	"sort"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
)

// defaultLoadPenaltyKm is the distance handicap added per active order a
// candidate already carries.
const defaultLoadPenaltyKm = 2.0

// Candidate is one driver considered for an assignment: their distance from
// the pickup point, current load and rating.
type Candidate struct {
	DriverID     kernel.UUID
	DistanceKm   float64
	ActiveOrders int
	Rating       float64
}

// DispatchRanker is a domain service that orders dispatch candidates by
// desirability. It holds no state beyond its tunables, so a single instance
// serves all dispatches.
//
// Ranking rules:
//   - cost = distance to pickup + load penalty per active order, ascending
//   - equal cost breaks ties by rating, descending
//   - remaining ties break by driver id for a deterministic order
type DispatchRanker struct {
	loadPenaltyKm float64
}

// NewDispatchRanker creates a DispatchRanker. A non-positive penalty falls
// back to the default.
func NewDispatchRanker(loadPenaltyKm float64) DispatchRanker {
	if loadPenaltyKm <= 0 {
		loadPenaltyKm = defaultLoadPenaltyKm
	}
	return DispatchRanker{loadPenaltyKm: loadPenaltyKm}
}

// Rank returns the candidates sorted best-first. The input slice is not
// modified.
func (r DispatchRanker) Rank(candidates []Candidate) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)

	sort.Slice(ranked, func(i, j int) bool {
		costI := r.Cost(ranked[i])
		costJ := r.Cost(ranked[j])
		if costI != costJ {
			return costI < costJ
		}
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].DriverID.String() < ranked[j].DriverID.String()
	})
	return ranked
}

// Cost computes the ranking cost of a single candidate.
func (r DispatchRanker) Cost(c Candidate) float64 {
	return c.DistanceKm + r.loadPenaltyKm*float64(c.ActiveOrders)
}
