package services_test

import (
	"testing"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestDispatchRanker_Rank(t *testing.T) {
	ranker := services.NewDispatchRanker(2.0)

	t.Run("should rank closer driver first", func(t *testing.T) {
		near := services.Candidate{DriverID: kernel.NewUUID(), DistanceKm: 1, Rating: 4}
		far := services.Candidate{DriverID: kernel.NewUUID(), DistanceKm: 5, Rating: 5}

		ranked := ranker.Rank([]services.Candidate{far, near})

		assert.True(t, ranked[0].DriverID.IsEqual(near.DriverID))
	})

	t.Run("should penalize loaded drivers", func(t *testing.T) {
		idle := services.Candidate{DriverID: kernel.NewUUID(), DistanceKm: 4, ActiveOrders: 0}
		loaded := services.Candidate{DriverID: kernel.NewUUID(), DistanceKm: 1, ActiveOrders: 2}

		ranked := ranker.Rank([]services.Candidate{loaded, idle})

		// loaded costs 1 + 2*2 = 5, idle costs 4
		assert.True(t, ranked[0].DriverID.IsEqual(idle.DriverID))
	})

	t.Run("should break cost ties by rating descending", func(t *testing.T) {
		lowRated := services.Candidate{DriverID: kernel.NewUUID(), DistanceKm: 3, Rating: 3.5}
		highRated := services.Candidate{DriverID: kernel.NewUUID(), DistanceKm: 3, Rating: 4.8}

		ranked := ranker.Rank([]services.Candidate{lowRated, highRated})

		assert.True(t, ranked[0].DriverID.IsEqual(highRated.DriverID))
	})

	t.Run("should not modify the input slice", func(t *testing.T) {
		first := services.Candidate{DriverID: kernel.NewUUID(), DistanceKm: 9}
		second := services.Candidate{DriverID: kernel.NewUUID(), DistanceKm: 1}
		input := []services.Candidate{first, second}

		ranker.Rank(input)

		assert.True(t, input[0].DriverID.IsEqual(first.DriverID))
	})
}

func TestDispatchRanker_Cost(t *testing.T) {
	t.Run("should add load penalty per active order", func(t *testing.T) {
		ranker := services.NewDispatchRanker(2.0)

		cost := ranker.Cost(services.Candidate{DistanceKm: 3, ActiveOrders: 2})

		assert.InDelta(t, 7.0, cost, 0.001)
	})

	t.Run("should fall back to default penalty", func(t *testing.T) {
		ranker := services.NewDispatchRanker(0)

		cost := ranker.Cost(services.Candidate{DistanceKm: 1, ActiveOrders: 1})

		assert.InDelta(t, 3.0, cost, 0.001)
	})
}
