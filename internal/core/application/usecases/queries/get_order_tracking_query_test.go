package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-thanks/RouteX/internal/core/application/usecases/queries"
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
)

func TestNewGetOrderTrackingQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrderTrackingQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetOrderTrackingQuery_EmptyOrderID(t *testing.T) {
	_, err := queries.NewGetOrderTrackingQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetOrderTrackingQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderTrackingQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderTrackingQueryIsNotConstructed)
}
