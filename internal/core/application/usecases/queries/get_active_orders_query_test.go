package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-thanks/RouteX/internal/core/application/usecases/queries"
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
)

func TestNewGetActiveOrdersQuery_Valid(t *testing.T) {
	query, err := queries.NewGetActiveOrdersQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetActiveOrdersQuery_EmptyDriverID(t *testing.T) {
	_, err := queries.NewGetActiveOrdersQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetActiveOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveOrdersQueryIsNotConstructed)
}
