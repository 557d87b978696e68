package queries_test

import (
	"testing"

	"jewelflow/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListPendingTasksQuery_Valid(t *testing.T) {
	query := queries.NewListPendingTasksQuery("Casting", "artisan-1")
	err := query.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Casting", query.Stage())
	assert.Equal(t, "artisan-1", query.Worker())
}

func TestNewListPendingTasksQuery_EmptyFilters_Valid(t *testing.T) {
	query := queries.NewListPendingTasksQuery("", "")
	err := query.Validate()
	require.NoError(t, err)
}

func TestListPendingTasksQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListPendingTasksQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListPendingTasksQueryIsNotConstructed)
}
