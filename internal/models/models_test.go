package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnForStatusIsTotal(t *testing.T) {
	expected := map[ProjectStatus]string{
		StatusPlanning:   ColumnIdeas,
		StatusOnHold:     ColumnIdeas,
		StatusInProgress: ColumnInProgress,
		StatusCompleted:  ColumnCompleted,
	}

	for status := range ValidProjectStatuses {
		column, ok := ColumnForStatus(status)
		if status == StatusArchived {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok, "status %s must map to a column", status)
		assert.Equal(t, expected[status], column)
	}
}

func TestProjectPatchIsEmpty(t *testing.T) {
	assert.True(t, ProjectPatch{}.IsEmpty())

	title := "x"
	assert.False(t, ProjectPatch{Title: &title}.IsEmpty())

	status := StatusArchived
	assert.False(t, ProjectPatch{Status: &status}.IsEmpty())
}

func TestColumnsClone(t *testing.T) {
	original := Columns{
		ColumnIdeas: {{ID: "p1", Title: "One", Status: StatusPlanning}},
	}

	cloned := original.Clone()
	cloned[ColumnIdeas][0].Title = "changed"
	cloned[ColumnIdeas] = append(cloned[ColumnIdeas], Project{ID: "p2"})

	require.Len(t, original[ColumnIdeas], 1)
	assert.Equal(t, "One", original[ColumnIdeas][0].Title)
}

func TestColumnsTotal(t *testing.T) {
	columns := Columns{
		ColumnIdeas:      {{ID: "p1"}, {ID: "p2"}},
		ColumnInProgress: {},
		ColumnCompleted:  {{ID: "p3"}},
	}
	assert.Equal(t, 3, columns.Total())
}
