package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"board/internal/gateway"
	"board/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(filepath.Join(t.TempDir(), "board.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("", nil)
	assert.Error(t, err)
}

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, "  Portfolio revamp  ", "rebuild the landing page")
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Portfolio revamp", p.Title)
	assert.Equal(t, models.StatusPlanning, p.Status)
	assert.Empty(t, p.Technologies)
	assert.Empty(t, p.Tags)
	assert.Empty(t, p.Tasks)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Create(context.Background(), "   ", "")
	require.Error(t, err)
	assert.Equal(t, gateway.KindValidation, gateway.KindOf(err))
}

func TestFetchAllIncludesArchived(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p1, err := store.Create(ctx, "First", "")
	require.NoError(t, err)
	_, err = store.Create(ctx, "Second", "")
	require.NoError(t, err)

	archived := models.StatusArchived
	_, err = store.Update(ctx, p1.ID, models.ProjectPatch{Status: &archived})
	require.NoError(t, err)

	projects, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	statuses := map[string]models.ProjectStatus{}
	for _, p := range projects {
		statuses[p.Title] = p.Status
	}
	assert.Equal(t, models.StatusArchived, statuses["First"])
	assert.Equal(t, models.StatusPlanning, statuses["Second"])
}

func TestUpdateMergesPartialPatch(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, "Side project", "initial description")
	require.NoError(t, err)

	status := models.StatusInProgress
	url := "https://example.dev"
	techs := []string{"go", "sqlite"}
	tasks := []models.Task{
		{ID: "t1", Title: "scaffold", Status: models.TaskDone},
		{ID: "t2", Title: "deploy", Status: models.TaskTodo},
	}
	merged, err := store.Update(ctx, p.ID, models.ProjectPatch{
		Status:       &status,
		URL:          &url,
		Technologies: &techs,
		Tasks:        &tasks,
	})
	require.NoError(t, err)

	// Untouched fields survive the merge.
	assert.Equal(t, "Side project", merged.Title)
	assert.Equal(t, "initial description", merged.Description)
	assert.Equal(t, models.StatusInProgress, merged.Status)
	assert.Equal(t, "https://example.dev", merged.URL)
	assert.Equal(t, techs, merged.Technologies)
	require.Len(t, merged.Tasks, 2)
	assert.Equal(t, models.TaskDone, merged.Tasks[0].Status)
}

func TestUpdateUnknownID(t *testing.T) {
	store := openTestStore(t)

	title := "x"
	_, err := store.Update(context.Background(), "no-such-id", models.ProjectPatch{Title: &title})
	require.Error(t, err)
	assert.Equal(t, gateway.KindNotFound, gateway.KindOf(err))
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, "Project", "")
	require.NoError(t, err)

	bad := models.ProjectStatus("paused")
	_, err = store.Update(ctx, p.ID, models.ProjectPatch{Status: &bad})
	require.Error(t, err)
	assert.Equal(t, gateway.KindValidation, gateway.KindOf(err))
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p, err := store.Create(ctx, "Project", "")
	require.NoError(t, err)

	blank := " "
	_, err = store.Update(ctx, p.ID, models.ProjectPatch{Title: &blank})
	require.Error(t, err)
	assert.Equal(t, gateway.KindValidation, gateway.KindOf(err))
}
