// Package board implements the kanban board state store: a TTL-cached view
// of "columns of projects" reconciled against a remote persistence gateway.
package board

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"board/internal/gateway"
	"board/internal/models"
)

// DefaultTTL is how long a successful fetch keeps repeated loads free.
// A tuning constant, not a correctness invariant.
const DefaultTTL = time.Minute

// Store owns the board state. All mutation goes through its methods;
// nothing outside the store touches the columns directly.
//
// Reordering is the one optimistic, fire-and-forget operation. Create,
// update and delete are confirm-then-apply: local state changes only after
// the gateway has acknowledged the write, so no rollback path exists or is
// needed. Overlapping calls are not coalesced; the last gateway response to
// land wins, which matches the backend's own last-writer-wins behaviour.
type Store struct {
	gw        gateway.ProjectGateway
	snapshots SnapshotStore
	logger    *slog.Logger
	ttl       time.Duration
	now       func() time.Time

	mu          sync.Mutex
	columns     models.Columns
	lastFetched time.Time
	loading     bool
	lastErr     *gateway.Error
}

// State is the read surface exposed to presentation components.
type State struct {
	Columns     models.Columns `json:"columns"`
	Loading     bool           `json:"is_loading"`
	Error       *gateway.Error `json:"error,omitempty"`
	LastFetched *time.Time     `json:"last_fetched,omitempty"`
}

// New constructs a store and rehydrates it from the snapshot store, if a
// snapshot exists. A nil snapshot store disables persistence; ttl <= 0
// falls back to DefaultTTL.
func New(gw gateway.ProjectGateway, snapshots SnapshotStore, logger *slog.Logger, ttl time.Duration) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &Store{
		gw:        gw,
		snapshots: snapshots,
		logger:    logger,
		ttl:       ttl,
		now:       time.Now,
		columns:   EmptyColumns(),
	}
	s.rehydrate()
	return s
}

func (s *Store) rehydrate() {
	if s.snapshots == nil {
		return
	}
	snap, err := s.snapshots.Load()
	if err != nil {
		s.logger.Warn("unable to load board snapshot", "error", err)
		return
	}
	if snap == nil {
		return
	}
	columns := EmptyColumns()
	for id, projects := range snap.Columns {
		columns[id] = projects
	}
	s.columns = columns
	s.lastFetched = snap.LastFetched
	s.logger.Info("board rehydrated from snapshot",
		"projects", columns.Total(), "last_fetched", snap.LastFetched)
}

// State returns a copy of the current board state. The column slices are
// copied so the caller cannot mutate store internals.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Columns: s.columns.Clone(),
		Loading: s.loading,
		Error:   s.lastErr,
	}
	if !s.lastFetched.IsZero() {
		t := s.lastFetched
		st.LastFetched = &t
	}
	return st
}

// Load fetches all projects from the gateway and regroups the columns.
//
// Without force, a load inside the TTL window with non-empty columns is
// free: it returns immediately with the last confirmed state. When cached
// data exists the loading flag stays down during the fetch and a gateway
// failure is swallowed (stale data beats a visible error); with an empty
// cache the failure is recorded and returned.
func (s *Store) Load(ctx context.Context, force bool) error {
	s.mu.Lock()
	if !force && s.columns.Total() > 0 && s.now().Sub(s.lastFetched) < s.ttl {
		s.mu.Unlock()
		return nil
	}
	cached := s.columns.Total() > 0
	if !cached {
		s.loading = true
		s.lastErr = nil
	}
	s.mu.Unlock()

	projects, err := s.gw.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		if cached {
			s.logger.Warn("board refresh failed, keeping cached columns", "error", err)
			return nil
		}
		s.lastErr = gateway.AsError(err)
		return err
	}

	s.columns = Group(projects)
	s.lastFetched = s.now()
	s.lastErr = nil
	s.persistLocked()
	s.logger.Debug("board loaded", "projects", s.columns.Total())
	return nil
}

// Add creates a project through the gateway and appends the confirmed
// record to the named column. The append happens only after the gateway has
// assigned the id, since drag operations need the authoritative id.
// The caller is responsible for supplying a non-empty title.
func (s *Store) Add(ctx context.Context, columnID, title, description string) (models.Project, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	project, err := s.gw.Create(ctx, title, description)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = gateway.AsError(err)
		return models.Project{}, err
	}

	s.columns[columnID] = append(s.columns[columnID], project)
	s.lastErr = nil
	s.persistLocked()
	return project, nil
}

// Update persists a partial patch and, on confirmation, applies the merged
// record locally: replaced in place in every column it appears in, then
// moved to the end of the target column when the status changed. Archived
// status maps to no column, which removes the project everywhere. On
// failure the columns are left exactly as they were.
func (s *Store) Update(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	merged, err := s.gw.Update(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = gateway.AsError(err)
		return models.Project{}, err
	}

	s.applyLocked(merged, patch.Status != nil)
	s.lastErr = nil
	s.persistLocked()
	return merged, nil
}

// Delete archives a project. Soft delete: the record survives remotely and
// only disappears from the board columns.
func (s *Store) Delete(ctx context.Context, id string) error {
	archived := models.StatusArchived
	_, err := s.Update(ctx, id, models.ProjectPatch{Status: &archived})
	return err
}

// Reorder replaces a column's ordering with the drag result. Purely local
// and optimistic: no gateway call and no validation that newOrder is a
// permutation of the column; the drag layer is trusted to pass a complete,
// correctly scoped list.
func (s *Store) Reorder(columnID string, newOrder []models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := make([]models.Project, len(newOrder))
	copy(projects, newOrder)
	s.columns[columnID] = projects
	s.persistLocked()
}

// SetColumns overrides the board wholesale. Used for seeding demo or test
// state, not by the normal UI flow.
func (s *Store) SetColumns(columns models.Columns) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := EmptyColumns()
	for id, projects := range columns {
		cp := make([]models.Project, len(projects))
		copy(cp, projects)
		next[id] = cp
	}
	s.columns = next
	s.persistLocked()
}

// applyLocked folds a gateway-confirmed record into the columns. Afterwards
// the project appears in exactly one column, or in none when archived.
func (s *Store) applyLocked(project models.Project, statusChanged bool) {
	for columnID, projects := range s.columns {
		for i := range projects {
			if projects[i].ID == project.ID {
				projects[i] = project
			}
		}
		s.columns[columnID] = projects
	}

	if !statusChanged {
		return
	}

	for columnID, projects := range s.columns {
		kept := make([]models.Project, 0, len(projects))
		for _, p := range projects {
			if p.ID != project.ID {
				kept = append(kept, p)
			}
		}
		s.columns[columnID] = kept
	}

	if target, ok := models.ColumnForStatus(project.Status); ok {
		s.columns[target] = append(s.columns[target], project)
	}
}

func (s *Store) persistLocked() {
	if s.snapshots == nil {
		return
	}
	snap := Snapshot{Columns: s.columns.Clone(), LastFetched: s.lastFetched}
	if err := s.snapshots.Save(snap); err != nil {
		s.logger.Warn("unable to save board snapshot", "error", err)
	}
}
