// Package gateway defines the remote persistence boundary of the board.
package gateway

import (
	"context"

	"board/internal/models"
)

// ProjectGateway is the persistence API the board store talks to. There is
// no bulk fetch, no pagination and no hard delete: deletion is a status
// patch to archived.
type ProjectGateway interface {
	// FetchAll returns every project, including archived ones.
	FetchAll(ctx context.Context) ([]models.Project, error)
	// Create stores a new project with the default planning status and
	// returns it with its assigned id and timestamps.
	Create(ctx context.Context, title, description string) (models.Project, error)
	// Update merges the patch server-side and returns the full updated
	// record. Fails with a not-found error when the id is unknown.
	Update(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error)
}
