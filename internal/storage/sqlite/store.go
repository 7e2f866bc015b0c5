// Package sqlite implements the project gateway against a local SQLite
// database, for running the website without the hosted backend.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"board/internal/gateway"
	"board/internal/models"
)

// Store wraps access to the SQLite database and implements
// gateway.ProjectGateway.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open initializes the store and runs the required migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS projects (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            url TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'planning',
            technologies TEXT NOT NULL DEFAULT '[]',
            tags TEXT NOT NULL DEFAULT '[]',
            tasks TEXT NOT NULL DEFAULT '[]',
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

const projectColumns = `id, title, description, url, status, technologies, tags, tasks, created_at, updated_at`

// FetchAll returns every project, archived ones included, ordered by
// creation date. The board's grouping decides what is visible.
func (s *Store) FetchAll(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, gateway.Transient("list projects", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, gateway.Transient("scan project", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, gateway.Transient("list projects", err)
	}
	return projects, nil
}

// Create inserts a new project with the default planning status and
// returns it with its assigned id and timestamps.
func (s *Store) Create(ctx context.Context, title, description string) (models.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Project{}, gateway.Validation("project title must not be empty")
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects(id, title, description, status) VALUES(?, ?, ?, ?)`,
		id, title, strings.TrimSpace(description), string(models.StatusPlanning))
	if err != nil {
		return models.Project{}, gateway.Transient("insert project", err)
	}
	return s.get(ctx, id)
}

// Update merges the patch into the stored record and returns the full
// updated project.
func (s *Store) Update(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	current, err := s.get(ctx, id)
	if err != nil {
		return models.Project{}, err
	}

	merged, err := merge(current, patch)
	if err != nil {
		return models.Project{}, err
	}

	technologies, tags, tasks, err := encodeLists(merged)
	if err != nil {
		return models.Project{}, gateway.Transient("encode project", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, url = ?, status = ?,
            technologies = ?, tags = ?, tasks = ?, updated_at = CURRENT_TIMESTAMP
         WHERE id = ?`,
		merged.Title, merged.Description, merged.URL, string(merged.Status),
		technologies, tags, tasks, id)
	if err != nil {
		return models.Project{}, gateway.Transient("update project", err)
	}
	return s.get(ctx, id)
}

func (s *Store) get(ctx context.Context, id string) (models.Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, gateway.NotFound(id)
	}
	if err != nil {
		return models.Project{}, gateway.Transient("get project", err)
	}
	return p, nil
}

func merge(current models.Project, patch models.ProjectPatch) (models.Project, error) {
	merged := current

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return models.Project{}, gateway.Validation("project title must not be empty")
		}
		merged.Title = title
	}
	if patch.Description != nil {
		merged.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.URL != nil {
		merged.URL = strings.TrimSpace(*patch.URL)
	}
	if patch.Status != nil {
		if _, ok := models.ValidProjectStatuses[*patch.Status]; !ok {
			return models.Project{}, gateway.Validation(fmt.Sprintf("unknown project status %q", *patch.Status))
		}
		merged.Status = *patch.Status
	}
	if patch.Technologies != nil {
		merged.Technologies = *patch.Technologies
	}
	if patch.Tags != nil {
		merged.Tags = *patch.Tags
	}
	if patch.Tasks != nil {
		for _, task := range *patch.Tasks {
			if _, ok := models.ValidTaskStatuses[task.Status]; !ok {
				return models.Project{}, gateway.Validation(fmt.Sprintf("unknown task status %q", task.Status))
			}
		}
		merged.Tasks = *patch.Tasks
	}

	return merged, nil
}

func encodeLists(p models.Project) (technologies, tags, tasks string, err error) {
	enc := func(v any) (string, error) {
		data, err := json.Marshal(v)
		return string(data), err
	}
	if technologies, err = enc(emptyIfNil(p.Technologies)); err != nil {
		return
	}
	if tags, err = enc(emptyIfNil(p.Tags)); err != nil {
		return
	}
	if p.Tasks == nil {
		tasks = "[]"
		return
	}
	tasks, err = enc(p.Tasks)
	return
}

func emptyIfNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (models.Project, error) {
	var (
		p            models.Project
		status       string
		technologies string
		tags         string
		tasks        string
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.URL, &status,
		&technologies, &tags, &tasks, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Project{}, err
	}

	p.Status = models.ProjectStatus(status)
	if err := json.Unmarshal([]byte(technologies), &p.Technologies); err != nil {
		return models.Project{}, fmt.Errorf("decode technologies: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return models.Project{}, fmt.Errorf("decode tags: %w", err)
	}
	if err := json.Unmarshal([]byte(tasks), &p.Tasks); err != nil {
		return models.Project{}, fmt.Errorf("decode tasks: %w", err)
	}
	return p, nil
}
