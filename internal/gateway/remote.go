package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"board/internal/models"
)

// Remote talks to the hosted database's REST API over HTTP/JSON.
type Remote struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRemote builds a gateway for the hosted API at baseURL. The key is sent
// as a bearer token on every request.
func NewRemote(baseURL, apiKey string) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchAll returns every project, including archived ones.
func (r *Remote) FetchAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Create stores a new project; the backend assigns id, planning status and
// timestamps.
func (r *Remote) Create(ctx context.Context, title, description string) (models.Project, error) {
	body := map[string]string{"title": title, "description": description}
	var project models.Project
	if err := r.do(ctx, http.MethodPost, "/projects", body, &project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// Update sends a partial patch and returns the server-merged record.
func (r *Remote) Update(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	var project models.Project
	if err := r.do(ctx, http.MethodPatch, "/projects/"+id, patch, &project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

func (r *Remote) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Transient("encode request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return Transient("build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Transient(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return Transient("decode response", err)
	}
	return nil
}

// classifyStatus maps HTTP status codes onto the gateway error kinds.
func classifyStatus(resp *http.Response) error {
	if resp.StatusCode < 300 {
		return nil
	}

	message := strings.TrimSpace(readErrorMessage(resp.Body))
	if message == "" {
		message = resp.Status
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: message}
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return Validation(message)
	default:
		return Transient(message, nil)
	}
}

func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return string(data)
}
