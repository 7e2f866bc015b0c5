package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"board/internal/models"
)

func TestRemoteFetchAll(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/projects", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Project{
			{ID: "p1", Title: "One", Status: models.StatusPlanning},
			{ID: "p2", Title: "Two", Status: models.StatusArchived},
		})
	}))
	defer ts.Close()

	remote := NewRemote(ts.URL+"/", "secret")
	projects, err := remote.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, models.StatusArchived, projects[1].Status)
}

func TestRemoteCreate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "New", body["title"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Project{
			ID: "p1", Title: body["title"], Status: models.StatusPlanning,
		})
	}))
	defer ts.Close()

	remote := NewRemote(ts.URL, "")
	p, err := remote.Create(context.Background(), "New", "details")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, models.StatusPlanning, p.Status)
}

func TestRemoteUpdateSendsOnlyPatchedFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/projects/p1", r.URL.Path)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "status")
		assert.NotContains(t, body, "title")

		json.NewEncoder(w).Encode(models.Project{
			ID: "p1", Title: "One", Status: models.StatusCompleted,
		})
	}))
	defer ts.Close()

	remote := NewRemote(ts.URL, "")
	status := models.StatusCompleted
	p, err := remote.Update(context.Background(), "p1", models.ProjectPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, p.Status)
}

func TestRemoteClassifiesErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   ErrorKind
	}{
		{"not found", http.StatusNotFound, `{"error":"project missing"}`, KindNotFound},
		{"bad request", http.StatusBadRequest, `{"error":"title required"}`, KindValidation},
		{"unprocessable", http.StatusUnprocessableEntity, `{"message":"invalid status"}`, KindValidation},
		{"server error", http.StatusInternalServerError, `boom`, KindTransient},
		{"bad gateway", http.StatusBadGateway, ``, KindTransient},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			remote := NewRemote(ts.URL, "")
			_, err := remote.FetchAll(context.Background())
			require.Error(t, err)
			assert.Equal(t, tc.kind, KindOf(err))
		})
	}
}

func TestRemoteNetworkFailureIsTransient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	remote := NewRemote(ts.URL, "")
	_, err := remote.FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindTransient, KindOf(err))
}
