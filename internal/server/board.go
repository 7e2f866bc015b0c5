package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"board/internal/models"
)

type createProjectRequest struct {
	Column      string `json:"column"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type reorderRequest struct {
	Projects []models.Project `json:"projects"`
}

// handleGetBoard loads the board (served from cache inside the TTL) and
// returns the full store state. Load failures with cached data are not
// surfaced here; an empty-cache failure shows up in the state's error field.
func (s *Server) handleGetBoard(c *gin.Context) {
	_ = s.store.Load(c.Request.Context(), false)
	c.JSON(http.StatusOK, s.store.State())
}

// handleRefreshBoard bypasses the cache and fetches from the gateway.
func (s *Server) handleRefreshBoard(c *gin.Context) {
	_ = s.store.Load(c.Request.Context(), true)
	c.JSON(http.StatusOK, s.store.State())
}

// handleCreateProject creates a project and appends it to the named column.
func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Title == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("title is required"))
		return
	}
	if !validColumn(req.Column) {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("unknown column %q", req.Column))
		return
	}

	project, err := s.store.Add(c.Request.Context(), req.Column, req.Title, req.Description)
	if err != nil {
		s.respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project})
}

// handleUpdateProject applies a partial patch, including cross-column moves
// when the patch touches the status.
func (s *Server) handleUpdateProject(c *gin.Context) {
	id := c.Param("id")

	var patch models.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if patch.IsEmpty() {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("empty patch"))
		return
	}

	project, err := s.store.Update(c.Request.Context(), id, patch)
	if err != nil {
		s.respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

// handleDeleteProject archives a project, removing it from every column.
func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "archived"})
}

// handleReorderColumn replaces a column's ordering with the drag result.
// Local-only: the drag layer is trusted to pass the complete column.
func (s *Server) handleReorderColumn(c *gin.Context) {
	columnID := c.Param("id")
	if !validColumn(columnID) {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("unknown column %q", columnID))
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	s.store.Reorder(columnID, req.Projects)
	c.JSON(http.StatusOK, gin.H{"column": columnID, "projects": req.Projects})
}

// handleSetColumns overrides the board wholesale; used for demo seeding.
func (s *Server) handleSetColumns(c *gin.Context) {
	var columns models.Columns
	if err := c.ShouldBindJSON(&columns); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	s.store.SetColumns(columns)
	c.JSON(http.StatusOK, s.store.State())
}

func validColumn(id string) bool {
	for _, known := range models.ColumnIDs {
		if id == known {
			return true
		}
	}
	return false
}
