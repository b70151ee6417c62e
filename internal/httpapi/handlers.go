package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TelmenBay/leetlog/internal/analytics"
	"github.com/TelmenBay/leetlog/internal/journal"
	"github.com/TelmenBay/leetlog/internal/store"
)

// Journal is the service surface the handlers call.
type Journal interface {
	AddProblem(ctx context.Context, userID, url string) (*journal.UserProblemView, error)
	SubmitLog(ctx context.Context, userID, userProblemID string, in journal.AttemptInput) (*journal.SubmitResult, error)
	Logs(ctx context.Context, userID, userProblemID string) ([]journal.LogView, error)
	DeleteLog(ctx context.Context, userID, logID string) (*journal.UserProblemView, error)
	DeleteUserProblem(ctx context.Context, userID, id string) error
	DeleteUserProblems(ctx context.Context, userID string, ids []string) (int, error)
	Dashboard(ctx context.Context, userID string) ([]journal.UserProblemView, error)
	Analytics(ctx context.Context, userID string) (*analytics.Summary, error)
	Preferences(ctx context.Context, userID string) (*store.Preferences, error)
	SavePreferences(ctx context.Context, userID string, skipDeleteConfirm bool) (*store.Preferences, error)
}

var _ Journal = (*journal.Service)(nil)

// Handler serves the journal API.
type Handler struct {
	journal Journal
}

// NewHandler creates a Handler.
func NewHandler(j Journal) *Handler {
	return &Handler{journal: j}
}

type addProblemRequest struct {
	URL string `json:"url"`
}

// AddProblem handles POST /api/user-problem.
func (h *Handler) AddProblem(c *gin.Context) {
	var req addProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest("invalid request body"))
		return
	}
	up, err := h.journal.AddProblem(c.Request.Context(), userID(c), req.URL)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "userProblem": up})
}

type submitLogRequest struct {
	// TimeSpent is coerced, so any JSON value is accepted.
	TimeSpent any    `json:"timeSpent"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
	Solution  string `json:"solution"`
}

// SubmitLog handles POST /api/user-problem/:id.
func (h *Handler) SubmitLog(c *gin.Context) {
	var req submitLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest("invalid request body"))
		return
	}
	res, err := h.journal.SubmitLog(c.Request.Context(), userID(c), c.Param("id"), journal.AttemptInput{
		TimeSpent: req.TimeSpent,
		Status:    req.Status,
		Notes:     req.Notes,
		Solution:  req.Solution,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "log": res.Log, "userProblem": res.UserProblem})
}

// Logs handles GET /api/user-problem/:id/logs.
func (h *Handler) Logs(c *gin.Context) {
	logs, err := h.journal.Logs(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// DeleteUserProblem handles DELETE /api/user-problem/:id.
func (h *Handler) DeleteUserProblem(c *gin.Context) {
	if err := h.journal.DeleteUserProblem(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// DeleteUserProblems handles POST /api/user-problems/delete.
func (h *Handler) DeleteUserProblems(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest("invalid request body"))
		return
	}
	if len(req.IDs) == 0 {
		abortWithError(c, badRequest("ids is required"))
		return
	}
	n, err := h.journal.DeleteUserProblems(c.Request.Context(), userID(c), req.IDs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": n})
}

// DeleteLog handles DELETE /api/log/:id.
func (h *Handler) DeleteLog(c *gin.Context) {
	up, err := h.journal.DeleteLog(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "userProblem": up})
}

// Dashboard handles GET /api/dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	ups, err := h.journal.Dashboard(c.Request.Context(), userID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userProblems": ups})
}

// Analytics handles GET /api/analytics.
func (h *Handler) Analytics(c *gin.Context) {
	sum, err := h.journal.Analytics(c.Request.Context(), userID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type preferencesBody struct {
	SkipDeleteConfirm *bool `json:"skipDeleteConfirm"`
}

// Preferences handles GET /api/preferences.
func (h *Handler) Preferences(c *gin.Context) {
	p, err := h.journal.Preferences(c.Request.Context(), userID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, preferencesBody{SkipDeleteConfirm: &p.SkipDeleteConfirm})
}

// SavePreferences handles PUT /api/preferences.
func (h *Handler) SavePreferences(c *gin.Context) {
	var req preferencesBody
	if err := c.ShouldBindJSON(&req); err != nil || req.SkipDeleteConfirm == nil {
		abortWithError(c, badRequest("skipDeleteConfirm is required"))
		return
	}
	p, err := h.journal.SavePreferences(c.Request.Context(), userID(c), *req.SkipDeleteConfirm)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, preferencesBody{SkipDeleteConfirm: &p.SkipDeleteConfirm})
}

// HealthCheck handles GET /healthcheck.
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
