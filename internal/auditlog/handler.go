package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAuditLogs godoc
// @Summary      List audit logs
// @Description  Returns audit log entries with optional filters (university only)
// @Tags         audit
// @Produce      json
// @Param        user_id    query  int     false  "Filter by user ID"
// @Param        club_id    query  int     false  "Filter by club ID"
// @Param        action     query  string  false  "Filter by action (partial match)"
// @Param        status     query  string  false  "Filter by status (success/failure)"
// @Param        from_date  query  string  false  "From date (RFC3339)"
// @Param        to_date    query  string  false  "To date (RFC3339)"
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Page size"
// @Success      200  {object}  PaginatedAuditLogs
// @Failure      500  {object}  map[string]string
// @Security     BearerAuth
// @Router       /audit-logs [get]
func (h *Handler) GetAuditLogs(c *gin.Context) {
	var filter AuditLogFilter

	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			uid := uint(id)
			filter.UserID = &uid
		}
	}
	if v := c.Query("club_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			cid := uint(id)
			filter.ClubID = &cid
		}
	}

	filter.Action = c.Query("action")
	filter.Status = c.Query("status")

	if v := c.Query("from_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.FromDate = &t
		}
	}
	if v := c.Query("to_date"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.ToDate = &t
		}
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.service.GetAuditLogs(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch audit logs"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAuditLogByID godoc
// @Summary      Get audit log entry
// @Tags         audit
// @Produce      json
// @Param        id   path      int  true  "Audit log ID"
// @Success      200  {object}  AuditLogResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /audit-logs/{id} [get]
func (h *Handler) GetAuditLogByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audit log id"})
		return
	}

	entry, err := h.service.GetAuditLogByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "audit log not found"})
		return
	}

	c.JSON(http.StatusOK, entry)
}
