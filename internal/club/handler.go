package club

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubhubdev/clubhub-backend/internal/auditlog"
	"github.com/clubhubdev/clubhub-backend/middleware"
)

type Handler struct {
	service  Service
	auditSvc auditlog.Service
}

func NewHandler(service Service, auditSvc auditlog.Service) *Handler {
	return &Handler{service: service, auditSvc: auditSvc}
}

// ListClubs godoc
// @Summary      List clubs
// @Description  Leaders see their own clubs, everyone else sees all clubs
// @Tags         clubs
// @Produce      json
// @Success      200  {array}  Club
// @Security     BearerAuth
// @Router       /clubs [get]
func (h *Handler) ListClubs(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	clubs, err := h.service.ListClubs(ac.Role, ac.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch clubs"})
		return
	}

	c.JSON(http.StatusOK, clubs)
}

// ListClubsForAdmin godoc
// @Summary      List all clubs with leader info (university only)
// @Tags         university
// @Produce      json
// @Success      200  {array}  AdminClubResponse
// @Security     BearerAuth
// @Router       /university/clubs [get]
func (h *Handler) ListClubsForAdmin(c *gin.Context) {
	clubs, err := h.service.ListClubsForAdmin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch clubs"})
		return
	}

	c.JSON(http.StatusOK, clubs)
}

// DeleteClub godoc
// @Summary      Delete a club (university only)
// @Tags         university
// @Produce      json
// @Param        id   path      int  true  "Club ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /university/clubs/{id} [delete]
func (h *Handler) DeleteClub(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}

	msg, err := h.service.DeleteClub(uint(id))
	if err != nil {
		if errors.Is(err, ErrClubNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete club"})
		return
	}

	ac, _ := middleware.GetAccessContext(c)
	clubID := uint(id)
	h.auditSvc.LogAction(c.Request.Context(), &ac.UserID, &clubID, "club.delete",
		map[string]interface{}{"club_id": clubID}, middleware.GetIPFromContext(c), "success")

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// RevokeLeader godoc
// @Summary      Revoke a club's leader access (university only)
// @Tags         university
// @Produce      json
// @Param        id   path      int  true  "Club ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /university/clubs/{id}/revoke-leader [post]
func (h *Handler) RevokeLeader(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}

	msg, err := h.service.RevokeLeader(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, ErrClubNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
		case errors.Is(err, ErrLeaderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "leader account not found"})
		case errors.Is(err, ErrNoLeader):
			c.JSON(http.StatusBadRequest, gin.H{"error": "this club has no leader assigned"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke leader access"})
		}
		return
	}

	ac, _ := middleware.GetAccessContext(c)
	clubID := uint(id)
	h.auditSvc.LogAction(c.Request.Context(), &ac.UserID, &clubID, "club.revoke_leader",
		map[string]interface{}{"club_id": clubID}, middleware.GetIPFromContext(c), "success")

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
