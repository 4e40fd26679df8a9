package clubrequest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// CreateRequest godoc
// @Summary      Submit a club proposal (participant only)
// @Tags         club-requests
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Proposal"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Security     BearerAuth
// @Router       /club-requests [post]
func (h *Handler) CreateRequest(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if !ac.IsParticipant() {
		c.JSON(http.StatusForbidden, gin.H{"error": "only participants can propose new clubs"})
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.service.CreateRequest(ac.UserID, req)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
		case errors.Is(err, ErrClubNameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "a club with this name already exists"})
		case errors.Is(err, ErrPendingExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "a pending request with this name already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit proposal"})
		}
		return
	}

	h.auditSvc.LogAction(c.Request.Context(), &ac.UserID, nil, "clubrequest.create",
		map[string]interface{}{"request_id": id, "name": req.Name},
		middleware.GetIPFromContext(c), "success")

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Club proposal submitted successfully. University will review within 5 days.",
		"request_id": id,
	})
}

// MyRequests godoc
// @Summary      List own club proposals
// @Tags         club-requests
// @Produce      json
// @Success      200  {array}  MyRequestResponse
// @Security     BearerAuth
// @Router       /club-requests/mine [get]
func (h *Handler) MyRequests(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	out, err := h.service.MyRequests(ac.UserID, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch proposals"})
		return
	}

	c.JSON(http.StatusOK, out)
}

// ListForReview godoc
// @Summary      List club proposals for review (university only)
// @Tags         university
// @Produce      json
// @Param        status  query  string  false  "pending|approved|rejected"
// @Success      200  {array}  AdminRequestResponse
// @Security     BearerAuth
// @Router       /university/club-requests [get]
func (h *Handler) ListForReview(c *gin.Context) {
	out, err := h.service.ListForReview(c.DefaultQuery("status", StatusPending))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch club requests"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Decide godoc
// @Summary      Approve or reject a club proposal (university only)
// @Tags         university
// @Accept       json
// @Produce      json
// @Param        id       path      int              true  "Request ID"
// @Param        request  body      DecisionRequest  true  "Verdict"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /university/club-requests/{id}/decision [post]
func (h *Handler) Decide(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.service.Decide(uint(id), req)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
		case errors.Is(err, ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "club request not found"})
		case errors.Is(err, ErrAlreadyDecided):
			c.JSON(http.StatusBadRequest, gin.H{"error": "request already decided"})
		case errors.Is(err, ErrClubNameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "a club with this name already exists"})
		case errors.Is(err, ErrLeaderEmailUsed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "leader email already exists, please choose a different email"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save decision"})
		}
		return
	}

	ac, _ := middleware.GetAccessContext(c)
	reqID := uint(id)
	h.auditSvc.LogAction(c.Request.Context(), &ac.UserID, nil, "clubrequest.decide",
		map[string]interface{}{"request_id": reqID, "decision": req.Decision},
		middleware.GetIPFromContext(c), "success")

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
