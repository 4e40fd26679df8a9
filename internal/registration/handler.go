package registration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubhubdev/clubhub-backend/internal/auditlog"
	"github.com/clubhubdev/clubhub-backend/internal/event"
	"github.com/clubhubdev/clubhub-backend/middleware"
)

type Handler struct {
	service  Service
	auditSvc auditlog.Service
}

func NewHandler(service Service, auditSvc auditlog.Service) *Handler {
	return &Handler{service: service, auditSvc: auditSvc}
}

// Register godoc
// @Summary      RSVP for an event (authenticated)
// @Tags         registrations
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  map[string]interface{}  "reactivated"
// @Success      201  {object}  map[string]interface{}  "created"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /events/{id}/register [post]
func (h *Handler) Register(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	result, err := h.service.Register(c.Request.Context(), ac.UserID, uint(eventID))
	if err != nil {
		h.respondRegisterError(c, err)
		return
	}

	evtID := uint(eventID)
	h.auditSvc.LogAction(c.Request.Context(), &ac.UserID, nil, "registration.create",
		map[string]interface{}{"event_id": evtID, "registration_id": result.Registration.ID},
		middleware.GetIPFromContext(c), "success")

	h.respondRegisterResult(c, result)
}

// RegisterGuest godoc
// @Summary      RSVP for an event by name and email
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        request  body      GuestRegisterRequest  true  "Registration"
// @Success      200      {object}  map[string]interface{}
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /registrations [post]
func (h *Handler) RegisterGuest(c *gin.Context) {
	var req GuestRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_id, participant_name and email are required"})
		return
	}

	result, err := h.service.RegisterGuest(c.Request.Context(), req)
	if err != nil {
		h.respondRegisterError(c, err)
		return
	}

	h.respondRegisterResult(c, result)
}

func (h *Handler) respondRegisterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, event.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, gin.H{"error": "already registered for this event"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
	}
}

func (h *Handler) respondRegisterResult(c *gin.Context, result *RegisterResult) {
	qrURL := "/api/v1/registrations/" + strconv.FormatUint(uint64(result.Registration.ID), 10) + "/qr"

	status := http.StatusOK
	message := "RSVP reactivated and QR resent."
	if result.Created {
		status = http.StatusCreated
		message = "RSVP confirmed!"
	}

	c.JSON(status, gin.H{
		"message":      message,
		"registration": result.Registration,
		"qr_code_url":  qrURL,
	})
}

// Cancel godoc
// @Summary      Cancel an RSVP
// @Tags         registrations
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Security     BearerAuth
// @Router       /events/{id}/rsvp [delete]
func (h *Handler) Cancel(c *gin.Context) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.service.Cancel(uint(eventID), ac.Email); err != nil {
		switch {
		case errors.Is(err, ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "RSVP not found"})
		case errors.Is(err, ErrCannotCancelCheckedIn):
			c.JSON(http.StatusConflict, gin.H{"error": "cannot cancel after check-in"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel RSVP"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "RSVP cancelled.", "event_id": eventID})
}

// ListActive returns all active registrations
func (h *Handler) ListActive(c *gin.Context) {
	regs, err := h.service.AllActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registrations"})
		return
	}
	c.JSON(http.StatusOK, regs)
}

// ByParticipant returns active registrations for an email
func (h *Handler) ByParticipant(c *gin.Context) {
	regs, err := h.service.ByParticipant(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registrations"})
		return
	}
	c.JSON(http.StatusOK, regs)
}

// QRsByParticipant returns QR code URLs for an email
func (h *Handler) QRsByParticipant(c *gin.Context) {
	qrs, err := h.service.QRsByParticipant(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch QR codes"})
		return
	}
	c.JSON(http.StatusOK, qrs)
}

// QRImage godoc
// @Summary      Serve the QR code PNG for a registration
// @Tags         registrations
// @Produce      png
// @Param        id   path  int  true  "Registration ID"
// @Success      200  {file}  file
// @Failure      404  {object}  map[string]string
// @Router       /registrations/{id}/qr [get]
func (h *Handler) QRImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
		return
	}

	path, err := h.service.QRImagePath(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "QR code not found"})
		return
	}

	c.File(path)
}

// Roster godoc
// @Summary      List active registrations for an event (leader only)
// @Tags         leader
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /leader/registrations/{id} [get]
func (h *Handler) Roster(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	evt, entries, err := h.service.Roster(ac.UserID, uint(eventID))
	if err != nil {
		switch {
		case errors.Is(err, event.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, ErrNotEventOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only view registrations for events from your own clubs"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registrations"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": evt, "registrations": entries})
}

// CheckIn godoc
// @Summary      Check in an attendee from a scanned QR code (leader only)
// @Tags         leader
// @Accept       json
// @Produce      json
// @Param        request  body      CheckInRequest  true  "Scanned code"
// @Success      200      {object}  CheckInResult
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Security     BearerAuth
// @Router       /leader/check-in [post]
func (h *Handler) CheckIn(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Fall back to a path-style numeric ID
		req.Code = c.Param("id")
		if req.Code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
			return
		}
	}

	result, err := h.service.CheckIn(ac.UserID, req.Code)
	if err != nil {
		status := "failure"
		switch {
		case errors.Is(err, ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid QR code format"})
		case errors.Is(err, ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid QR code, registration not found"})
		case errors.Is(err, ErrNotEventOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only check in attendees for events from your own clubs"})
		case errors.Is(err, ErrCancelledRegistration):
			c.JSON(http.StatusConflict, gin.H{"error": "this RSVP has been cancelled"})
		default:
			status = "error"
			c.JSON(http.StatusInternalServerError, gin.H{"error": "check-in failed"})
		}

		h.auditSvc.LogAction(c.Request.Context(), &ac.UserID, nil, "registration.checkin",
			map[string]interface{}{"code": req.Code}, middleware.GetIPFromContext(c), status)
		return
	}

	h.auditSvc.LogAction(c.Request.Context(), &ac.UserID, nil, "registration.checkin",
		map[string]interface{}{"event_id": result.EventID, "participant": result.Participant},
		middleware.GetIPFromContext(c), "success")

	c.JSON(http.StatusOK, result)
}
