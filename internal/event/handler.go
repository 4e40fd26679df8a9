package event

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clubhubdev/clubhub-backend/config"
	"github.com/clubhubdev/clubhub-backend/internal/auditlog"
	"github.com/clubhubdev/clubhub-backend/middleware"
)

var allowedPosterExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

type Handler struct {
	service  Service
	auditSvc auditlog.Service
}

func NewHandler(service Service, auditSvc auditlog.Service) *Handler {
	return &Handler{service: service, auditSvc: auditSvc}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var ve *ValidationError
	var pe *PolicyError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.As(err, &pe):
		c.JSON(http.StatusBadRequest, gin.H{"error": pe.Message})
	case errors.Is(err, ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only manage events for your own clubs"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// CreateEvent godoc
// @Summary      Create an event (leader only)
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      CreateEventRequest  true  "Event"
// @Success      201      {object}  EventResponse
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Security     BearerAuth
// @Router       /events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	var req CreateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.service.CreateEvent(ac.UserID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.auditSvc.LogAction(c.Request.Context(), &ac.UserID, &resp.ClubID, "event.create",
		map[string]interface{}{"event_id": resp.ID, "title": resp.Title},
		middleware.GetIPFromContext(c), "success")

	c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully!", "event": resp})
}

// ListEvents godoc
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Success      200  {array}  EventResponse
// @Router       /events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.service.ListEvents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  EventResponse
// @Failure      404  {object}  map[string]string
// @Router       /events/{id} [get]
func (h *Handler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	resp, err := h.service.GetEvent(uint(id))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateEvent godoc
// @Summary      Update an event (leader only, until the day before)
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Event ID"
// @Param        request  body      UpdateEventRequest  true  "Fields to change"
// @Success      200      {object}  EventResponse
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Security     BearerAuth
// @Router       /events/{id} [put]
func (h *Handler) UpdateEvent(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.service.UpdateEvent(ac.UserID, uint(id), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.auditSvc.LogAction(c.Request.Context(), &ac.UserID, &resp.ClubID, "event.update",
		map[string]interface{}{"event_id": resp.ID},
		middleware.GetIPFromContext(c), "success")

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully.", "event": resp})
}

// DeleteEvent godoc
// @Summary      Delete an event (leader only, 7 days in advance)
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /events/{id} [delete]
func (h *Handler) DeleteEvent(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.service.DeleteEvent(ac.UserID, uint(id)); err != nil {
		h.respondError(c, err)
		return
	}

	eventID := uint(id)
	h.auditSvc.LogAction(c.Request.Context(), &ac.UserID, nil, "event.delete",
		map[string]interface{}{"event_id": eventID},
		middleware.GetIPFromContext(c), "success")

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}

// BrowseEvents godoc
// @Summary      Browse events with filters
// @Tags         events
// @Produce      json
// @Param        category  query  string  false  "Club category"
// @Param        date      query  string  false  "Earliest date (YYYY-MM-DD)"
// @Param        q         query  string  false  "Keyword in title or description"
// @Success      200  {array}  EventResponse
// @Failure      400  {object}  map[string]string
// @Router       /participant/events [get]
func (h *Handler) BrowseEvents(c *gin.Context) {
	filter := BrowseFilter{
		Category: c.Query("category"),
		Keyword:  c.Query("q"),
	}

	if dateStr := c.Query("date"); dateStr != "" {
		d, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
			return
		}
		filter.DateFrom = &d
	}

	events, err := h.service.BrowseEvents(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// LeaderEvents godoc
// @Summary      Leader dashboard event list with metrics
// @Tags         leader
// @Produce      json
// @Success      200  {array}  LeaderEventResponse
// @Security     BearerAuth
// @Router       /leader/events [get]
func (h *Handler) LeaderEvents(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	events, err := h.service.LeaderEvents(ac.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// TrackViews godoc
// @Summary      Record event detail views
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      map[string][]uint  true  "event_ids"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /events/track-views [post]
func (h *Handler) TrackViews(c *gin.Context) {
	var req struct {
		EventIDs []uint `json:"event_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.EventIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_ids must be a non-empty list"})
		return
	}

	if err := h.service.TrackViews(req.EventIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to track views"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Views tracked"})
}

// UploadPoster godoc
// @Summary      Upload an event poster image (leader only)
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Poster image"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /events/upload-poster [post]
func (h *Handler) UploadPoster(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPosterExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type, allowed: PNG, JPG, JPEG, GIF, WEBP"})
		return
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	dst := filepath.Join(config.UploadPath, "posters", filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Poster uploaded successfully",
		"url":     "/api/v1/posters/" + filename,
	})
}
