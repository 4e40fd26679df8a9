package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Overview godoc
// @Summary      Platform totals
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  Overview
// @Router       /analytics/overview [get]
func (h *Handler) Overview(c *gin.Context) {
	out, err := h.service.Overview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute overview"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// PopularClubs godoc
// @Summary      Clubs ranked by active registrations
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  ClubPopularity
// @Router       /analytics/popular-clubs [get]
func (h *Handler) PopularClubs(c *gin.Context) {
	out, err := h.service.PopularClubs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rank clubs"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ActiveDays godoc
// @Summary      Registration counts per event date
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  DayActivityResponse
// @Router       /analytics/active-days [get]
func (h *Handler) ActiveDays(c *gin.Context) {
	out, err := h.service.ActiveDays()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute active days"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// EventAttendance godoc
// @Summary      Event-wise attendance statistics
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  EventAttendanceResponse
// @Router       /analytics/event-wise-attendance [get]
func (h *Handler) EventAttendance(c *gin.Context) {
	out, err := h.service.EventAttendance()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute attendance"})
		return
	}
	c.JSON(http.StatusOK, out)
}
