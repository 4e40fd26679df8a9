package reports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubhubdev/clubhub-backend/internal/analytics"
	"github.com/clubhubdev/clubhub-backend/internal/event"
	"github.com/clubhubdev/clubhub-backend/internal/registration"
	"github.com/clubhubdev/clubhub-backend/middleware"
)

type Handler struct {
	analyticsSvc    analytics.Service
	registrationSvc registration.Service
}

func NewHandler(analyticsSvc analytics.Service, registrationSvc registration.Service) *Handler {
	return &Handler{analyticsSvc: analyticsSvc, registrationSvc: registrationSvc}
}

// AttendanceXLSX godoc
// @Summary      Download the attendance report as XLSX (university only)
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Security     BearerAuth
// @Router       /university/reports/attendance.xlsx [get]
func (h *Handler) AttendanceXLSX(c *gin.Context) {
	rows, err := h.analyticsSvc.EventAttendance()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	buf, err := BuildAttendanceXLSX(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="attendance-report.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// AttendancePDF godoc
// @Summary      Download the attendance report as PDF (university only)
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  file
// @Security     BearerAuth
// @Router       /university/reports/attendance.pdf [get]
func (h *Handler) AttendancePDF(c *gin.Context) {
	rows, err := h.analyticsSvc.EventAttendance()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	overview, err := h.analyticsSvc.Overview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	buf, err := BuildAttendancePDF(rows, overview)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="attendance-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// RosterCSV godoc
// @Summary      Download an event roster as CSV (leader only)
// @Tags         reports
// @Produce      text/csv
// @Param        id   path  int  true  "Event ID"
// @Success      200  {file}  file
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /leader/events/{id}/roster.csv [get]
func (h *Handler) RosterCSV(c *gin.Context) {
	ac, _ := middleware.GetAccessContext(c)

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	_, entries, err := h.registrationSvc.Roster(ac.UserID, uint(eventID))
	if err != nil {
		switch {
		case errors.Is(err, event.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, registration.ErrNotEventOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only export rosters for events from your own clubs"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build roster"})
		}
		return
	}

	buf, err := BuildRosterCSV(entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build roster"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="roster.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
