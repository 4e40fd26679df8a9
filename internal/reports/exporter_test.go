package reports

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhubdev/clubhub-backend/internal/analytics"
	"github.com/clubhubdev/clubhub-backend/internal/registration"
)

func sampleAttendance() []analytics.EventAttendanceResponse {
	return []analytics.EventAttendanceResponse{
		{
			EventID: 1, EventTitle: "Robotics Expo", EventDate: "2026-04-20",
			ClubName: "Robotics Club", ClubCategory: "Technology",
			TotalRegistrations: 10, CheckedInCount: 7, CancelledCount: 1,
			AttendanceRate: 70, NoShowRate: 20,
		},
	}
}

func TestBuildAttendanceXLSX(t *testing.T) {
	buf, err := BuildAttendanceXLSX(sampleAttendance())
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestBuildAttendancePDF(t *testing.T) {
	overview := &analytics.Overview{TotalClubs: 3, TotalEvents: 5, TotalRegistrations: 40}

	buf, err := BuildAttendancePDF(sampleAttendance(), overview)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestBuildRosterCSV(t *testing.T) {
	entries := []registration.RosterEntry{
		{Registration: registration.Registration{
			ID: 3, ParticipantName: "Ada", Email: "ada@example.edu",
			CheckedIn: true,
			CreatedAt: time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC),
		}},
	}

	buf, err := BuildRosterCSV(entries)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Registration ID,Name,Email,Checked In,Registered At")
	assert.Contains(t, out, "3,Ada,ada@example.edu,true,2026-04-01 09:30:00")
}
