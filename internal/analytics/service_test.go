package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	attendance []EventAttendance
	days       []DayActivity
}

func (f *fakeRepo) Overview() (*Overview, error)                { return &Overview{}, nil }
func (f *fakeRepo) PopularClubs() ([]ClubPopularity, error)     { return nil, nil }
func (f *fakeRepo) ActiveDays() ([]DayActivity, error)          { return f.days, nil }
func (f *fakeRepo) EventAttendance() ([]EventAttendance, error) { return f.attendance, nil }

func TestEventAttendanceRates(t *testing.T) {
	date := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{attendance: []EventAttendance{
		{EventID: 1, EventTitle: "Expo", EventDate: date, TotalRegistrations: 8, CheckedInCount: 5, CancelledCount: 1},
		{EventID: 2, EventTitle: "Empty", EventDate: date, TotalRegistrations: 0},
		{EventID: 3, EventTitle: "Thirds", EventDate: date, TotalRegistrations: 3, CheckedInCount: 1},
	}}

	out, err := NewService(repo).EventAttendance()
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, 62.5, out[0].AttendanceRate)
	assert.Equal(t, 25.0, out[0].NoShowRate)
	assert.Equal(t, "2026-05-02", out[0].EventDate)

	// Empty event divides by nothing, rates stay zero
	assert.Zero(t, out[1].AttendanceRate)
	assert.Zero(t, out[1].NoShowRate)

	assert.Equal(t, 33.33, out[2].AttendanceRate)
	assert.Equal(t, 66.67, out[2].NoShowRate)
}

func TestActiveDaysFormatsDates(t *testing.T) {
	repo := &fakeRepo{days: []DayActivity{
		{Date: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), Registrations: 4},
	}}

	out, err := NewService(repo).ActiveDays()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, DayActivityResponse{Date: "2026-05-02", Registrations: 4}, out[0])
}
