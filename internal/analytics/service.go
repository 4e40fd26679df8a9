package analytics

import "math"

const dateLayout = "2006-01-02"

// DayActivityResponse renders the date in wire format
type DayActivityResponse struct {
	Date          string `json:"date"`
	Registrations int64  `json:"registrations"`
}

// EventAttendanceResponse adds derived rates to the raw aggregates
type EventAttendanceResponse struct {
	EventID            uint    `json:"event_id"`
	EventTitle         string  `json:"event_title"`
	EventDate          string  `json:"event_date"`
	ClubName           string  `json:"club_name"`
	ClubCategory       string  `json:"club_category"`
	TotalRegistrations int64   `json:"total_registrations"`
	CheckedInCount     int64   `json:"checked_in_count"`
	CancelledCount     int64   `json:"cancelled_count"`
	AttendanceRate     float64 `json:"attendance_rate"`
	NoShowRate         float64 `json:"no_show_rate"`
}

type Service interface {
	Overview() (*Overview, error)
	PopularClubs() ([]ClubPopularity, error)
	ActiveDays() ([]DayActivityResponse, error)
	EventAttendance() ([]EventAttendanceResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Overview() (*Overview, error) {
	return s.repo.Overview()
}

func (s *service) PopularClubs() ([]ClubPopularity, error) {
	return s.repo.PopularClubs()
}

func (s *service) ActiveDays() ([]DayActivityResponse, error) {
	days, err := s.repo.ActiveDays()
	if err != nil {
		return nil, err
	}

	out := make([]DayActivityResponse, 0, len(days))
	for _, d := range days {
		out = append(out, DayActivityResponse{
			Date:          d.Date.Format(dateLayout),
			Registrations: d.Registrations,
		})
	}
	return out, nil
}

func (s *service) EventAttendance() ([]EventAttendanceResponse, error) {
	rows, err := s.repo.EventAttendance()
	if err != nil {
		return nil, err
	}

	out := make([]EventAttendanceResponse, 0, len(rows))
	for _, row := range rows {
		resp := EventAttendanceResponse{
			EventID:            row.EventID,
			EventTitle:         row.EventTitle,
			EventDate:          row.EventDate.Format(dateLayout),
			ClubName:           row.ClubName,
			ClubCategory:       row.ClubCategory,
			TotalRegistrations: row.TotalRegistrations,
			CheckedInCount:     row.CheckedInCount,
			CancelledCount:     row.CancelledCount,
		}
		if row.TotalRegistrations > 0 {
			total := float64(row.TotalRegistrations)
			resp.AttendanceRate = round2(float64(row.CheckedInCount) / total * 100)
			resp.NoShowRate = round2(float64(row.TotalRegistrations-row.CheckedInCount-row.CancelledCount) / total * 100)
		}
		out = append(out, resp)
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
