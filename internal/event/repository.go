package event

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clubhubdev/clubhub-backend/internal/club"
)

type Repository interface {
	Create(e *Event) error
	GetByID(id uint) (*Event, error)
	GetAll() ([]Event, error)
	Browse(filter BrowseFilter) ([]Event, error)
	Update(e *Event) error
	// DeleteCascade removes the event together with its registrations
	DeleteCascade(eventID uint) error
	LeaderOwnsClub(leaderID, clubID uint) (bool, error)
	LeaderOwnsEvent(leaderID, eventID uint) (bool, error)
	LeaderEvents(leaderID uint) ([]LeaderEventResponse, error)
	IncrementViews(eventID uint) error
	Exists(eventID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(e *Event) error {
	return r.db.Create(e).Error
}

func (r *repository) GetByID(id uint) (*Event, error) {
	var e Event
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) GetAll() ([]Event, error) {
	var events []Event
	err := r.db.Order("date ASC, start_time ASC").Find(&events).Error
	return events, err
}

func (r *repository) Browse(filter BrowseFilter) ([]Event, error) {
	var events []Event
	query := r.db.Model(&Event{}).
		Joins("JOIN clubs ON clubs.id = events.club_id")

	if filter.Category != "" {
		query = query.Where("clubs.category ILIKE ?", "%"+filter.Category+"%")
	}
	if filter.DateFrom != nil {
		query = query.Where("events.date >= ?", *filter.DateFrom)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("events.title ILIKE ? OR events.description ILIKE ?", kw, kw)
	}

	err := query.Order("events.date ASC, events.start_time ASC").Find(&events).Error
	return events, err
}

func (r *repository) Update(e *Event) error {
	return r.db.Save(e).Error
}

func (r *repository) DeleteCascade(eventID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM registrations WHERE event_id = ?", eventID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&EventInsight{}, "event_id = ?", eventID).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, eventID).Error
	})
}

func (r *repository) LeaderOwnsClub(leaderID, clubID uint) (bool, error) {
	var count int64
	err := r.db.Model(&club.Club{}).
		Where("id = ? AND leader_id = ?", clubID, leaderID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) LeaderOwnsEvent(leaderID, eventID uint) (bool, error) {
	var count int64
	err := r.db.
		Table("events e").
		Joins("JOIN clubs c ON c.id = e.club_id").
		Where("e.id = ? AND c.leader_id = ?", eventID, leaderID).
		Count(&count).Error
	return count > 0, err
}

// LeaderEvents returns the leader's events with active registration and
// view counts for the dashboard
func (r *repository) LeaderEvents(leaderID uint) ([]LeaderEventResponse, error) {
	type row struct {
		Event
		ClubName          string
		RegistrationCount int64
		ViewCount         int64
	}

	var rows []row
	err := r.db.
		Table("events e").
		Select(`
			e.*,
			c.name as club_name,
			COALESCE(SUM(CASE WHEN r.cancelled = false THEN 1 ELSE 0 END), 0) as registration_count,
			COALESCE(MAX(ei.views), 0) as view_count
		`).
		Joins("JOIN clubs c ON c.id = e.club_id").
		Joins("LEFT JOIN registrations r ON r.event_id = e.id").
		Joins("LEFT JOIN event_insights ei ON ei.event_id = e.id").
		Where("c.leader_id = ?", leaderID).
		Group("e.id, c.name").
		Order("e.date ASC, e.start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]LeaderEventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, LeaderEventResponse{
			EventResponse:     toResponse(&rows[i].Event),
			ClubName:          rows[i].ClubName,
			RegistrationCount: rows[i].RegistrationCount,
			ViewCount:         rows[i].ViewCount,
		})
	}
	return out, nil
}

// IncrementViews bumps the counter atomically, inserting the row on
// first sight of the event
func (r *repository) IncrementViews(eventID uint) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"views": gorm.Expr("event_insights.views + 1")}),
	}).Create(&EventInsight{EventID: eventID, Views: 1}).Error
}

func (r *repository) Exists(eventID uint) (bool, error) {
	var count int64
	err := r.db.Model(&Event{}).Where("id = ?", eventID).Count(&count).Error
	return count > 0, err
}
