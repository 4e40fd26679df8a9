package analytics

import (
	"time"

	"gorm.io/gorm"
)

// Overview is the top-line platform summary
type Overview struct {
	TotalClubs         int64 `json:"total_clubs"`
	TotalEvents        int64 `json:"total_events"`
	TotalRegistrations int64 `json:"total_registrations"`
}

// ClubPopularity ranks clubs by active registrations
type ClubPopularity struct {
	ClubName      string `json:"club_name"`
	Registrations int64  `json:"registrations"`
}

// DayActivity counts active registrations per event date
type DayActivity struct {
	Date          time.Time `json:"-"`
	Registrations int64     `json:"registrations"`
}

// EventAttendance aggregates per-event attendance figures
type EventAttendance struct {
	EventID            uint      `json:"event_id"`
	EventTitle         string    `json:"event_title"`
	EventDate          time.Time `json:"-"`
	ClubName           string    `json:"club_name"`
	ClubCategory       string    `json:"club_category"`
	TotalRegistrations int64     `json:"total_registrations"`
	CheckedInCount     int64     `json:"checked_in_count"`
	CancelledCount     int64     `json:"cancelled_count"`
}

type Repository interface {
	Overview() (*Overview, error)
	PopularClubs() ([]ClubPopularity, error)
	ActiveDays() ([]DayActivity, error)
	EventAttendance() ([]EventAttendance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Overview() (*Overview, error) {
	var out Overview

	if err := r.db.Table("clubs").Count(&out.TotalClubs).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("events").Count(&out.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("registrations").
		Where("cancelled = false").
		Count(&out.TotalRegistrations).Error; err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *repository) PopularClubs() ([]ClubPopularity, error) {
	var out []ClubPopularity
	err := r.db.
		Table("clubs c").
		Select("c.name as club_name, COUNT(r.id) as registrations").
		Joins("JOIN events e ON c.id = e.club_id").
		Joins("JOIN registrations r ON r.event_id = e.id").
		Where("r.cancelled = false").
		Group("c.name").
		Order("COUNT(r.id) DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) ActiveDays() ([]DayActivity, error) {
	var out []DayActivity
	err := r.db.
		Table("events e").
		Select("e.date as date, COUNT(r.id) as registrations").
		Joins("JOIN registrations r ON r.event_id = e.id").
		Where("r.cancelled = false").
		Group("e.date").
		Order("e.date ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) EventAttendance() ([]EventAttendance, error) {
	var out []EventAttendance
	err := r.db.
		Table("events e").
		Select(`
			e.id as event_id,
			e.title as event_title,
			e.date as event_date,
			c.name as club_name,
			c.category as club_category,
			COUNT(r.id) as total_registrations,
			COALESCE(SUM(CASE WHEN r.checked_in THEN 1 ELSE 0 END), 0) as checked_in_count,
			COALESCE(SUM(CASE WHEN r.cancelled THEN 1 ELSE 0 END), 0) as cancelled_count
		`).
		Joins("JOIN clubs c ON e.club_id = c.id").
		Joins("LEFT JOIN registrations r ON r.event_id = e.id").
		Group("e.id, e.title, e.date, c.name, c.category").
		Order("e.date DESC").
		Find(&out).Error
	return out, err
}
