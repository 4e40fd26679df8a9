package userprofile

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/clubhubdev/clubhub-backend/internal/auth"
)

type Repository interface {
	GetUser(id uint) (*auth.User, error)
	GetUserByEmail(email string) (*auth.User, error)
	UpdateUser(user *auth.User) error
	ParticipantStats(email string, today time.Time) (*ParticipantStats, error)
	LeaderStats(leaderID uint) (*LeaderStats, error)
	UniversityStats() (*UniversityStats, error)
	RegistrationHistory(email string) ([]historyRow, error)
}

type historyRow struct {
	RegistrationID uint
	EventID        uint
	EventTitle     string
	EventDate      time.Time
	EventTime      string
	ClubName       string
	ClubCategory   string
	RegisteredAt   time.Time
	CheckedIn      bool
	Cancelled      bool
	QRCodePath     string
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetUser(id uint) (*auth.User, error) {
	var u auth.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetUserByEmail(email string) (*auth.User, error) {
	var u auth.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) UpdateUser(user *auth.User) error {
	return r.db.Save(user).Error
}

func (r *repository) ParticipantStats(email string, today time.Time) (*ParticipantStats, error) {
	var stats ParticipantStats

	if err := r.db.Table("registrations").
		Where("email = ? AND cancelled = false", email).
		Count(&stats.TotalRegistrations).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("registrations").
		Where("email = ? AND checked_in = true", email).
		Count(&stats.EventsAttended).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("registrations r").
		Joins("JOIN events e ON e.id = r.event_id").
		Where("r.email = ? AND r.cancelled = false AND e.date >= ?", email, today).
		Count(&stats.UpcomingEvents).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *repository) LeaderStats(leaderID uint) (*LeaderStats, error) {
	var stats LeaderStats

	if err := r.db.Table("clubs").
		Where("leader_id = ?", leaderID).
		Count(&stats.TotalClubs).Error; err != nil {
		return nil, err
	}
	if stats.TotalClubs == 0 {
		return &stats, nil
	}

	clubIDs := r.db.Table("clubs").Select("id").Where("leader_id = ?", leaderID)

	if err := r.db.Table("events").
		Where("club_id IN (?)", clubIDs).
		Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("registrations r").
		Joins("JOIN events e ON e.id = r.event_id").
		Where("e.club_id IN (?) AND r.cancelled = false", clubIDs).
		Count(&stats.TotalRegistrations).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("registrations r").
		Joins("JOIN events e ON e.id = r.event_id").
		Where("e.club_id IN (?) AND r.checked_in = true", clubIDs).
		Count(&stats.TotalAttendees).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *repository) UniversityStats() (*UniversityStats, error) {
	var stats UniversityStats

	if err := r.db.Table("clubs").Count(&stats.TotalClubs).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("events").Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("users").
		Where("role = ?", string(auth.RoleParticipant)).
		Count(&stats.TotalParticipants).Error; err != nil {
		return nil, err
	}
	if err := r.db.Table("users").
		Where("role = ?", string(auth.RoleLeader)).
		Count(&stats.TotalLeaders).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *repository) RegistrationHistory(email string) ([]historyRow, error) {
	var rows []historyRow
	err := r.db.
		Table("registrations r").
		Select(`
			r.id as registration_id,
			e.id as event_id,
			e.title as event_title,
			e.date as event_date,
			e.start_time as event_time,
			c.name as club_name,
			c.category as club_category,
			r.created_at as registered_at,
			r.checked_in,
			r.cancelled,
			r.qr_code_path
		`).
		Joins("JOIN events e ON e.id = r.event_id").
		Joins("JOIN clubs c ON c.id = e.club_id").
		Where("r.email = ?", email).
		Order("r.created_at DESC").
		Find(&rows).Error
	return rows, err
}
