package registration

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(reg *Registration) error
	Save(reg *Registration) error
	GetByID(id uint) (*Registration, error)
	GetByEventAndEmail(eventID uint, email string) (*Registration, error)
	AllActive() ([]Registration, error)
	ActiveByEvent(eventID uint) ([]RosterEntry, error)
	ActiveByEmail(email string) ([]Registration, error)
	AllByEmail(email string) ([]Registration, error)
	// CheckIn flips the checked-in flag with a guarded UPDATE so a
	// concurrent duplicate scan cannot double-apply. Returns the number
	// of rows changed (0 or 1).
	CheckIn(regID uint, at time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(reg *Registration) error {
	return r.db.Create(reg).Error
}

func (r *repository) Save(reg *Registration) error {
	return r.db.Save(reg).Error
}

func (r *repository) GetByID(id uint) (*Registration, error) {
	var reg Registration
	if err := r.db.First(&reg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *repository) GetByEventAndEmail(eventID uint, email string) (*Registration, error) {
	var reg Registration
	err := r.db.Where("event_id = ? AND email = ?", eventID, email).First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *repository) AllActive() ([]Registration, error) {
	var regs []Registration
	err := r.db.Where("cancelled = false").Find(&regs).Error
	return regs, err
}

// ActiveByEvent joins participant profiles into the roster when the
// registrant has an account
func (r *repository) ActiveByEvent(eventID uint) ([]RosterEntry, error) {
	var regs []Registration
	err := r.db.Where("event_id = ? AND cancelled = false", eventID).
		Order("created_at DESC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}

	out := make([]RosterEntry, 0, len(regs))
	for i := range regs {
		entry := RosterEntry{Registration: regs[i]}

		var profile struct {
			Name         string
			Bio          string
			ProfileImage string
		}
		err := r.db.Table("users").
			Select("name, bio, profile_image").
			Where("email = ? AND role = ?", regs[i].Email, "participant").
			First(&profile).Error
		if err == nil {
			entry.ParticipantName = profile.Name
			entry.ParticipantBio = &profile.Bio
			entry.ParticipantProfileImage = &profile.ProfileImage
		}

		out = append(out, entry)
	}
	return out, nil
}

func (r *repository) ActiveByEmail(email string) ([]Registration, error) {
	var regs []Registration
	err := r.db.Where("email = ? AND cancelled = false", email).Find(&regs).Error
	return regs, err
}

func (r *repository) AllByEmail(email string) ([]Registration, error) {
	var regs []Registration
	err := r.db.Where("email = ?", email).Find(&regs).Error
	return regs, err
}

func (r *repository) CheckIn(regID uint, at time.Time) (int64, error) {
	res := r.db.Model(&Registration{}).
		Where("id = ? AND checked_in = false AND cancelled = false", regID).
		Updates(map[string]interface{}{
			"checked_in":    true,
			"checked_in_at": at,
		})
	return res.RowsAffected, res.Error
}
