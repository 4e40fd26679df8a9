package club

import "time"

// Club represents the clubs table
type Club struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:80" json:"category"`
	LeaderID    *uint     `gorm:"index" json:"leader_id,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Club) TableName() string {
	return "clubs"
}

// ClubResponse is the public club shape
type ClubResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// AdminClubResponse adds leader and activity info for university views
type AdminClubResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	LeaderID    *uint   `json:"leader_id"`
	LeaderName  *string `json:"leader_name"`
	LeaderEmail *string `json:"leader_email"`
	EventCount  int64   `json:"event_count"`
}
