package models

import (
	"time"
)

// Submission is a user-reported civic problem. A submission starts pending
// (Approved=false, Points=0) and either becomes approved, which awards the
// fixed point value and moves its image to the approved storage area, or is
// disapproved, which hard-deletes both the row and the image. There is no
// soft delete: a disapproved submission leaves no trace.
type Submission struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	UserID           uint64    `gorm:"not null;index" json:"user_id"`
	ImagePath        string    `gorm:"type:varchar(255);not null" json:"image_path"`
	OriginalFilename string    `gorm:"type:varchar(255)" json:"original_filename"`
	Address          string    `gorm:"type:varchar(200);not null" json:"address"`
	Problem          string    `gorm:"type:text;not null" json:"problem"`
	Approved         bool      `gorm:"not null;default:false;index" json:"approved"`
	Points           int       `gorm:"not null;default:0" json:"points"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
