package models

import (
	"fmt"
	"time"
)

type ContactType string

const (
	ContactTypeEmail   ContactType = "email"
	ContactTypePhone   ContactType = "phone"
	ContactTypeMeeting ContactType = "meeting"
	ContactTypeOther   ContactType = "other"
)

// ContactLog records an interaction with a client, optionally tied to one of
// the same user's projects. Deleting the project keeps the log and clears the
// reference.
type ContactLog struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	UserID      uint64      `gorm:"not null;index" json:"user_id"`
	ClientID    uint64      `gorm:"not null;index" json:"client_id"`
	ProjectID   *uint64     `gorm:"index" json:"project_id"`
	ContactType ContactType `gorm:"type:varchar(20);not null;default:'email'" json:"contact_type"`
	Notes       string      `gorm:"type:text;not null" json:"notes"`
	ContactedAt time.Time   `gorm:"not null;index" json:"contacted_at"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Relations
	User    User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Client  Client   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"client,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"project,omitempty"`
}

func (l ContactLog) String() string {
	if l.Client.ID != 0 {
		return fmt.Sprintf("%s with %s", l.ContactType, l.Client.Name)
	}
	return string(l.ContactType)
}
