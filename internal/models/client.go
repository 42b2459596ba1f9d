package models

import (
	"time"
)

// Client is a business contact owned by exactly one user. The (user, email)
// pair is unique so the same address can exist under different users.
type Client struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_clients_user_email" json:"user_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_clients_user_email" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Company   string    `gorm:"type:varchar(255)" json:"company"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User        User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Projects    []Project    `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
	ContactLogs []ContactLog `gorm:"foreignKey:ClientID" json:"contact_logs,omitempty"`
}

func (c Client) String() string {
	return c.Name
}
