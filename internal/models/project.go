package models

import (
	"fmt"
	"time"
)

type ProjectStatus string

const (
	ProjectStatusPlanned    ProjectStatus = "planned"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// Project belongs to one user and one of that user's clients. The user/client
// consistency is enforced by the services, not by a storage constraint.
type Project struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	UserID      uint64        `gorm:"not null;index" json:"user_id"`
	ClientID    uint64        `gorm:"not null;index" json:"client_id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'planned';index" json:"status"`
	Amount      float64       `gorm:"type:decimal(12,2);not null" json:"amount"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	User        User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Client      Client       `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"client,omitempty"`
	Invoices    []Invoice    `gorm:"foreignKey:ProjectID" json:"invoices,omitempty"`
	ContactLogs []ContactLog `gorm:"foreignKey:ProjectID" json:"contact_logs,omitempty"`
}

func (p Project) String() string {
	if p.Client.ID != 0 {
		return fmt.Sprintf("%s (%s)", p.Name, p.Client.Name)
	}
	return p.Name
}
