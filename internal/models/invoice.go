package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Invoice carries no owner column; ownership is derived through its project.
type Invoice struct {
	ID            uint64        `gorm:"primarykey" json:"id"`
	Number        string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"number"`
	ProjectID     uint64        `gorm:"not null;index" json:"project_id"`
	Amount        float64       `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	IssueDate     time.Time     `gorm:"not null" json:"issue_date"`
	DueDate       *time.Time    `json:"due_date"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

func (i Invoice) String() string {
	return "Invoice " + i.Number
}
