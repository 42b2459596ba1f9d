package dto

import (
	"time"

	"github.com/theshahinrg/crm-api/internal/models"
)

// ContactLogDTO represents a contact log in API responses
type ContactLogDTO struct {
	ID          uint64             `json:"id"`
	ClientID    uint64             `json:"client_id"`
	ProjectID   *uint64            `json:"project_id"`
	ContactType models.ContactType `json:"contact_type"`
	Notes       string             `json:"notes"`
	ContactedAt time.Time          `json:"contacted_at"`
	CreatedAt   time.Time          `json:"created_at"`
	Client      *ClientDTO         `json:"client,omitempty"`
	Project     *ProjectDTO        `json:"project,omitempty"`
}

// ToContactLogDTO converts a ContactLog model to ContactLogDTO
func ToContactLogDTO(log models.ContactLog) ContactLogDTO {
	dto := ContactLogDTO{
		ID:          log.ID,
		ClientID:    log.ClientID,
		ProjectID:   log.ProjectID,
		ContactType: log.ContactType,
		Notes:       log.Notes,
		ContactedAt: log.ContactedAt,
		CreatedAt:   log.CreatedAt,
	}

	// Include client if preloaded
	if log.Client.ID != 0 {
		client := ToClientDTO(log.Client)
		dto.Client = &client
	}

	// Include project if preloaded
	if log.Project != nil && log.Project.ID != 0 {
		project := ToProjectDTO(*log.Project)
		dto.Project = &project
	}

	return dto
}

// ToContactLogDTOs converts a slice of contact logs
func ToContactLogDTOs(logs []models.ContactLog) []ContactLogDTO {
	items := make([]ContactLogDTO, len(logs))
	for i, l := range logs {
		items[i] = ToContactLogDTO(l)
	}
	return items
}
