package dto

import (
	"time"

	"github.com/theshahinrg/crm-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64               `json:"id"`
	ClientID    uint64               `json:"client_id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	Amount      float64              `json:"amount"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `json:"end_date"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Client      *ClientDTO           `json:"client,omitempty"`
	Invoices    []InvoiceDTO         `json:"invoices,omitempty"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		ClientID:    project.ClientID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		Amount:      project.Amount,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	// Include client if preloaded
	if project.Client.ID != 0 {
		client := ToClientDTO(project.Client)
		dto.Client = &client
	}

	// Include invoices if preloaded
	if len(project.Invoices) > 0 {
		dto.Invoices = make([]InvoiceDTO, len(project.Invoices))
		for i, inv := range project.Invoices {
			dto.Invoices[i] = ToInvoiceDTO(inv)
		}
	}

	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		items[i] = ToProjectDTO(p)
	}
	return items
}
