package dto

import (
	"time"

	"github.com/theshahinrg/crm-api/internal/models"
	"github.com/theshahinrg/crm-api/internal/repository"
	"github.com/theshahinrg/crm-api/internal/services"
)

// ClientDTO represents a client in API responses
type ClientDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientListItemDTO is a client list row with derived counts
type ClientListItemDTO struct {
	ClientDTO
	ProjectCount int64 `json:"project_count"`
	InvoiceCount int64 `json:"invoice_count"`
}

// ClientDetailDTO is the client detail view: the client plus its projects,
// the invoices across those projects, and its contact logs.
type ClientDetailDTO struct {
	ClientDTO
	Projects    []ProjectDTO    `json:"projects"`
	Invoices    []InvoiceDTO    `json:"invoices"`
	ContactLogs []ContactLogDTO `json:"contact_logs"`
}

// ToClientDTO converts a Client model to ClientDTO
func ToClientDTO(client models.Client) ClientDTO {
	return ClientDTO{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Company:   client.Company,
		Notes:     client.Notes,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

// ToClientListItemDTOs converts annotated list rows to DTOs
func ToClientListItemDTOs(clients []repository.ClientWithCounts) []ClientListItemDTO {
	items := make([]ClientListItemDTO, len(clients))
	for i, c := range clients {
		items[i] = ClientListItemDTO{
			ClientDTO:    ToClientDTO(c.Client),
			ProjectCount: c.ProjectCount,
			InvoiceCount: c.InvoiceCount,
		}
	}
	return items
}

// ToClientDetailDTO converts a service detail aggregate to a DTO
func ToClientDetailDTO(detail services.ClientDetail) ClientDetailDTO {
	projects := make([]ProjectDTO, len(detail.Projects))
	for i, p := range detail.Projects {
		projects[i] = ToProjectDTO(p)
	}

	invoices := make([]InvoiceDTO, len(detail.Invoices))
	for i, inv := range detail.Invoices {
		invoices[i] = ToInvoiceDTO(inv)
	}

	logs := make([]ContactLogDTO, len(detail.ContactLogs))
	for i, l := range detail.ContactLogs {
		logs[i] = ToContactLogDTO(l)
	}

	return ClientDetailDTO{
		ClientDTO:   ToClientDTO(detail.Client),
		Projects:    projects,
		Invoices:    invoices,
		ContactLogs: logs,
	}
}
