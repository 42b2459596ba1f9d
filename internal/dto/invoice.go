package dto

import (
	"time"

	"github.com/theshahinrg/crm-api/internal/models"
)

// InvoiceDTO represents an invoice in API responses
type InvoiceDTO struct {
	ID            uint64               `json:"id"`
	Number        string               `json:"number"`
	ProjectID     uint64               `json:"project_id"`
	Amount        float64              `json:"amount"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	IssueDate     time.Time            `json:"issue_date"`
	DueDate       *time.Time           `json:"due_date"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	Display       string               `json:"display"`
	Project       *ProjectDTO          `json:"project,omitempty"`
}

// ToInvoiceDTO converts an Invoice model to InvoiceDTO
func ToInvoiceDTO(invoice models.Invoice) InvoiceDTO {
	dto := InvoiceDTO{
		ID:            invoice.ID,
		Number:        invoice.Number,
		ProjectID:     invoice.ProjectID,
		Amount:        invoice.Amount,
		PaymentStatus: invoice.PaymentStatus,
		IssueDate:     invoice.IssueDate,
		DueDate:       invoice.DueDate,
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
		Display:       invoice.String(),
	}

	// Include project if preloaded
	if invoice.Project.ID != 0 {
		project := ToProjectDTO(invoice.Project)
		dto.Project = &project
	}

	return dto
}

// ToInvoiceDTOs converts a slice of invoices
func ToInvoiceDTOs(invoices []models.Invoice) []InvoiceDTO {
	items := make([]InvoiceDTO, len(invoices))
	for i, inv := range invoices {
		items[i] = ToInvoiceDTO(inv)
	}
	return items
}
