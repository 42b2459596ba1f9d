package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apierrors "github.com/theshahinrg/crm-api/internal/errors"
	"github.com/theshahinrg/crm-api/internal/models"
	"github.com/theshahinrg/crm-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// InvoiceService handles invoice business logic. Invoices have no owner of
// their own, so every ownership decision goes through the chosen project.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	projectRepo repository.ProjectRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, projectRepo repository.ProjectRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		projectRepo: projectRepo,
	}
}

// CreateInvoiceInput represents input for creating an invoice
type CreateInvoiceInput struct {
	Number        string
	ProjectID     uint64
	Amount        float64
	PaymentStatus models.PaymentStatus
	IssueDate     *time.Time
	DueDate       *time.Time
}

// UpdateInvoiceInput represents input for updating an invoice
type UpdateInvoiceInput struct {
	Number        *string
	ProjectID     *uint64
	Amount        *float64
	PaymentStatus *models.PaymentStatus
	IssueDate     *time.Time
	DueDate       *time.Time
}

// ListInvoices returns invoices across the user's projects
func (s *InvoiceService) ListInvoices(userID uint64, filter repository.InvoiceFilter) ([]models.Invoice, int64, error) {
	invoices, total, err := s.invoiceRepo.List(userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, total, nil
}

// GetInvoice returns an invoice belonging to one of the user's projects
func (s *InvoiceService) GetInvoice(userID, invoiceID uint64) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(userID, invoiceID, "Project", "Project.Client")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return invoice, nil
}

// CreateInvoice creates an invoice for one of the user's own projects
func (s *InvoiceService) CreateInvoice(userID uint64, input CreateInvoiceInput) (*models.Invoice, error) {
	number := strings.TrimSpace(input.Number)
	if number == "" {
		return nil, apierrors.NewValidationError("number", "Number is required.")
	}

	if err := s.ensureProjectOwned(userID, input.ProjectID); err != nil {
		return nil, err
	}

	if err := s.ensureNumberAvailable(number, 0); err != nil {
		return nil, err
	}

	if input.PaymentStatus == "" {
		input.PaymentStatus = models.PaymentStatusPending
	}

	issueDate := time.Now()
	if input.IssueDate != nil {
		issueDate = *input.IssueDate
	}

	invoice := &models.Invoice{
		Number:        number,
		ProjectID:     input.ProjectID,
		Amount:        input.Amount,
		PaymentStatus: input.PaymentStatus,
		IssueDate:     issueDate,
		DueDate:       input.DueDate,
	}

	if err := s.invoiceRepo.Create(invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return s.invoiceRepo.FindByID(userID, invoice.ID, "Project", "Project.Client")
}

// UpdateInvoice updates an invoice belonging to one of the user's projects.
// Moving an invoice to another user's project is rejected the same way as
// creating one there.
func (s *InvoiceService) UpdateInvoice(userID, invoiceID uint64, input UpdateInvoiceInput) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(userID, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}

	if input.Number != nil {
		number := strings.TrimSpace(*input.Number)
		if number == "" {
			return nil, apierrors.NewValidationError("number", "Number is required.")
		}
		if err := s.ensureNumberAvailable(number, invoice.ID); err != nil {
			return nil, err
		}
		invoice.Number = number
	}
	if input.ProjectID != nil {
		if err := s.ensureProjectOwned(userID, *input.ProjectID); err != nil {
			return nil, err
		}
		invoice.ProjectID = *input.ProjectID
	}
	if input.Amount != nil {
		invoice.Amount = *input.Amount
	}
	if input.PaymentStatus != nil {
		invoice.PaymentStatus = *input.PaymentStatus
	}
	if input.IssueDate != nil {
		invoice.IssueDate = *input.IssueDate
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}

	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	return s.invoiceRepo.FindByID(userID, invoice.ID, "Project", "Project.Client")
}

// DeleteInvoice deletes an invoice belonging to one of the user's projects
func (s *InvoiceService) DeleteInvoice(userID, invoiceID uint64) error {
	if err := s.invoiceRepo.Delete(userID, invoiceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

// ensureProjectOwned fails unless the project exists and belongs to the user
func (s *InvoiceService) ensureProjectOwned(userID, projectID uint64) error {
	if _, err := s.projectRepo.FindByID(userID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewValidationError("project_id", "Select one of your projects.")
		}
		return fmt.Errorf("failed to verify project ownership: %w", err)
	}
	return nil
}

// ensureNumberAvailable enforces the global invoice number uniqueness,
// excluding the record being updated.
func (s *InvoiceService) ensureNumberAvailable(number string, excludeID uint64) error {
	existing, err := s.invoiceRepo.FindByNumber(number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check invoice number: %w", err)
	}
	if existing.ID != excludeID {
		return apierrors.NewValidationError("number", "An invoice with this number already exists.")
	}
	return nil
}
