package services

import (
	"errors"
	"fmt"
	"strings"

	apierrors "github.com/theshahinrg/crm-api/internal/errors"
	"github.com/theshahinrg/crm-api/internal/models"
	"github.com/theshahinrg/crm-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound = errors.New("client not found")
)

// ClientService handles client business logic
type ClientService struct {
	clientRepo     repository.ClientRepository
	projectRepo    repository.ProjectRepository
	invoiceRepo    repository.InvoiceRepository
	contactLogRepo repository.ContactLogRepository
}

// NewClientService creates a new ClientService
func NewClientService(
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
	invoiceRepo repository.InvoiceRepository,
	contactLogRepo repository.ContactLogRepository,
) *ClientService {
	return &ClientService{
		clientRepo:     clientRepo,
		projectRepo:    projectRepo,
		invoiceRepo:    invoiceRepo,
		contactLogRepo: contactLogRepo,
	}
}

// CreateClientInput represents input for creating a client
type CreateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Notes   string
}

// UpdateClientInput represents input for updating a client
type UpdateClientInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Notes   *string
}

// ClientDetail aggregates everything shown on a client's detail view.
type ClientDetail struct {
	Client      models.Client
	Projects    []models.Project
	Invoices    []models.Invoice
	ContactLogs []models.ContactLog
}

// ListClients returns the user's clients with derived counts
func (s *ClientService) ListClients(userID uint64, filter repository.ClientFilter) ([]repository.ClientWithCounts, int64, error) {
	clients, total, err := s.clientRepo.List(userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, total, nil
}

// GetClient returns one of the user's clients
func (s *ClientService) GetClient(userID, clientID uint64) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(userID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return client, nil
}

// GetClientDetail returns a client together with its projects, the invoices
// across those projects, and its contact logs.
func (s *ClientService) GetClientDetail(userID, clientID uint64) (*ClientDetail, error) {
	client, err := s.GetClient(userID, clientID)
	if err != nil {
		return nil, err
	}

	projects, _, err := s.projectRepo.List(userID, repository.ProjectFilter{ClientID: &clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to list client projects: %w", err)
	}

	invoices, _, err := s.invoiceRepo.List(userID, repository.InvoiceFilter{ClientID: &clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to list client invoices: %w", err)
	}

	logs, _, err := s.contactLogRepo.List(userID, repository.ContactLogFilter{ClientID: &clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to list client contact logs: %w", err)
	}

	return &ClientDetail{
		Client:      *client,
		Projects:    projects,
		Invoices:    invoices,
		ContactLogs: logs,
	}, nil
}

// CreateClient creates a client owned by the acting user. The owner always
// comes from the session identity, never from the input.
func (s *ClientService) CreateClient(userID uint64, input CreateClientInput) (*models.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apierrors.NewValidationError("name", "Name is required.")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, apierrors.NewValidationError("email", "Email is required.")
	}

	if err := s.ensureEmailAvailable(userID, email, 0); err != nil {
		return nil, err
	}

	client := &models.Client{
		UserID:  userID,
		Name:    name,
		Email:   email,
		Phone:   input.Phone,
		Company: input.Company,
		Notes:   input.Notes,
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// UpdateClient updates one of the user's clients
func (s *ClientService) UpdateClient(userID, clientID uint64, input UpdateClientInput) (*models.Client, error) {
	client, err := s.GetClient(userID, clientID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apierrors.NewValidationError("name", "Name is required.")
		}
		client.Name = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, apierrors.NewValidationError("email", "Email is required.")
		}
		if err := s.ensureEmailAvailable(userID, email, client.ID); err != nil {
			return nil, err
		}
		client.Email = email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Company != nil {
		client.Company = *input.Company
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}

	if err := s.clientRepo.Update(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}

// DeleteClient deletes one of the user's clients along with its projects,
// their invoices, and the client's contact logs.
func (s *ClientService) DeleteClient(userID, clientID uint64) error {
	if err := s.clientRepo.Delete(userID, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// ensureEmailAvailable enforces the per-user email uniqueness, excluding the
// record being updated.
func (s *ClientService) ensureEmailAvailable(userID uint64, email string, excludeID uint64) error {
	existing, err := s.clientRepo.FindByEmail(userID, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check client email: %w", err)
	}
	if existing.ID != excludeID {
		return apierrors.NewValidationError("email", "A client with this email already exists.")
	}
	return nil
}
