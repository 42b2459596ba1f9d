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
	ErrContactLogNotFound = errors.New("contact log not found")
)

// ContactLogService handles contact log business logic
type ContactLogService struct {
	contactLogRepo repository.ContactLogRepository
	clientRepo     repository.ClientRepository
	projectRepo    repository.ProjectRepository
}

// NewContactLogService creates a new ContactLogService
func NewContactLogService(
	contactLogRepo repository.ContactLogRepository,
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
) *ContactLogService {
	return &ContactLogService{
		contactLogRepo: contactLogRepo,
		clientRepo:     clientRepo,
		projectRepo:    projectRepo,
	}
}

// CreateContactLogInput represents input for creating a contact log
type CreateContactLogInput struct {
	ClientID    uint64
	ProjectID   *uint64
	ContactType models.ContactType
	Notes       string
	ContactedAt *time.Time
}

// UpdateContactLogInput represents input for updating a contact log
type UpdateContactLogInput struct {
	ClientID     *uint64
	ProjectID    *uint64
	ClearProject bool
	ContactType  *models.ContactType
	Notes        *string
	ContactedAt  *time.Time
}

// ListContactLogs returns the user's contact logs
func (s *ContactLogService) ListContactLogs(userID uint64, filter repository.ContactLogFilter) ([]models.ContactLog, int64, error) {
	logs, total, err := s.contactLogRepo.List(userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact logs: %w", err)
	}
	return logs, total, nil
}

// GetContactLog returns one of the user's contact logs
func (s *ContactLogService) GetContactLog(userID, logID uint64) (*models.ContactLog, error) {
	log, err := s.contactLogRepo.FindByID(userID, logID, "Client", "Project")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactLogNotFound
		}
		return nil, fmt.Errorf("failed to find contact log: %w", err)
	}
	return log, nil
}

// CreateContactLog creates a contact log against one of the user's clients
// and, optionally, one of the user's projects.
func (s *ContactLogService) CreateContactLog(userID uint64, input CreateContactLogInput) (*models.ContactLog, error) {
	if strings.TrimSpace(input.Notes) == "" {
		return nil, apierrors.NewValidationError("notes", "Notes are required.")
	}

	if err := s.ensureClientOwned(userID, input.ClientID); err != nil {
		return nil, err
	}
	if input.ProjectID != nil {
		if err := s.ensureProjectOwned(userID, *input.ProjectID); err != nil {
			return nil, err
		}
	}

	if input.ContactType == "" {
		input.ContactType = models.ContactTypeEmail
	}

	contactedAt := time.Now()
	if input.ContactedAt != nil {
		contactedAt = *input.ContactedAt
	}

	log := &models.ContactLog{
		UserID:      userID,
		ClientID:    input.ClientID,
		ProjectID:   input.ProjectID,
		ContactType: input.ContactType,
		Notes:       input.Notes,
		ContactedAt: contactedAt,
	}

	if err := s.contactLogRepo.Create(log); err != nil {
		return nil, fmt.Errorf("failed to create contact log: %w", err)
	}

	return s.contactLogRepo.FindByID(userID, log.ID, "Client", "Project")
}

// UpdateContactLog updates one of the user's contact logs
func (s *ContactLogService) UpdateContactLog(userID, logID uint64, input UpdateContactLogInput) (*models.ContactLog, error) {
	log, err := s.contactLogRepo.FindByID(userID, logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactLogNotFound
		}
		return nil, fmt.Errorf("failed to find contact log: %w", err)
	}

	if input.ClientID != nil {
		if err := s.ensureClientOwned(userID, *input.ClientID); err != nil {
			return nil, err
		}
		log.ClientID = *input.ClientID
	}
	if input.ClearProject {
		log.ProjectID = nil
	} else if input.ProjectID != nil {
		if err := s.ensureProjectOwned(userID, *input.ProjectID); err != nil {
			return nil, err
		}
		log.ProjectID = input.ProjectID
	}
	if input.ContactType != nil {
		log.ContactType = *input.ContactType
	}
	if input.Notes != nil {
		if strings.TrimSpace(*input.Notes) == "" {
			return nil, apierrors.NewValidationError("notes", "Notes are required.")
		}
		log.Notes = *input.Notes
	}
	if input.ContactedAt != nil {
		log.ContactedAt = *input.ContactedAt
	}

	if err := s.contactLogRepo.Update(log); err != nil {
		return nil, fmt.Errorf("failed to update contact log: %w", err)
	}

	return s.contactLogRepo.FindByID(userID, log.ID, "Client", "Project")
}

// DeleteContactLog deletes one of the user's contact logs
func (s *ContactLogService) DeleteContactLog(userID, logID uint64) error {
	if err := s.contactLogRepo.Delete(userID, logID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactLogNotFound
		}
		return fmt.Errorf("failed to delete contact log: %w", err)
	}
	return nil
}

func (s *ContactLogService) ensureClientOwned(userID, clientID uint64) error {
	if _, err := s.clientRepo.FindByID(userID, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewValidationError("client_id", "Select one of your clients.")
		}
		return fmt.Errorf("failed to verify client ownership: %w", err)
	}
	return nil
}

func (s *ContactLogService) ensureProjectOwned(userID, projectID uint64) error {
	if _, err := s.projectRepo.FindByID(userID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewValidationError("project_id", "Select one of your projects.")
		}
		return fmt.Errorf("failed to verify project ownership: %w", err)
	}
	return nil
}
