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
	ErrProjectNotFound = errors.New("project not found")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, clientRepo repository.ClientRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	ClientID    uint64
	Name        string
	Description string
	Status      models.ProjectStatus
	Amount      float64
	StartDate   *time.Time
	EndDate     *time.Time
}

// UpdateProjectInput represents input for updating a project
type UpdateProjectInput struct {
	ClientID    *uint64
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	Amount      *float64
	StartDate   *time.Time
	EndDate     *time.Time
}

// ListProjects returns the user's projects
func (s *ProjectService) ListProjects(userID uint64, filter repository.ProjectFilter) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// GetProject returns one of the user's projects with its client and invoices
func (s *ProjectService) GetProject(userID, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(userID, projectID, "Client", "Invoices")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProject creates a project referencing one of the user's own clients.
// The client check is the authoritative boundary: the input may name any
// client id, not just those a form would have offered.
func (s *ProjectService) CreateProject(userID uint64, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apierrors.NewValidationError("name", "Name is required.")
	}

	if err := s.ensureClientOwned(userID, input.ClientID); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.ProjectStatusPlanned
	}

	project := &models.Project{
		UserID:      userID,
		ClientID:    input.ClientID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Status:      input.Status,
		Amount:      input.Amount,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(userID, project.ID, "Client")
}

// UpdateProject updates one of the user's projects
func (s *ProjectService) UpdateProject(userID, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(userID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.ClientID != nil {
		if err := s.ensureClientOwned(userID, *input.ClientID); err != nil {
			return nil, err
		}
		project.ClientID = *input.ClientID
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apierrors.NewValidationError("name", "Name is required.")
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.Amount != nil {
		project.Amount = *input.Amount
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.projectRepo.FindByID(userID, project.ID, "Client")
}

// DeleteProject deletes one of the user's projects, its invoices, and clears
// the project reference on related contact logs.
func (s *ProjectService) DeleteProject(userID, projectID uint64) error {
	if err := s.projectRepo.Delete(userID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ensureClientOwned fails unless the client exists and belongs to the user
func (s *ProjectService) ensureClientOwned(userID, clientID uint64) error {
	if _, err := s.clientRepo.FindByID(userID, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NewValidationError("client_id", "Select one of your clients.")
		}
		return fmt.Errorf("failed to verify client ownership: %w", err)
	}
	return nil
}
