package repository

import (
	"github.com/theshahinrg/crm-api/internal/database"
	"github.com/theshahinrg/crm-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project owned by the user, with optional preloading
func (r *GormProjectRepository) FindByID(userID, id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db.Scopes(database.OwnedBy(userID))

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// List retrieves the user's projects with filtering
func (r *GormProjectRepository) List(userID uint64, filter ProjectFilter) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{}).Where("projects.user_id = ?", userID)

	if filter.Status != nil {
		query = query.Where("projects.status = ?", *filter.Status)
	}
	if filter.ClientID != nil {
		query = query.Where("projects.client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("projects.created_at DESC")
	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	var projects []models.Project
	if err := listQuery.Preload("Client").Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project, deletes its invoices, and clears the project
// reference on its contact logs.
func (r *GormProjectRepository) Delete(userID, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.ContactLog{}).
			Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return err
		}

		res := tx.Where("user_id = ?", userID).Delete(&models.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
