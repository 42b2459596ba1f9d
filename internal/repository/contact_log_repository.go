package repository

import (
	"github.com/theshahinrg/crm-api/internal/database"
	"github.com/theshahinrg/crm-api/internal/models"
	"gorm.io/gorm"
)

// GormContactLogRepository is a GORM implementation of ContactLogRepository
type GormContactLogRepository struct {
	db *gorm.DB
}

// NewContactLogRepository creates a new ContactLogRepository
func NewContactLogRepository(db *gorm.DB) ContactLogRepository {
	return &GormContactLogRepository{db: db}
}

// Create creates a new contact log
func (r *GormContactLogRepository) Create(log *models.ContactLog) error {
	return r.db.Create(log).Error
}

// FindByID finds a contact log owned by the user, with optional preloading
func (r *GormContactLogRepository) FindByID(userID, id uint64, preload ...string) (*models.ContactLog, error) {
	var log models.ContactLog
	query := r.db.Scopes(database.OwnedBy(userID))

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&log, id).Error; err != nil {
		return nil, err
	}

	return &log, nil
}

// List retrieves the user's contact logs with filtering
func (r *GormContactLogRepository) List(userID uint64, filter ContactLogFilter) ([]models.ContactLog, int64, error) {
	query := r.db.Model(&models.ContactLog{}).Where("contact_logs.user_id = ?", userID)

	if filter.ClientID != nil {
		query = query.Where("contact_logs.client_id = ?", *filter.ClientID)
	}
	if filter.ProjectID != nil {
		query = query.Where("contact_logs.project_id = ?", *filter.ProjectID)
	}
	if filter.ContactType != nil {
		query = query.Where("contact_logs.contact_type = ?", *filter.ContactType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("contact_logs.contacted_at DESC")
	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	var logs []models.ContactLog
	if err := listQuery.Preload("Client").Preload("Project").Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// Update updates a contact log
func (r *GormContactLogRepository) Update(log *models.ContactLog) error {
	return r.db.Save(log).Error
}

// Delete removes a contact log owned by the user
func (r *GormContactLogRepository) Delete(userID, id uint64) error {
	res := r.db.Where("user_id = ?", userID).Delete(&models.ContactLog{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
