package repository

import (
	"github.com/theshahinrg/crm-api/internal/database"
	"github.com/theshahinrg/crm-api/internal/models"
	"gorm.io/gorm"
)

// GormClientRepository is a GORM implementation of ClientRepository
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

// Create creates a new client
func (r *GormClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// FindByID finds a client owned by the user
func (r *GormClientRepository) FindByID(userID, id uint64) (*models.Client, error) {
	var client models.Client
	if err := r.db.Scopes(database.OwnedBy(userID)).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByEmail finds a client by exact email within the user's clients
func (r *GormClientRepository) FindByEmail(userID uint64, email string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Scopes(database.OwnedBy(userID)).
		Where("email = ?", email).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// List retrieves the user's clients with filtering and derived counts
func (r *GormClientRepository) List(userID uint64, filter ClientFilter) ([]ClientWithCounts, int64, error) {
	query := r.db.Model(&models.Client{}).Where("clients.user_id = ?", userID)

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("clients.name LIKE ? OR clients.company LIKE ?", pattern, pattern)
	}
	if filter.Email != "" {
		query = query.Where("clients.email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.ProjectStatus != nil {
		statusSubQuery := r.db.Model(&models.Project{}).
			Select("1").
			Where("projects.client_id = clients.id").
			Where("projects.status = ?", *filter.ProjectStatus)
		query = query.Where("EXISTS (?)", statusSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("clients.name ASC")
	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	var clients []models.Client
	if err := listQuery.Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	counts, err := r.countsForClients(clients)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]ClientWithCounts, len(clients))
	for i, client := range clients {
		rows[i] = ClientWithCounts{
			Client:       client,
			ProjectCount: counts[client.ID].projects,
			InvoiceCount: counts[client.ID].invoices,
		}
	}

	return rows, total, nil
}

type clientCounts struct {
	projects int64
	invoices int64
}

// countsForClients annotates list rows with distinct project and invoice
// counts across each client's projects.
func (r *GormClientRepository) countsForClients(clients []models.Client) (map[uint64]clientCounts, error) {
	counts := make(map[uint64]clientCounts, len(clients))
	if len(clients) == 0 {
		return counts, nil
	}

	ids := make([]uint64, len(clients))
	for i, client := range clients {
		ids[i] = client.ID
	}

	var rows []struct {
		ClientID     uint64
		ProjectCount int64
		InvoiceCount int64
	}
	err := r.db.Model(&models.Project{}).
		Select("projects.client_id AS client_id, COUNT(DISTINCT projects.id) AS project_count, COUNT(DISTINCT invoices.id) AS invoice_count").
		Joins("LEFT JOIN invoices ON invoices.project_id = projects.id").
		Where("projects.client_id IN ?", ids).
		Group("projects.client_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ClientID] = clientCounts{projects: row.ProjectCount, invoices: row.InvoiceCount}
	}

	return counts, nil
}

// Update updates a client
func (r *GormClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// Delete removes a client and cascades to its projects, their invoices, and
// the client's contact logs. Children go first so a missing or foreign client
// rolls everything back.
func (r *GormClientRepository) Delete(userID, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		projectIDs := tx.Model(&models.Project{}).Select("id").Where("client_id = ?", id)

		if err := tx.Where("project_id IN (?)", projectIDs).Delete(&models.Invoice{}).Error; err != nil {
			return err
		}

		if err := tx.Where("client_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}

		if err := tx.Where("client_id = ?", id).Delete(&models.ContactLog{}).Error; err != nil {
			return err
		}

		res := tx.Where("user_id = ?", userID).Delete(&models.Client{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
