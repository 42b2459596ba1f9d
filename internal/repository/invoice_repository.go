package repository

import (
	"github.com/theshahinrg/crm-api/internal/database"
	"github.com/theshahinrg/crm-api/internal/models"
	"gorm.io/gorm"
)

// GormInvoiceRepository is a GORM implementation of InvoiceRepository.
// Invoices carry no owner column, so every scoped query joins through the
// owning project.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create creates a new invoice
func (r *GormInvoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

// FindByID finds an invoice whose project belongs to the user
func (r *GormInvoiceRepository) FindByID(userID, id uint64, preload ...string) (*models.Invoice, error) {
	var invoice models.Invoice
	query := r.db.
		Joins("JOIN projects ON projects.id = invoices.project_id").
		Where("projects.user_id = ?", userID)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&invoice, "invoices.id = ?", id).Error; err != nil {
		return nil, err
	}

	return &invoice, nil
}

// FindByNumber finds an invoice by its globally unique number, unscoped
func (r *GormInvoiceRepository) FindByNumber(number string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Where("number = ?", number).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List retrieves invoices across the user's projects with filtering
func (r *GormInvoiceRepository) List(userID uint64, filter InvoiceFilter) ([]models.Invoice, int64, error) {
	query := r.db.Model(&models.Invoice{}).
		Joins("JOIN projects ON projects.id = invoices.project_id").
		Where("projects.user_id = ?", userID)

	if filter.PaymentStatus != nil {
		query = query.Where("invoices.payment_status = ?", *filter.PaymentStatus)
	}
	if filter.ProjectID != nil {
		query = query.Where("invoices.project_id = ?", *filter.ProjectID)
	}
	if filter.ClientID != nil {
		query = query.Where("projects.client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("invoices.issue_date DESC")
	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	var invoices []models.Invoice
	if err := listQuery.Preload("Project").Preload("Project.Client").Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// Update updates an invoice
func (r *GormInvoiceRepository) Update(invoice *models.Invoice) error {
	return r.db.Save(invoice).Error
}

// Delete removes an invoice if its project belongs to the user
func (r *GormInvoiceRepository) Delete(userID, id uint64) error {
	ownedProjects := r.db.Model(&models.Project{}).Select("id").Where("user_id = ?", userID)

	res := r.db.Where("project_id IN (?)", ownedProjects).Delete(&models.Invoice{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
