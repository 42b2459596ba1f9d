package repository

import (
	"github.com/theshahinrg/crm-api/internal/models"
	"github.com/theshahinrg/crm-api/internal/utils"
)

// Every repository method that touches existing rows takes the acting user's
// ID and restricts the dataset to that user's own subtree. A foreign record
// id yields gorm.ErrRecordNotFound, indistinguishable from a missing one.

// ClientFilter holds filtering options for listing clients.
type ClientFilter struct {
	// Query matches name or company, case-insensitively.
	Query string
	// Email matches partially.
	Email string
	// ProjectStatus keeps clients that have at least one project with the status.
	ProjectStatus *models.ProjectStatus
	Pagination    utils.PaginationParams
}

// ClientWithCounts is a client list row annotated with derived counts across
// the client's projects.
type ClientWithCounts struct {
	models.Client
	ProjectCount int64 `json:"project_count"`
	InvoiceCount int64 `json:"invoice_count"`
}

// ClientRepository defines owner-scoped data access for clients.
type ClientRepository interface {
	Create(client *models.Client) error
	FindByID(userID, id uint64) (*models.Client, error)
	// FindByEmail looks up a client by exact email within one user's clients.
	FindByEmail(userID uint64, email string) (*models.Client, error)
	// List returns the user's clients ordered by name, with project and
	// invoice counts.
	List(userID uint64, filter ClientFilter) ([]ClientWithCounts, int64, error)
	Update(client *models.Client) error
	// Delete removes the client and cascades to its projects, those projects'
	// invoices, and the client's contact logs.
	Delete(userID, id uint64) error
}

// ProjectFilter holds filtering options for listing projects.
type ProjectFilter struct {
	Status     *models.ProjectStatus
	ClientID   *uint64
	Pagination utils.PaginationParams
}

// ProjectRepository defines owner-scoped data access for projects.
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(userID, id uint64, preload ...string) (*models.Project, error)
	// List returns the user's projects ordered by creation time descending.
	List(userID uint64, filter ProjectFilter) ([]models.Project, int64, error)
	Update(project *models.Project) error
	// Delete removes the project, deletes its invoices, and clears the
	// project reference on its contact logs.
	Delete(userID, id uint64) error
}

// InvoiceFilter holds filtering options for listing invoices.
type InvoiceFilter struct {
	PaymentStatus *models.PaymentStatus
	ProjectID     *uint64
	// ClientID keeps invoices belonging to one client's projects.
	ClientID   *uint64
	Pagination utils.PaginationParams
}

// InvoiceRepository defines data access for invoices. Invoices have no owner
// column; scoping joins through the owning project.
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	FindByID(userID, id uint64, preload ...string) (*models.Invoice, error)
	// FindByNumber looks up an invoice by its globally unique number,
	// unscoped. Used only for uniqueness checks, never exposed.
	FindByNumber(number string) (*models.Invoice, error)
	// List returns invoices across the user's projects ordered by issue date
	// descending.
	List(userID uint64, filter InvoiceFilter) ([]models.Invoice, int64, error)
	Update(invoice *models.Invoice) error
	Delete(userID, id uint64) error
}

// ContactLogFilter holds filtering options for listing contact logs.
type ContactLogFilter struct {
	ClientID    *uint64
	ProjectID   *uint64
	ContactType *models.ContactType
	Pagination  utils.PaginationParams
}

// ContactLogRepository defines owner-scoped data access for contact logs.
type ContactLogRepository interface {
	Create(log *models.ContactLog) error
	FindByID(userID, id uint64, preload ...string) (*models.ContactLog, error)
	// List returns the user's contact logs ordered by contact time descending.
	List(userID uint64, filter ContactLogFilter) ([]models.ContactLog, int64, error)
	Update(log *models.ContactLog) error
	Delete(userID, id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint64) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
}
