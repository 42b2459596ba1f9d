package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/theshahinrg/crm-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InvoiceRepositoryTestSuite defines the test suite for GormInvoiceRepository
type InvoiceRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo InvoiceRepository

	alice        *models.User
	bob          *models.User
	aliceProject *models.Project
	bobProject   *models.Project
}

// SetupTest runs before each test
func (suite *InvoiceRepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.Invoice{},
		&models.ContactLog{},
	)
	suite.Require().NoError(err)

	suite.repo = NewInvoiceRepository(suite.db)

	suite.alice = suite.createTestUser("alice")
	suite.bob = suite.createTestUser("bob")

	aliceClient := &models.Client{UserID: suite.alice.ID, Name: "Alice Client", Email: "alice.client@example.com"}
	suite.db.Create(aliceClient)
	bobClient := &models.Client{UserID: suite.bob.ID, Name: "Bob Client", Email: "bob.client@example.com"}
	suite.db.Create(bobClient)

	suite.aliceProject = &models.Project{UserID: suite.alice.ID, ClientID: aliceClient.ID, Name: "Redesign", Status: models.ProjectStatusInProgress}
	suite.db.Create(suite.aliceProject)
	suite.bobProject = &models.Project{UserID: suite.bob.ID, ClientID: bobClient.ID, Name: "Audit", Status: models.ProjectStatusPlanned}
	suite.db.Create(suite.bobProject)
}

// TearDownTest runs after each test
func (suite *InvoiceRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *InvoiceRepositoryTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *InvoiceRepositoryTestSuite) createTestInvoice(projectID uint64, number string, issueDate time.Time) *models.Invoice {
	invoice := &models.Invoice{
		Number:        number,
		ProjectID:     projectID,
		Amount:        250,
		PaymentStatus: models.PaymentStatusPending,
		IssueDate:     issueDate,
	}
	suite.db.Create(invoice)
	return invoice
}

// TestFindByID_ScopedThroughProject verifies ownership is derived via the
// owning project
func (suite *InvoiceRepositoryTestSuite) TestFindByID_ScopedThroughProject() {
	invoice := suite.createTestInvoice(suite.aliceProject.ID, "INV-001", time.Now())

	found, err := suite.repo.FindByID(suite.alice.ID, invoice.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "INV-001", found.Number)

	_, err = suite.repo.FindByID(suite.bob.ID, invoice.ID)
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

// TestFindByNumber_Unscoped verifies the uniqueness lookup sees every invoice
func (suite *InvoiceRepositoryTestSuite) TestFindByNumber_Unscoped() {
	suite.createTestInvoice(suite.bobProject.ID, "INV-900", time.Now())

	found, err := suite.repo.FindByNumber("INV-900")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "INV-900", found.Number)

	_, err = suite.repo.FindByNumber("INV-999")
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

// TestList_OrderedByIssueDateDesc verifies ordering and cross-user scoping
func (suite *InvoiceRepositoryTestSuite) TestList_OrderedByIssueDateDesc() {
	now := time.Now()
	suite.createTestInvoice(suite.aliceProject.ID, "INV-001", now.AddDate(0, 0, -10))
	suite.createTestInvoice(suite.aliceProject.ID, "INV-002", now)
	suite.createTestInvoice(suite.bobProject.ID, "INV-100", now)

	invoices, total, err := suite.repo.List(suite.alice.ID, InvoiceFilter{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), total)
	suite.Require().Len(invoices, 2)
	assert.Equal(suite.T(), "INV-002", invoices[0].Number)
	assert.Equal(suite.T(), "INV-001", invoices[1].Number)
}

// TestList_PaymentStatusFilter filters within the user's invoices
func (suite *InvoiceRepositoryTestSuite) TestList_PaymentStatusFilter() {
	paid := suite.createTestInvoice(suite.aliceProject.ID, "INV-001", time.Now())
	suite.db.Model(paid).Update("payment_status", models.PaymentStatusPaid)
	suite.createTestInvoice(suite.aliceProject.ID, "INV-002", time.Now())

	status := models.PaymentStatusPaid
	invoices, total, err := suite.repo.List(suite.alice.ID, InvoiceFilter{PaymentStatus: &status})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(invoices, 1)
	assert.Equal(suite.T(), "INV-001", invoices[0].Number)
}

// TestList_ClientIDFilter keeps invoices across one client's projects
func (suite *InvoiceRepositoryTestSuite) TestList_ClientIDFilter() {
	otherClient := &models.Client{UserID: suite.alice.ID, Name: "Globex", Email: "globex@example.com"}
	suite.db.Create(otherClient)
	otherProject := &models.Project{UserID: suite.alice.ID, ClientID: otherClient.ID, Name: "Audit", Status: models.ProjectStatusPlanned}
	suite.db.Create(otherProject)

	suite.createTestInvoice(suite.aliceProject.ID, "INV-001", time.Now())
	suite.createTestInvoice(otherProject.ID, "INV-002", time.Now())

	invoices, total, err := suite.repo.List(suite.alice.ID, InvoiceFilter{ClientID: &otherClient.ID})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(invoices, 1)
	assert.Equal(suite.T(), "INV-002", invoices[0].Number)
}

// TestDelete_ForeignProject verifies a foreign invoice id is reported missing
// and the row stays put
func (suite *InvoiceRepositoryTestSuite) TestDelete_ForeignProject() {
	invoice := suite.createTestInvoice(suite.aliceProject.ID, "INV-001", time.Now())

	err := suite.repo.Delete(suite.bob.ID, invoice.ID)
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)

	var count int64
	suite.db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	err = suite.repo.Delete(suite.alice.ID, invoice.ID)
	assert.NoError(suite.T(), err)
	suite.db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestInvoiceRepositoryTestSuite runs the test suite
func TestInvoiceRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceRepositoryTestSuite))
}
