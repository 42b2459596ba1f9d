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

// ClientRepositoryTestSuite defines the test suite for GormClientRepository
type ClientRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo ClientRepository

	alice *models.User
	bob   *models.User
}

// SetupTest runs before each test
func (suite *ClientRepositoryTestSuite) SetupTest() {
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

	suite.repo = NewClientRepository(suite.db)

	suite.alice = suite.createTestUser("alice")
	suite.bob = suite.createTestUser("bob")
}

// TearDownTest runs after each test
func (suite *ClientRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ClientRepositoryTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *ClientRepositoryTestSuite) createTestClient(userID uint64, name, email string) *models.Client {
	client := &models.Client{
		UserID: userID,
		Name:   name,
		Email:  email,
	}
	suite.db.Create(client)
	return client
}

func (suite *ClientRepositoryTestSuite) createTestProject(userID, clientID uint64, name string, status models.ProjectStatus) *models.Project {
	project := &models.Project{
		UserID:   userID,
		ClientID: clientID,
		Name:     name,
		Status:   status,
	}
	suite.db.Create(project)
	return project
}

func (suite *ClientRepositoryTestSuite) createTestInvoice(projectID uint64, number string) *models.Invoice {
	invoice := &models.Invoice{
		Number:        number,
		ProjectID:     projectID,
		Amount:        100,
		PaymentStatus: models.PaymentStatusPending,
		IssueDate:     time.Now(),
	}
	suite.db.Create(invoice)
	return invoice
}

func (suite *ClientRepositoryTestSuite) createTestContactLog(userID, clientID uint64, projectID *uint64) *models.ContactLog {
	log := &models.ContactLog{
		UserID:      userID,
		ClientID:    clientID,
		ProjectID:   projectID,
		ContactType: models.ContactTypeEmail,
		Notes:       "Followed up on the proposal",
		ContactedAt: time.Now(),
	}
	suite.db.Create(log)
	return log
}

// TestList_OnlyOwnClients verifies that each user sees only their own clients
func (suite *ClientRepositoryTestSuite) TestList_OnlyOwnClients() {
	suite.createTestClient(suite.alice.ID, "Alice Client", "alice.client@example.com")
	suite.createTestClient(suite.bob.ID, "Bob Client", "bob.client@example.com")

	clients, total, err := suite.repo.List(suite.alice.ID, ClientFilter{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Len(suite.T(), clients, 1)
	assert.Equal(suite.T(), "Alice Client", clients[0].Name)

	clients, total, err = suite.repo.List(suite.bob.ID, ClientFilter{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Len(suite.T(), clients, 1)
	assert.Equal(suite.T(), "Bob Client", clients[0].Name)
}

// TestList_OrderedByName verifies the fixed name ordering
func (suite *ClientRepositoryTestSuite) TestList_OrderedByName() {
	suite.createTestClient(suite.alice.ID, "Zeta Ltd", "zeta@example.com")
	suite.createTestClient(suite.alice.ID, "Acme Corp", "acme@example.com")
	suite.createTestClient(suite.alice.ID, "Mega Inc", "mega@example.com")

	clients, _, err := suite.repo.List(suite.alice.ID, ClientFilter{})

	assert.NoError(suite.T(), err)
	suite.Require().Len(clients, 3)
	assert.Equal(suite.T(), "Acme Corp", clients[0].Name)
	assert.Equal(suite.T(), "Mega Inc", clients[1].Name)
	assert.Equal(suite.T(), "Zeta Ltd", clients[2].Name)
}

// TestList_QueryFilter verifies q matches name or company
func (suite *ClientRepositoryTestSuite) TestList_QueryFilter() {
	suite.createTestClient(suite.alice.ID, "Acme Corp", "acme@example.com")
	globex := suite.createTestClient(suite.alice.ID, "Globex", "globex@example.com")
	suite.db.Model(globex).Update("company", "Acme Holdings")
	suite.createTestClient(suite.alice.ID, "Initech", "initech@example.com")

	clients, total, err := suite.repo.List(suite.alice.ID, ClientFilter{Query: "acme"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), total)
	suite.Require().Len(clients, 2)
	assert.Equal(suite.T(), "Acme Corp", clients[0].Name)
	assert.Equal(suite.T(), "Globex", clients[1].Name)
}

// TestList_EmailFilter verifies the partial email match
func (suite *ClientRepositoryTestSuite) TestList_EmailFilter() {
	suite.createTestClient(suite.alice.ID, "Acme Corp", "billing@acme.com")
	suite.createTestClient(suite.alice.ID, "Globex", "contact@globex.com")

	clients, total, err := suite.repo.List(suite.alice.ID, ClientFilter{Email: "acme"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(clients, 1)
	assert.Equal(suite.T(), "Acme Corp", clients[0].Name)
}

// TestList_ProjectStatusFilter keeps clients that have at least one project
// with the given status
func (suite *ClientRepositoryTestSuite) TestList_ProjectStatusFilter() {
	acme := suite.createTestClient(suite.alice.ID, "Acme Corp", "acme@example.com")
	globex := suite.createTestClient(suite.alice.ID, "Globex", "globex@example.com")
	suite.createTestProject(suite.alice.ID, acme.ID, "Redesign", models.ProjectStatusCompleted)
	suite.createTestProject(suite.alice.ID, globex.ID, "Audit", models.ProjectStatusPlanned)

	status := models.ProjectStatusCompleted
	clients, total, err := suite.repo.List(suite.alice.ID, ClientFilter{ProjectStatus: &status})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(clients, 1)
	assert.Equal(suite.T(), "Acme Corp", clients[0].Name)
}

// TestList_DerivedCounts verifies project and invoice counts per row
func (suite *ClientRepositoryTestSuite) TestList_DerivedCounts() {
	acme := suite.createTestClient(suite.alice.ID, "Acme Corp", "acme@example.com")
	suite.createTestClient(suite.alice.ID, "Globex", "globex@example.com")

	redesign := suite.createTestProject(suite.alice.ID, acme.ID, "Redesign", models.ProjectStatusInProgress)
	suite.createTestProject(suite.alice.ID, acme.ID, "Audit", models.ProjectStatusPlanned)
	suite.createTestInvoice(redesign.ID, "INV-001")
	suite.createTestInvoice(redesign.ID, "INV-002")

	clients, _, err := suite.repo.List(suite.alice.ID, ClientFilter{})

	assert.NoError(suite.T(), err)
	suite.Require().Len(clients, 2)
	assert.Equal(suite.T(), "Acme Corp", clients[0].Name)
	assert.Equal(suite.T(), int64(2), clients[0].ProjectCount)
	assert.Equal(suite.T(), int64(2), clients[0].InvoiceCount)
	assert.Equal(suite.T(), "Globex", clients[1].Name)
	assert.Equal(suite.T(), int64(0), clients[1].ProjectCount)
	assert.Equal(suite.T(), int64(0), clients[1].InvoiceCount)
}

// TestList_Pagination verifies the total is unaffected by the page window
func (suite *ClientRepositoryTestSuite) TestList_Pagination() {
	suite.createTestClient(suite.alice.ID, "Acme Corp", "acme@example.com")
	suite.createTestClient(suite.alice.ID, "Globex", "globex@example.com")
	suite.createTestClient(suite.alice.ID, "Initech", "initech@example.com")

	filter := ClientFilter{}
	filter.Pagination.Page = 1
	filter.Pagination.Limit = 2

	clients, total, err := suite.repo.List(suite.alice.ID, filter)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), total)
	assert.Len(suite.T(), clients, 2)
}

// TestFindByID_ForeignClient verifies a foreign id behaves like a missing one
func (suite *ClientRepositoryTestSuite) TestFindByID_ForeignClient() {
	client := suite.createTestClient(suite.alice.ID, "Acme Corp", "acme@example.com")

	found, err := suite.repo.FindByID(suite.alice.ID, client.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), client.ID, found.ID)

	_, err = suite.repo.FindByID(suite.bob.ID, client.ID)
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

// TestDelete_Cascades verifies projects, their invoices, and contact logs go
// with the client
func (suite *ClientRepositoryTestSuite) TestDelete_Cascades() {
	acme := suite.createTestClient(suite.alice.ID, "Acme Corp", "acme@example.com")
	other := suite.createTestClient(suite.alice.ID, "Globex", "globex@example.com")

	project := suite.createTestProject(suite.alice.ID, acme.ID, "Redesign", models.ProjectStatusInProgress)
	suite.createTestInvoice(project.ID, "INV-001")
	suite.createTestContactLog(suite.alice.ID, acme.ID, &project.ID)

	otherProject := suite.createTestProject(suite.alice.ID, other.ID, "Audit", models.ProjectStatusPlanned)
	suite.createTestInvoice(otherProject.ID, "INV-002")

	err := suite.repo.Delete(suite.alice.ID, acme.ID)
	assert.NoError(suite.T(), err)

	var count int64
	suite.db.Model(&models.Client{}).Where("id = ?", acme.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
	suite.db.Model(&models.Project{}).Where("client_id = ?", acme.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
	suite.db.Model(&models.Invoice{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
	suite.db.Model(&models.ContactLog{}).Where("client_id = ?", acme.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	// The sibling client's subtree is untouched
	suite.db.Model(&models.Invoice{}).Where("project_id = ?", otherProject.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestDelete_ForeignClient verifies the whole cascade rolls back when the
// client belongs to someone else
func (suite *ClientRepositoryTestSuite) TestDelete_ForeignClient() {
	acme := suite.createTestClient(suite.alice.ID, "Acme Corp", "acme@example.com")
	project := suite.createTestProject(suite.alice.ID, acme.ID, "Redesign", models.ProjectStatusInProgress)
	suite.createTestInvoice(project.ID, "INV-001")

	err := suite.repo.Delete(suite.bob.ID, acme.ID)
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)

	var count int64
	suite.db.Model(&models.Client{}).Where("id = ?", acme.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
	suite.db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
	suite.db.Model(&models.Invoice{}).Where("project_id = ?", project.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestClientRepositoryTestSuite runs the test suite
func TestClientRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ClientRepositoryTestSuite))
}
