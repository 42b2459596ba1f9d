package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	apierrors "github.com/theshahinrg/crm-api/internal/errors"
	"github.com/theshahinrg/crm-api/internal/models"
	"github.com/theshahinrg/crm-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProjectServiceTestSuite defines the test suite for ProjectService
type ProjectServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProjectService

	alice       *models.User
	bob         *models.User
	aliceClient *models.Client
	bobClient   *models.Client
}

// SetupTest runs before each test
func (suite *ProjectServiceTestSuite) SetupTest() {
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

	suite.service = NewProjectService(
		repository.NewProjectRepository(suite.db),
		repository.NewClientRepository(suite.db),
	)

	suite.alice = &models.User{Username: "alice", PasswordHash: "hashedpassword"}
	suite.db.Create(suite.alice)
	suite.bob = &models.User{Username: "bob", PasswordHash: "hashedpassword"}
	suite.db.Create(suite.bob)

	suite.aliceClient = &models.Client{UserID: suite.alice.ID, Name: "Acme Corp", Email: "acme@example.com"}
	suite.db.Create(suite.aliceClient)
	suite.bobClient = &models.Client{UserID: suite.bob.ID, Name: "Bob Client", Email: "bob.client@example.com"}
	suite.db.Create(suite.bobClient)
}

// TearDownTest runs after each test
func (suite *ProjectServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// TestCreateProject_OwnClient verifies creation, the planned default, and the
// preloaded client in the result
func (suite *ProjectServiceTestSuite) TestCreateProject_OwnClient() {
	project, err := suite.service.CreateProject(suite.alice.ID, CreateProjectInput{
		ClientID: suite.aliceClient.ID,
		Name:     "Website Redesign",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), suite.alice.ID, project.UserID)
	assert.Equal(suite.T(), models.ProjectStatusPlanned, project.Status)
	assert.Equal(suite.T(), "Website Redesign (Acme Corp)", project.String())
}

// TestCreateProject_ForeignClient rejects another user's client with a
// field-scoped error and persists nothing
func (suite *ProjectServiceTestSuite) TestCreateProject_ForeignClient() {
	_, err := suite.service.CreateProject(suite.alice.ID, CreateProjectInput{
		ClientID: suite.bobClient.ID,
		Name:     "Sneaky Project",
	})

	var verr *apierrors.ValidationError
	suite.Require().ErrorAs(err, &verr)
	assert.Equal(suite.T(), "client_id", verr.Field)
	assert.Equal(suite.T(), "Select one of your clients.", verr.Message)

	var count int64
	suite.db.Model(&models.Project{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestUpdateProject_MoveToForeignClient rejects the move and leaves the
// project unchanged
func (suite *ProjectServiceTestSuite) TestUpdateProject_MoveToForeignClient() {
	project, err := suite.service.CreateProject(suite.alice.ID, CreateProjectInput{
		ClientID: suite.aliceClient.ID,
		Name:     "Website Redesign",
	})
	suite.Require().NoError(err)

	_, err = suite.service.UpdateProject(suite.alice.ID, project.ID, UpdateProjectInput{
		ClientID: &suite.bobClient.ID,
	})

	var verr *apierrors.ValidationError
	suite.Require().ErrorAs(err, &verr)
	assert.Equal(suite.T(), "client_id", verr.Field)

	var stored models.Project
	suite.Require().NoError(suite.db.First(&stored, project.ID).Error)
	assert.Equal(suite.T(), suite.aliceClient.ID, stored.ClientID)
}

// TestUpdateProject_Status verifies partial updates touch only the given fields
func (suite *ProjectServiceTestSuite) TestUpdateProject_Status() {
	project, err := suite.service.CreateProject(suite.alice.ID, CreateProjectInput{
		ClientID: suite.aliceClient.ID,
		Name:     "Website Redesign",
	})
	suite.Require().NoError(err)

	status := models.ProjectStatusCompleted
	updated, err := suite.service.UpdateProject(suite.alice.ID, project.ID, UpdateProjectInput{
		Status: &status,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.ProjectStatusCompleted, updated.Status)
	assert.Equal(suite.T(), "Website Redesign", updated.Name)
}

// TestGetProject_ForeignProject verifies the not-found sentinel for foreign ids
func (suite *ProjectServiceTestSuite) TestGetProject_ForeignProject() {
	project, err := suite.service.CreateProject(suite.alice.ID, CreateProjectInput{
		ClientID: suite.aliceClient.ID,
		Name:     "Website Redesign",
	})
	suite.Require().NoError(err)

	_, err = suite.service.GetProject(suite.bob.ID, project.ID)
	assert.ErrorIs(suite.T(), err, ErrProjectNotFound)
}

// TestProjectServiceTestSuite runs the test suite
func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
