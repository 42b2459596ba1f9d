package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/theshahinrg/crm-api/internal/dto"
	apierrors "github.com/theshahinrg/crm-api/internal/errors"
	"github.com/theshahinrg/crm-api/internal/middleware"
	"github.com/theshahinrg/crm-api/internal/models"
	"github.com/theshahinrg/crm-api/internal/repository"
	"github.com/theshahinrg/crm-api/internal/services"
	"github.com/theshahinrg/crm-api/internal/utils"
)

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the current user's projects, optionally filtered by
// status and client.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.ProjectFilter{Pagination: params}

	if status := c.Query("status"); status != "" {
		projectStatus := models.ProjectStatus(status)
		filter.Status = &projectStatus
	}
	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		clientID, err := strconv.ParseUint(clientIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid client_id")
			return
		}
		filter.ClientID = &clientID
	}

	projects, total, err := h.projectService.ListProjects(userID, filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetProject returns one of the current user's projects with its invoices
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(userID, projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a project against one of the current user's clients
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		ClientID    uint64     `json:"client_id" binding:"required"`
		Name        string     `json:"name" binding:"required"`
		Description string     `json:"description"`
		Status      string     `json:"status" binding:"omitempty,oneof=planned in_progress on_hold completed cancelled"`
		Amount      float64    `json:"amount"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(userID, services.CreateProjectInput{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectStatus(req.Status),
		Amount:      req.Amount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/projects/%d", project.ID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created.",
		"project": dto.ToProjectDTO(*project),
	})
}

// UpdateProject updates one of the current user's projects
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		ClientID    *uint64    `json:"client_id"`
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		Status      *string    `json:"status" binding:"omitempty,oneof=planned in_progress on_hold completed cancelled"`
		Amount      *float64   `json:"amount"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateProjectInput{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		input.Status = &status
	}

	project, err := h.projectService.UpdateProject(userID, projectID, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/projects/%d", project.ID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Project updated.",
		"project": dto.ToProjectDTO(*project),
	})
}

// DeleteProject deletes one of the current user's projects
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(userID, projectID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted.",
	})
}

func respondProjectError(c *gin.Context, err error) {
	var verr *apierrors.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr)
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	default:
		apierrors.InternalError(c, "")
	}
}
