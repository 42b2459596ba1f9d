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

// ContactLogHandler coordinates contact log HTTP handlers.
type ContactLogHandler struct {
	contactLogService *services.ContactLogService
}

// NewContactLogHandler creates a new ContactLogHandler
func NewContactLogHandler(contactLogService *services.ContactLogService) *ContactLogHandler {
	return &ContactLogHandler{
		contactLogService: contactLogService,
	}
}

// ListContactLogs returns the current user's contact logs, optionally
// filtered by client, project, and contact type.
func (h *ContactLogHandler) ListContactLogs(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.ContactLogFilter{Pagination: params}

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		clientID, err := strconv.ParseUint(clientIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid client_id")
			return
		}
		filter.ClientID = &clientID
	}
	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		filter.ProjectID = &projectID
	}
	if contactType := c.Query("contact_type"); contactType != "" {
		ct := models.ContactType(contactType)
		filter.ContactType = &ct
	}

	logs, total, err := h.contactLogService.ListContactLogs(userID, filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch contact logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contact_logs": dto.ToContactLogDTOs(logs),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetContactLog returns one of the current user's contact logs
func (h *ContactLogHandler) GetContactLog(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	logID, ok := parseIDParam(c)
	if !ok {
		return
	}

	log, err := h.contactLogService.GetContactLog(userID, logID)
	if err != nil {
		respondContactLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContactLogDTO(*log))
}

// CreateContactLog records a contact against one of the current user's clients
func (h *ContactLogHandler) CreateContactLog(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateContactLogRequest struct {
		ClientID    uint64     `json:"client_id" binding:"required"`
		ProjectID   *uint64    `json:"project_id"`
		ContactType string     `json:"contact_type" binding:"omitempty,oneof=email phone meeting other"`
		Notes       string     `json:"notes" binding:"required"`
		ContactedAt *time.Time `json:"contacted_at"`
	}

	var req CreateContactLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.contactLogService.CreateContactLog(userID, services.CreateContactLogInput{
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		ContactType: models.ContactType(req.ContactType),
		Notes:       req.Notes,
		ContactedAt: req.ContactedAt,
	})
	if err != nil {
		respondContactLogError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/contact-logs/%d", log.ID))
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Contact log added.",
		"contact_log": dto.ToContactLogDTO(*log),
	})
}

// UpdateContactLog updates one of the current user's contact logs
func (h *ContactLogHandler) UpdateContactLog(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	logID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateContactLogRequest struct {
		ClientID     *uint64    `json:"client_id"`
		ProjectID    *uint64    `json:"project_id"`
		ClearProject bool       `json:"clear_project"`
		ContactType  *string    `json:"contact_type" binding:"omitempty,oneof=email phone meeting other"`
		Notes        *string    `json:"notes"`
		ContactedAt  *time.Time `json:"contacted_at"`
	}

	var req UpdateContactLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateContactLogInput{
		ClientID:     req.ClientID,
		ProjectID:    req.ProjectID,
		ClearProject: req.ClearProject,
		Notes:        req.Notes,
		ContactedAt:  req.ContactedAt,
	}
	if req.ContactType != nil {
		ct := models.ContactType(*req.ContactType)
		input.ContactType = &ct
	}

	log, err := h.contactLogService.UpdateContactLog(userID, logID, input)
	if err != nil {
		respondContactLogError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/contact-logs/%d", log.ID))
	c.JSON(http.StatusOK, gin.H{
		"message":     "Contact log updated.",
		"contact_log": dto.ToContactLogDTO(*log),
	})
}

// DeleteContactLog deletes one of the current user's contact logs
func (h *ContactLogHandler) DeleteContactLog(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	logID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.contactLogService.DeleteContactLog(userID, logID); err != nil {
		respondContactLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact log deleted.",
	})
}

func respondContactLogError(c *gin.Context, err error) {
	var verr *apierrors.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr)
	case errors.Is(err, services.ErrContactLogNotFound):
		apierrors.NotFound(c, "Contact log not found")
	default:
		apierrors.InternalError(c, "")
	}
}
