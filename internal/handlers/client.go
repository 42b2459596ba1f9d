package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/theshahinrg/crm-api/internal/dto"
	apierrors "github.com/theshahinrg/crm-api/internal/errors"
	"github.com/theshahinrg/crm-api/internal/middleware"
	"github.com/theshahinrg/crm-api/internal/models"
	"github.com/theshahinrg/crm-api/internal/repository"
	"github.com/theshahinrg/crm-api/internal/services"
	"github.com/theshahinrg/crm-api/internal/utils"
)

// ClientHandler coordinates client HTTP handlers.
type ClientHandler struct {
	clientService *services.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// ListClients returns the current user's clients with derived counts.
// Supports q (name/company), email, and status (has a project with that
// status) filters, AND-combined.
func (h *ClientHandler) ListClients(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.ClientFilter{
		Query:      c.Query("q"),
		Email:      c.Query("email"),
		Pagination: params,
	}
	if status := c.Query("status"); status != "" {
		projectStatus := models.ProjectStatus(status)
		filter.ProjectStatus = &projectStatus
	}

	clients, total, err := h.clientService.ListClients(userID, filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch clients")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients": dto.ToClientListItemDTOs(clients),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetClient returns a client detail view: the client plus its projects,
// invoices, and contact logs.
func (h *ClientHandler) GetClient(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.clientService.GetClientDetail(userID, clientID)
	if err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientDetailDTO(*detail))
}

// CreateClient creates a client owned by the current user
func (h *ClientHandler) CreateClient(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateClientRequest struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone"`
		Company string `json:"company"`
		Notes   string `json:"notes"`
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.CreateClient(userID, services.CreateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
	})
	if err != nil {
		respondClientError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/clients/%d", client.ID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Client created.",
		"client":  dto.ToClientDTO(*client),
	})
}

// UpdateClient updates one of the current user's clients
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateClientRequest struct {
		Name    *string `json:"name"`
		Email   *string `json:"email" binding:"omitempty,email"`
		Phone   *string `json:"phone"`
		Company *string `json:"company"`
		Notes   *string `json:"notes"`
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.UpdateClient(userID, clientID, services.UpdateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
	})
	if err != nil {
		respondClientError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/clients/%d", client.ID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Client updated.",
		"client":  dto.ToClientDTO(*client),
	})
}

// DeleteClient deletes one of the current user's clients and everything
// hanging off it.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(userID, clientID); err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client deleted.",
	})
}

// parseIDParam parses the :id URL parameter, responding with 400 on garbage
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

func respondClientError(c *gin.Context, err error) {
	var verr *apierrors.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr)
	case errors.Is(err, services.ErrClientNotFound):
		apierrors.NotFound(c, "Client not found")
	default:
		apierrors.InternalError(c, "")
	}
}
