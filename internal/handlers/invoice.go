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

// InvoiceHandler coordinates invoice HTTP handlers.
type InvoiceHandler struct {
	invoiceService *services.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// ListInvoices returns invoices across the current user's projects,
// optionally filtered by payment status and project.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.InvoiceFilter{Pagination: params}

	if status := c.Query("payment_status"); status != "" {
		paymentStatus := models.PaymentStatus(status)
		filter.PaymentStatus = &paymentStatus
	}
	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		filter.ProjectID = &projectID
	}

	invoices, total, err := h.invoiceService.ListInvoices(userID, filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices": dto.ToInvoiceDTOs(invoices),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetInvoice returns an invoice belonging to one of the current user's projects
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(userID, invoiceID)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceDTO(*invoice))
}

// CreateInvoice creates an invoice for one of the current user's projects
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateInvoiceRequest struct {
		Number        string     `json:"number" binding:"required"`
		ProjectID     uint64     `json:"project_id" binding:"required"`
		Amount        float64    `json:"amount"`
		PaymentStatus string     `json:"payment_status" binding:"omitempty,oneof=pending paid overdue cancelled"`
		IssueDate     *time.Time `json:"issue_date"`
		DueDate       *time.Time `json:"due_date"`
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(userID, services.CreateInvoiceInput{
		Number:        req.Number,
		ProjectID:     req.ProjectID,
		Amount:        req.Amount,
		PaymentStatus: models.PaymentStatus(req.PaymentStatus),
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
	})
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/invoices/%d", invoice.ID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Invoice created.",
		"invoice": dto.ToInvoiceDTO(*invoice),
	})
}

// UpdateInvoice updates an invoice belonging to one of the current user's projects
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateInvoiceRequest struct {
		Number        *string    `json:"number"`
		ProjectID     *uint64    `json:"project_id"`
		Amount        *float64   `json:"amount"`
		PaymentStatus *string    `json:"payment_status" binding:"omitempty,oneof=pending paid overdue cancelled"`
		IssueDate     *time.Time `json:"issue_date"`
		DueDate       *time.Time `json:"due_date"`
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateInvoiceInput{
		Number:    req.Number,
		ProjectID: req.ProjectID,
		Amount:    req.Amount,
		IssueDate: req.IssueDate,
		DueDate:   req.DueDate,
	}
	if req.PaymentStatus != nil {
		status := models.PaymentStatus(*req.PaymentStatus)
		input.PaymentStatus = &status
	}

	invoice, err := h.invoiceService.UpdateInvoice(userID, invoiceID, input)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/invoices/%d", invoice.ID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice updated.",
		"invoice": dto.ToInvoiceDTO(*invoice),
	})
}

// DeleteInvoice deletes an invoice belonging to one of the current user's projects
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(userID, invoiceID); err != nil {
		respondInvoiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice deleted.",
	})
}

func respondInvoiceError(c *gin.Context, err error) {
	var verr *apierrors.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr)
	case errors.Is(err, services.ErrInvoiceNotFound):
		apierrors.NotFound(c, "Invoice not found")
	default:
		apierrors.InternalError(c, "")
	}
}
