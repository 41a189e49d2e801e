// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestao-consultoria/backend/internal/application/usecase/invoice"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
	"github.com/gestao-consultoria/backend/internal/integration/entrypoint/dto"
)

// InvoiceController handles invoice endpoints.
type InvoiceController struct {
	listUseCase   *invoice.ListInvoicesUseCase
	createUseCase *invoice.CreateInvoiceUseCase
}

// NewInvoiceController creates a new invoice controller instance.
func NewInvoiceController(
	listUseCase *invoice.ListInvoicesUseCase,
	createUseCase *invoice.CreateInvoiceUseCase,
) *InvoiceController {
	return &InvoiceController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
	}
}

// List handles GET /api/v1/invoices requests.
func (c *InvoiceController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceListResponse(output))
}

// Create handles POST /api/v1/invoices requests.
func (c *InvoiceController) Create(ctx *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingInvoiceFields),
			Details: err.Error(),
		})
		return
	}

	issueDate, err := dto.ParseDate(req.IssueDate)
	if err != nil {
		c.respondInvalidDate(ctx, "issue_date")
		return
	}
	dueDate, err := dto.ParseDate(req.DueDate)
	if err != nil {
		c.respondInvalidDate(ctx, "due_date")
		return
	}

	input := invoice.CreateInvoiceInput{
		Number:            req.Number,
		ClientName:        req.ClientName,
		IssueDate:         issueDate,
		DueDate:           dueDate,
		GrossValue:        req.GrossValue,
		Taxes:             req.Taxes.ToRates(),
		InstallmentNumber: req.InstallmentNumber,
		TotalInstallments: req.TotalInstallments,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(output))
}

func (c *InvoiceController) respondInvalidDate(ctx *gin.Context, field string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid date format. Use YYYY-MM-DD",
		Code:    string(domainerror.ErrCodeInvalidInvoiceDate),
		Details: field,
	})
}

// handleInvoiceError handles invoice errors and returns appropriate HTTP responses.
func (c *InvoiceController) handleInvoiceError(ctx *gin.Context, err error) {
	var invErr *domainerror.InvoiceError
	if errors.As(err, &invErr) {
		statusCode := c.getStatusCodeForInvoiceError(invErr.Code)
		if statusCode == http.StatusInternalServerError {
			slog.Error("invoice request failed", "code", invErr.Code, "error", err)
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: invErr.Message,
			Code:  string(invErr.Code),
		})
		return
	}

	slog.Error("unexpected invoice error", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: internalServerError,
	})
}

// getStatusCodeForInvoiceError maps invoice error codes to HTTP status codes.
func (c *InvoiceController) getStatusCodeForInvoiceError(code domainerror.InvoiceErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvoiceAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeMissingInvoiceFields,
		domainerror.ErrCodeInvalidGrossValue,
		domainerror.ErrCodeInvalidTaxRate,
		domainerror.ErrCodeInvalidInstallmentCount,
		domainerror.ErrCodeInvalidInvoiceDate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
