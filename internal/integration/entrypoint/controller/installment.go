// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gestao-consultoria/backend/internal/application/usecase/installment"
	"github.com/gestao-consultoria/backend/internal/domain/entity"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
	"github.com/gestao-consultoria/backend/internal/integration/entrypoint/dto"
)

// InstallmentController handles projected installment endpoints.
type InstallmentController struct {
	listUseCase   *installment.ListInstallmentsUseCase
	updateUseCase *installment.UpdateInstallmentUseCase
}

// NewInstallmentController creates a new installment controller instance.
func NewInstallmentController(
	listUseCase *installment.ListInstallmentsUseCase,
	updateUseCase *installment.UpdateInstallmentUseCase,
) *InstallmentController {
	return &InstallmentController{
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
	}
}

// List handles GET /api/v1/installments requests.
// Query parameters: search, month, year, emission (all, emitted, pending).
func (c *InstallmentController) List(ctx *gin.Context) {
	month, monthErr := queryInt(ctx, "month")
	year, yearErr := queryInt(ctx, "year")
	if monthErr != nil || yearErr != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "month and year must be numbers",
			Code:  string(domainerror.ErrCodeInvalidInstallmentFilter),
		})
		return
	}

	input := installment.ListInstallmentsInput{
		Criteria: installment.FilterCriteria{
			Search:   ctx.Query("search"),
			Month:    month,
			Year:     year,
			Emission: installment.EmissionFilter(ctx.Query("emission")),
		},
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInstallmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentListResponse(output.Installments))
}

// Update handles PATCH /api/v1/installments/:key requests.
func (c *InstallmentController) Update(ctx *gin.Context) {
	var req dto.UpdateInstallmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidInstallmentBody),
			Details: err.Error(),
		})
		return
	}

	input := installment.UpdateInstallmentInput{
		Key:              ctx.Param("key"),
		Emitted:          req.Emitted,
		ClearPaymentDate: req.ClearPaymentDate,
		EditedValue:      req.Value,
		ClearEditedValue: req.ClearValue,
	}

	if req.PaymentDate != nil {
		paid, err := dto.ParseDate(*req.PaymentDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Invalid date format. Use YYYY-MM-DD",
				Code:    string(domainerror.ErrCodeInvalidInstallmentDate),
				Details: "payment_date",
			})
			return
		}
		input.PaymentDate = &paid
	}

	if req.Status != nil {
		status := entity.InstallmentStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInstallmentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstallmentExtraResponse(output.Extra))
}

func queryInt(ctx *gin.Context, name string) (int, error) {
	value := ctx.Query(name)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// handleInstallmentError handles installment errors and returns appropriate HTTP responses.
func (c *InstallmentController) handleInstallmentError(ctx *gin.Context, err error) {
	var insErr *domainerror.InstallmentError
	if errors.As(err, &insErr) {
		statusCode := c.getStatusCodeForInstallmentError(insErr.Code)
		if statusCode == http.StatusInternalServerError {
			slog.Error("installment request failed", "code", insErr.Code, "error", err)
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: insErr.Message,
			Code:  string(insErr.Code),
		})
		return
	}

	slog.Error("unexpected installment error", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: internalServerError,
	})
}

// getStatusCodeForInstallmentError maps installment error codes to HTTP status codes.
func (c *InstallmentController) getStatusCodeForInstallmentError(code domainerror.InstallmentErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidInstallmentKey,
		domainerror.ErrCodeInvalidInstallmentStatus,
		domainerror.ErrCodeNegativeInstallmentValue,
		domainerror.ErrCodeInvalidInstallmentFilter,
		domainerror.ErrCodeInvalidInstallmentDate,
		domainerror.ErrCodeInvalidInstallmentBody:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
