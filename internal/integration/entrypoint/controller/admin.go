// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestao-consultoria/backend/internal/application/usecase/admin"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
	"github.com/gestao-consultoria/backend/internal/integration/entrypoint/dto"
)

const internalServerError = "Internal server error"

// AdminController handles administrative endpoints.
type AdminController struct {
	deleteUserUseCase *admin.DeleteUserUseCase
}

// NewAdminController creates a new admin controller instance.
func NewAdminController(deleteUserUseCase *admin.DeleteUserUseCase) *AdminController {
	return &AdminController{
		deleteUserUseCase: deleteUserUseCase,
	}
}

// DeleteUser handles POST /api/delete-user requests.
// The body is only read for userId; a malformed body counts as a missing userId.
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	var req dto.DeleteUserRequest
	_ = ctx.ShouldBindJSON(&req)

	input := admin.DeleteUserInput{
		AuthorizationHeader: ctx.GetHeader("Authorization"),
		UserID:              req.UserID,
	}

	_, err := c.deleteUserUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDeleteUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteUserResponse{Success: true})
}

// handleDeleteUserError handles admin deletion errors and returns appropriate HTTP responses.
func (c *AdminController) handleDeleteUserError(ctx *gin.Context, err error) {
	var adminErr *domainerror.AdminError
	if errors.As(err, &adminErr) {
		statusCode := c.getStatusCodeForAdminError(adminErr.Code)
		if statusCode == http.StatusInternalServerError {
			slog.Error("admin user deletion failed", "code", adminErr.Code, "error", err)
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: adminErr.Message,
		})
		return
	}

	slog.Error("unexpected error deleting user", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: internalServerError,
	})
}

// getStatusCodeForAdminError maps admin error codes to HTTP status codes.
func (c *AdminController) getStatusCodeForAdminError(code domainerror.AdminErrorCode) int {
	switch code {
	case domainerror.ErrCodeAdminUnauthorized, domainerror.ErrCodeAdminInvalidToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeAdminForbidden:
		return http.StatusForbidden
	case domainerror.ErrCodeAdminMissingUserID:
		return http.StatusBadRequest
	case domainerror.ErrCodeAdminTargetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAdminRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
