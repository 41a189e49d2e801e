// Package admin contains administrative use cases.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gestao-consultoria/backend/internal/application/adapter"
	"github.com/gestao-consultoria/backend/internal/domain/entity"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
)

const bearerPrefix = "Bearer "

// DeleteUserInput represents the input for an admin user deletion.
type DeleteUserInput struct {
	AuthorizationHeader string
	UserID              string
}

// DeleteUserOutput represents the output of an admin user deletion.
type DeleteUserOutput struct {
	Success bool
}

// deletionState is threaded through the deletion steps.
type deletionState struct {
	input  DeleteUserInput
	token  string
	caller *entity.IdentityUser
}

// deletionStep is a single gate of the deletion pipeline. A non-nil error stops the pipeline.
type deletionStep func(ctx context.Context, state *deletionState) error

// DeleteUserUseCase lets an administrator remove another user's account from the identity provider.
type DeleteUserUseCase struct {
	identity    adapter.IdentityService
	profileRepo adapter.ProfileRepository
	metrics     adapter.MetricsRecorder
	steps       []deletionStep
}

// NewDeleteUserUseCase creates a new DeleteUserUseCase instance.
func NewDeleteUserUseCase(
	identity adapter.IdentityService,
	profileRepo adapter.ProfileRepository,
	metrics adapter.MetricsRecorder,
) *DeleteUserUseCase {
	uc := &DeleteUserUseCase{
		identity:    identity,
		profileRepo: profileRepo,
		metrics:     metrics,
	}

	// Order matters: each step only runs once every previous one succeeded.
	uc.steps = []deletionStep{
		uc.extractBearerToken,
		uc.authenticateCaller,
		uc.authorizeAdmin,
		uc.requireTargetID,
		uc.deleteTarget,
	}

	return uc
}

// Execute runs the deletion pipeline.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, input DeleteUserInput) (*DeleteUserOutput, error) {
	state := &deletionState{input: input}

	for _, step := range uc.steps {
		if err := step(ctx, state); err != nil {
			uc.metrics.RecordUserDeletion(deletionOutcome(err))
			return nil, err
		}
	}

	slog.Info("admin user deleted",
		"caller_id", state.caller.ID,
		"target_id", input.UserID,
	)
	uc.metrics.RecordUserDeletion(adapter.DeletionOutcomeSuccess)

	return &DeleteUserOutput{Success: true}, nil
}

func (uc *DeleteUserUseCase) extractBearerToken(_ context.Context, state *deletionState) error {
	if !strings.HasPrefix(state.input.AuthorizationHeader, bearerPrefix) {
		return domainerror.NewAdminError(domainerror.ErrCodeAdminUnauthorized, "Unauthorized", nil)
	}

	state.token = strings.TrimPrefix(state.input.AuthorizationHeader, bearerPrefix)
	return nil
}

func (uc *DeleteUserUseCase) authenticateCaller(ctx context.Context, state *deletionState) error {
	user, err := uc.identity.GetUser(ctx, state.token)
	if err != nil || user == nil {
		if err != nil && !errors.Is(err, domainerror.ErrInvalidToken) {
			slog.Warn("token validation failed", "error", err)
		}
		return domainerror.NewAdminError(domainerror.ErrCodeAdminInvalidToken, "Invalid token", err)
	}

	state.caller = user
	return nil
}

func (uc *DeleteUserUseCase) authorizeAdmin(ctx context.Context, state *deletionState) error {
	profile, err := uc.profileRepo.FindByID(ctx, state.caller.ID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrProfileNotFound) {
			slog.Error("failed to load caller profile", "caller_id", state.caller.ID, "error", err)
		}
		return domainerror.NewAdminError(domainerror.ErrCodeAdminForbidden, "Forbidden", err)
	}

	if profile == nil || !profile.Role.IsAdmin() {
		return domainerror.NewAdminError(domainerror.ErrCodeAdminForbidden, "Forbidden", domainerror.ErrInsufficientRole)
	}

	return nil
}

func (uc *DeleteUserUseCase) requireTargetID(_ context.Context, state *deletionState) error {
	if state.input.UserID == "" {
		return domainerror.NewAdminError(domainerror.ErrCodeAdminMissingUserID, "userId obrigatório", nil)
	}
	return nil
}

func (uc *DeleteUserUseCase) deleteTarget(ctx context.Context, state *deletionState) error {
	err := uc.identity.DeleteUser(ctx, state.input.UserID)
	if err == nil {
		return nil
	}

	var identityErr *domainerror.IdentityError
	if !errors.As(err, &identityErr) {
		return fmt.Errorf("failed to delete user %s: %w", state.input.UserID, err)
	}

	if errors.Is(err, domainerror.ErrIdentityUserNotFound) {
		return domainerror.NewAdminError(domainerror.ErrCodeAdminTargetNotFound, identityErr.Message, err)
	}

	return domainerror.NewAdminError(domainerror.ErrCodeAdminDeleteFailed, identityErr.Message, err)
}

func deletionOutcome(err error) string {
	var adminErr *domainerror.AdminError
	if !errors.As(err, &adminErr) {
		return adapter.DeletionOutcomeError
	}

	switch adminErr.Code {
	case domainerror.ErrCodeAdminUnauthorized:
		return adapter.DeletionOutcomeUnauthorized
	case domainerror.ErrCodeAdminInvalidToken:
		return adapter.DeletionOutcomeInvalidToken
	case domainerror.ErrCodeAdminForbidden:
		return adapter.DeletionOutcomeForbidden
	case domainerror.ErrCodeAdminMissingUserID:
		return adapter.DeletionOutcomeBadRequest
	case domainerror.ErrCodeAdminTargetNotFound:
		return adapter.DeletionOutcomeNotFound
	default:
		return adapter.DeletionOutcomeError
	}
}
