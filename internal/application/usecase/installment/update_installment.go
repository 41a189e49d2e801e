package installment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestao-consultoria/backend/internal/application/adapter"
	"github.com/gestao-consultoria/backend/internal/domain/entity"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
)

// UpdateInstallmentInput is a partial update of an installment override.
// Nil fields are left unchanged.
type UpdateInstallmentInput struct {
	Key              string
	Emitted          *bool
	PaymentDate      *time.Time
	ClearPaymentDate bool
	Status           *entity.InstallmentStatus
	EditedValue      *decimal.Decimal
	ClearEditedValue bool
}

// UpdateInstallmentOutput represents the stored override after the update.
type UpdateInstallmentOutput struct {
	Extra *entity.InstallmentExtra
}

// UpdateInstallmentUseCase merges user annotations into an installment override.
type UpdateInstallmentUseCase struct {
	extraRepo adapter.InstallmentExtraRepository
	now       func() time.Time
}

// NewUpdateInstallmentUseCase creates a new UpdateInstallmentUseCase instance.
func NewUpdateInstallmentUseCase(extraRepo adapter.InstallmentExtraRepository) *UpdateInstallmentUseCase {
	return &UpdateInstallmentUseCase{
		extraRepo: extraRepo,
		now:       time.Now,
	}
}

// Execute validates the patch, merges it over the stored override (or the defaults) and saves it.
func (uc *UpdateInstallmentUseCase) Execute(ctx context.Context, input UpdateInstallmentInput) (*UpdateInstallmentOutput, error) {
	if err := validatePatch(input); err != nil {
		return nil, err
	}

	extra, err := uc.extraRepo.FindByKey(ctx, input.Key)
	if err != nil {
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeInstallmentLoadFailed,
			"failed to load installment override",
			err,
		)
	}
	if extra == nil {
		extra = &entity.InstallmentExtra{
			Key:    input.Key,
			Status: entity.InstallmentStatusPendente,
		}
	}

	if input.Emitted != nil {
		extra.Emitted = *input.Emitted
	}

	if input.ClearPaymentDate {
		extra.PaymentDate = nil
	} else if input.PaymentDate != nil {
		paid := *input.PaymentDate
		extra.PaymentDate = &paid
	}

	if input.Status != nil {
		extra.Status = *input.Status
	}

	if input.ClearEditedValue {
		extra.EditedValue = nil
	} else if input.EditedValue != nil {
		value := *input.EditedValue
		extra.EditedValue = &value
	}

	extra.UpdatedAt = uc.now().UTC()

	if err := uc.extraRepo.Upsert(ctx, extra); err != nil {
		return nil, domainerror.NewInstallmentError(
			domainerror.ErrCodeInstallmentSaveFailed,
			"failed to save installment override",
			err,
		)
	}

	return &UpdateInstallmentOutput{Extra: extra}, nil
}

func validatePatch(input UpdateInstallmentInput) error {
	if _, index, err := entity.ParseInstallmentKey(input.Key); err != nil || index < 2 {
		return domainerror.NewInstallmentError(
			domainerror.ErrCodeInvalidInstallmentKey,
			"key must be <invoiceNumber>-<index> with index of 2 or more",
			domainerror.ErrInvalidInstallmentKey,
		)
	}

	if input.Status != nil && !input.Status.IsValid() {
		return domainerror.NewInstallmentError(
			domainerror.ErrCodeInvalidInstallmentStatus,
			"status must be one of pendente, pago, atrasado or cancelado",
			domainerror.ErrInvalidInstallmentStatus,
		)
	}

	if input.EditedValue != nil && input.EditedValue.IsNegative() {
		return domainerror.NewInstallmentError(
			domainerror.ErrCodeNegativeInstallmentValue,
			"value cannot be negative",
			domainerror.ErrNegativeInstallmentValue,
		)
	}

	return nil
}
