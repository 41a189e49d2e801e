package controller

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/gestao-consultoria/backend/internal/domain/entity"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
)

type fakeIdentity struct {
	users     map[string]*entity.IdentityUser
	deleteErr error
	deleted   []string
}

func (f *fakeIdentity) GetUser(_ context.Context, token string) (*entity.IdentityUser, error) {
	if user, ok := f.users[token]; ok {
		return user, nil
	}
	return nil, domainerror.ErrInvalidToken
}

func (f *fakeIdentity) DeleteUser(_ context.Context, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, userID)
	return nil
}

type fakeProfiles struct {
	roles map[string]entity.Role
}

func (f *fakeProfiles) FindByID(_ context.Context, id string) (*entity.Profile, error) {
	role, ok := f.roles[id]
	if !ok {
		return nil, domainerror.ErrProfileNotFound
	}
	return &entity.Profile{ID: uuid.MustParse(id), Role: role}, nil
}

type fakeInvoices struct {
	mu       sync.Mutex
	invoices []*entity.Invoice
	err      error
}

func (f *fakeInvoices) Create(_ context.Context, invoice *entity.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.invoices = append(f.invoices, invoice)
	return nil
}

func (f *fakeInvoices) FindAll(context.Context) ([]*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]*entity.Invoice(nil), f.invoices...), nil
}

func (f *fakeInvoices) ExistsByNumberAndInstallment(_ context.Context, number string, installment int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inv := range f.invoices {
		if inv.Number == number && inv.CurrentInstallment() == installment {
			return true, nil
		}
	}
	return false, nil
}

type fakeExtras struct {
	extras map[string]*entity.InstallmentExtra
}

func newFakeExtras() *fakeExtras {
	return &fakeExtras{extras: map[string]*entity.InstallmentExtra{}}
}

func (f *fakeExtras) FindAll(context.Context) (map[string]*entity.InstallmentExtra, error) {
	return f.extras, nil
}

func (f *fakeExtras) FindByKey(_ context.Context, key string) (*entity.InstallmentExtra, error) {
	return f.extras[key], nil
}

func (f *fakeExtras) Upsert(_ context.Context, extra *entity.InstallmentExtra) error {
	f.extras[extra.Key] = extra
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordUserDeletion(string)       {}
func (nopMetrics) RecordInstallmentsGenerated(int) {}
