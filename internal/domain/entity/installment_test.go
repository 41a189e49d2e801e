package entity

import "testing"

func TestParseInstallmentKey(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		expectedNumber string
		expectedIndex  int
		wantErr        bool
	}{
		{name: "simple key", key: "1234-2", expectedNumber: "1234", expectedIndex: 2},
		{name: "number with dash", key: "NF-2024-3", expectedNumber: "NF-2024", expectedIndex: 3},
		{name: "no dash", key: "12342", wantErr: true},
		{name: "missing index", key: "1234-", wantErr: true},
		{name: "missing number", key: "-2", wantErr: true},
		{name: "non numeric index", key: "1234-x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			number, index, err := ParseInstallmentKey(tt.key)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for key %q", tt.key)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if number != tt.expectedNumber || index != tt.expectedIndex {
				t.Errorf("expected (%s, %d), got (%s, %d)", tt.expectedNumber, tt.expectedIndex, number, index)
			}
			if InstallmentKey(number, index) != tt.key {
				t.Errorf("InstallmentKey(%s, %d) does not rebuild %q", number, index, tt.key)
			}
		})
	}
}

func TestInstallmentStatus_IsValid(t *testing.T) {
	for _, s := range []InstallmentStatus{
		InstallmentStatusPendente, InstallmentStatusPago, InstallmentStatusAtrasado, InstallmentStatusCancelado,
	} {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	if InstallmentStatus("quitado").IsValid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestRole(t *testing.T) {
	tests := []struct {
		role     Role
		admin    bool
		canWrite bool
		known    bool
	}{
		{role: RoleAdmin, admin: true, canWrite: true, known: true},
		{role: RoleFinanceiro, admin: false, canWrite: true, known: true},
		{role: RoleLeitura, admin: false, canWrite: false, known: true},
		{role: Role("user"), admin: false, canWrite: false, known: false},
		{role: Role(""), admin: false, canWrite: false, known: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if tt.role.IsAdmin() != tt.admin {
				t.Errorf("IsAdmin() = %v, expected %v", tt.role.IsAdmin(), tt.admin)
			}
			if tt.role.CanWrite() != tt.canWrite {
				t.Errorf("CanWrite() = %v, expected %v", tt.role.CanWrite(), tt.canWrite)
			}
			if tt.role.IsKnown() != tt.known {
				t.Errorf("IsKnown() = %v, expected %v", tt.role.IsKnown(), tt.known)
			}
		})
	}
}
