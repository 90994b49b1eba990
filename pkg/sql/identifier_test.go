package sql

import (
	"errors"
	"strings"
	"testing"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain table", value: "t_user_detail"},
		{name: "schema qualified", value: "shop.t_user_detail"},
		{name: "unicode letters", value: "t_kunde_größe"},
		{name: "empty", value: "", wantErr: true},
		{name: "blank", value: "   ", wantErr: true},
		{name: "leading digit", value: "1table", wantErr: true},
		{name: "too many qualifiers", value: "db.shop.t_user", wantErr: true},
		{name: "empty qualifier", value: ".t_user", wantErr: true},
		{name: "whitespace", value: "t user", wantErr: true},
		{name: "hyphen", value: "t-user", wantErr: true},
		{name: "quote injection", value: "' OR '1'='1", wantErr: true},
		{name: "statement injection", value: "t_user'; DROP TABLE users--", wantErr: true},
		{name: "union injection", value: "1 UNION SELECT * FROM passwords", wantErr: true},
		{name: "too long", value: strings.Repeat("a", MaxIdentifierLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTableName(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.value)
				}
				if !errors.Is(err, apperrors.ErrInvalidIdentifier) {
					t.Errorf("expected ErrInvalidIdentifier, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error for %q: %v", tt.value, err)
			}
		})
	}
}

func TestValidateTableName_ReportsFingerprint(t *testing.T) {
	err := ValidateTableName("admin'--")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "fingerprint") {
		t.Errorf("expected fingerprint in error, got %v", err)
	}
}
