package config

import (
	"testing"

	"github.com/mcoutinho/retail-ledger-go/internal/domain"
)

func TestLoadDefaultsMatchDomain(t *testing.T) {
	t.Setenv("WITHDRAWAL_LIMIT", "")
	t.Setenv("WITHDRAWAL_CAP", "")

	cfg := Load()

	if !cfg.WithdrawalLimit.Equal(domain.DefaultWithdrawalLimit) {
		t.Errorf("withdrawal limit = %s, want %s", cfg.WithdrawalLimit, domain.DefaultWithdrawalLimit)
	}
	if cfg.WithdrawalCap != domain.DefaultWithdrawalCap {
		t.Errorf("withdrawal cap = %d, want %d", cfg.WithdrawalCap, domain.DefaultWithdrawalCap)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WITHDRAWAL_LIMIT", "750.50")
	t.Setenv("WITHDRAWAL_CAP", "5")
	t.Setenv("PORT", "9090")

	cfg := Load()

	if cfg.WithdrawalLimit.StringFixed(2) != "750.50" {
		t.Errorf("withdrawal limit = %s, want 750.50", cfg.WithdrawalLimit)
	}
	if cfg.WithdrawalCap != 5 {
		t.Errorf("withdrawal cap = %d, want 5", cfg.WithdrawalCap)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Port)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("WITHDRAWAL_LIMIT", "lots")
	t.Setenv("WITHDRAWAL_CAP", "many")

	cfg := Load()

	if !cfg.WithdrawalLimit.Equal(domain.DefaultWithdrawalLimit) {
		t.Errorf("withdrawal limit = %s, want default on parse failure", cfg.WithdrawalLimit)
	}
	if cfg.WithdrawalCap != domain.DefaultWithdrawalCap {
		t.Errorf("withdrawal cap = %d, want default on parse failure", cfg.WithdrawalCap)
	}
}
