package domain_test

import (
	"errors"
	"testing"

	"studychef/internal/modules/kitchen/domain"
	apperrors "studychef/internal/platform/errors"
)

func TestPurchaseExactFundsThenAlreadyOwned(t *testing.T) {
	t.Parallel()
	item, _ := testCatalog().Item("skin-sakura")
	st := domain.NewState()
	st.Coins = 60

	if err := st.Purchase(item); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if st.Coins != 0 || !st.Owns("skin-sakura") {
		t.Fatalf("expected 0 coins and ownership, got coins=%d owned=%v", st.Coins, st.OwnedUpgrades)
	}

	st.Coins = 100
	if err := st.Purchase(item); !errors.Is(err, apperrors.ErrAlreadyOwned) {
		t.Fatalf("expected already owned, got %v", err)
	}
	if st.Coins != 100 {
		t.Fatalf("second purchase must not charge, coins=%d", st.Coins)
	}
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	t.Parallel()
	item, _ := testCatalog().Item("timer-quick")
	st := domain.NewState()
	st.Coins = 79

	if err := st.Purchase(item); !errors.Is(err, apperrors.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if st.Coins != 79 || st.Owns("timer-quick") {
		t.Fatalf("failed purchase changed state: coins=%d owned=%v", st.Coins, st.OwnedUpgrades)
	}
}
