package domain

import (
	"fmt"

	apperrors "studychef/internal/platform/errors"
)

// Purchase buys item for its cost. Ownership is permanent.
func (s *State) Purchase(item UpgradeItem) error {
	if s.OwnedUpgrades[item.ID] {
		return fmt.Errorf("%w: %s", apperrors.ErrAlreadyOwned, item.ID)
	}
	if s.Coins < item.Cost {
		return fmt.Errorf("%w: %s costs %d, have %d", apperrors.ErrInsufficientFunds, item.ID, item.Cost, s.Coins)
	}
	if s.OwnedUpgrades == nil {
		s.OwnedUpgrades = map[string]bool{}
	}
	s.Coins -= item.Cost
	s.OwnedUpgrades[item.ID] = true
	return nil
}
