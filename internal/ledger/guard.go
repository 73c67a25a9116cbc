package ledger

import (
	"context"
	"fmt"
)

// Guard answers whether an external reference was already applied to an
// account. Callers consult it inside the unit of work that will write.
type Guard struct{}

func (Guard) Exists(ctx context.Context, tx StoreTx, accountID string, externalRef *string,
) (bool, error) {
	if externalRef == nil || accountID == "" {
		return false, nil
	}
	exists, err := tx.TransactionExists(ctx, accountID, *externalRef)
	if err != nil {
		return false, fmt.Errorf("failed to check external reference %q: %w", *externalRef, err)
	}
	return exists, nil
}
