package repo

import (
	"time"

	"github.com/google/uuid"

	"github.com/talx-hub/points-ledger/internal/model/wallet"
)

func ledgerAccount(owner string) wallet.Account {
	now := time.Now().UTC()
	return wallet.Account{
		CreatedAt: now,
		UpdatedAt: now,
		ID:        uuid.NewString(),
		OwnerID:   owner,
		Version:   1,
	}
}
