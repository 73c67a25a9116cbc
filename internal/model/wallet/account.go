package wallet

import "time"

// Account is the single points balance owned by one user.
// Version advances on every committed balance change.
type Account struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Balance   int64     `json:"balance"`
	Version   int64     `json:"version"`
}
