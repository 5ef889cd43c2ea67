package domain

import "time"

// Admin is a privileged operator of the marketplace.
type Admin struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	UpiID         string    `json:"upiId"`
	ProfilePic    string    `json:"profilePic,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (a *Admin) Kind() PrincipalKind { return KindAdmin }
func (a *Admin) Wallet() string      { return a.WalletAddress }
