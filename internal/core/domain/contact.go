package domain

import "time"

// Contact is an address-book entry owned by the user whose wallet it carries.
type Contact struct {
	ID            string    `json:"id" bson:"-"`
	WalletAddress string    `json:"walletAddress" bson:"wallet_address"`
	Name          string    `json:"name" bson:"name"`
	Phone         string    `json:"phone" bson:"phone"`
	Email         string    `json:"email" bson:"email"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty"`
	IsFavorite    bool      `json:"isFavorite" bson:"is_favorite"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
}

// ContactUpdate carries the fields a PUT may change; nil means unchanged.
type ContactUpdate struct {
	Name       *string
	Phone      *string
	Email      *string
	Address    *string
	IsFavorite *bool
}
