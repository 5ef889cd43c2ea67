package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType enumerates the accepted KYC document kinds.
type DocumentType string

const (
	DocumentPAN    DocumentType = "PAN"
	DocumentAadhar DocumentType = "AADHAR"
	DocumentDL     DocumentType = "DL"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentPAN, DocumentAadhar, DocumentDL:
		return true
	}
	return false
}

// Document references an encrypted KYC upload on local storage.
// IV holds the hex-encoded nonce needed to decrypt it.
type Document struct {
	Path      string       `json:"path"`
	Type      DocumentType `json:"type"`
	IV        string       `json:"iv"`
	Extension string       `json:"extension"`
}

// Balances are stored per asset and never refreshed from chain.
type Balances struct {
	ETH         decimal.Decimal `json:"eth"`
	USDCEth     decimal.Decimal `json:"usdcEth"`
	Matic       decimal.Decimal `json:"matic"`
	USDCPolygon decimal.Decimal `json:"usdcPolygon"`
}

// User is a marketplace participant identified by wallet address.
type User struct {
	ID            string        `json:"id"`
	WalletAddress string        `json:"walletAddress"`
	Name          string        `json:"name,omitempty"`
	UpiID         string        `json:"upiId,omitempty"`
	Email         string        `json:"email,omitempty"`
	Mobile        string        `json:"mobile,omitempty"`
	ProfilePic    string        `json:"profilePic,omitempty"`
	KYCStatus     bool          `json:"kycStatus"`
	Documents     []Document    `json:"documents"`
	Balances      Balances      `json:"balances"`
	Transactions  []Transaction `json:"transactions"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (u *User) Kind() PrincipalKind { return KindUser }
func (u *User) Wallet() string      { return u.WalletAddress }
