package domain

import "strings"

// PrincipalKind selects which collection a wallet address is resolved against.
type PrincipalKind string

const (
	KindAdmin PrincipalKind = "admin"
	KindUser  PrincipalKind = "user"
)

func (k PrincipalKind) Valid() bool {
	return k == KindAdmin || k == KindUser
}

// Principal is an identity that can be authenticated by wallet signature.
type Principal interface {
	Kind() PrincipalKind
	Wallet() string
}

// NormalizeAddress returns the canonical lowercase form used as the identity key.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
