package ports

// WalletCredentials is the claimed wallet address plus the signature over the
// fixed challenge message, as supplied by the caller.
type WalletCredentials struct {
	WalletAddress string
	Signature     string
}
