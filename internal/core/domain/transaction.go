package domain

import "time"

// TransactionStatus is the settlement state recorded by the client.
// Any status may follow any other.
type TransactionStatus string

const (
	TxCompleted TransactionStatus = "completed"
	TxPending   TransactionStatus = "pending"
	TxCancelled TransactionStatus = "cancelled"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TxCompleted, TxPending, TxCancelled:
		return true
	}
	return false
}

const (
	TxTypeSent     = "sent"
	TxTypeReceived = "received"
)

// Transaction is an entry of a user's append-only transaction log.
type Transaction struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Amount    float64           `json:"amount"`
	From      string            `json:"from"`
	To        string            `json:"to"`
	Timestamp time.Time         `json:"timestamp"`
	Note      string            `json:"note,omitempty"`
	Status    TransactionStatus `json:"status"`
}

// TransactionCounts tallies transactions per status. Unknown collects
// statuses outside the known set and is only filled by aggregate counts.
type TransactionCounts struct {
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
	Cancelled int64 `json:"cancelled"`
	Unknown   int64 `json:"unknown,omitempty"`
}

// Add increments the bucket matching status.
func (c *TransactionCounts) Add(status TransactionStatus, n int64) {
	switch status {
	case TxCompleted:
		c.Completed += n
	case TxPending:
		c.Pending += n
	case TxCancelled:
		c.Cancelled += n
	default:
		c.Unknown += n
	}
}

// CountByStatus tallies a transaction log.
func CountByStatus(txs []Transaction) TransactionCounts {
	var c TransactionCounts
	for _, tx := range txs {
		c.Add(tx.Status, 1)
	}
	return c
}
