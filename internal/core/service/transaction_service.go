package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/guda/guda-backend/internal/infrastructure/metrics"
	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

const defaultRecentLimit = 10

// TransactionService manages the transaction log embedded in each user.
type TransactionService struct {
	auth   ports.Authenticator
	users  ports.UserRepository
	idem   ports.IdempotencyStore // optional
	logger zerolog.Logger
}

func NewTransactionService(auth ports.Authenticator, users ports.UserRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *TransactionService {
	return &TransactionService{auth: auth, users: users, idem: idem, logger: logger}
}

// Save appends a transaction to the caller's log. An idempotency key is
// reserved before the append, so concurrent requests with the same key yield
// one transaction: a finished duplicate gets the earlier transaction back
// with replayed true, an overlapping one gets ErrRequestInProgress.
func (s *TransactionService) Save(ctx context.Context, creds ports.WalletCredentials, in ports.SaveTransactionInput) (tx *domain.Transaction, replayed bool, err error) {
	caller, err := s.auth.AuthenticateUser(ctx, creds)
	if err != nil {
		return nil, false, err
	}
	if err := validateTransaction(&in); err != nil {
		return nil, false, err
	}

	reserved := false
	if in.IdempotencyKey != "" && s.idem != nil {
		prev, ok, err := s.reserve(ctx, caller, in.IdempotencyKey)
		if err != nil {
			return nil, false, err
		}
		if prev != nil {
			metrics.TransactionsRecordedTotal.WithLabelValues("replay", string(prev.Status)).Inc()
			return prev, true, nil
		}
		reserved = ok
	}

	saved, err := s.users.AppendTransaction(ctx, caller.WalletAddress, domain.Transaction{
		Type:      in.Type,
		Amount:    in.Amount,
		From:      in.From,
		To:        in.To,
		Note:      in.Note,
		Status:    in.Status,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		if reserved {
			if rerr := s.idem.Release(ctx, caller.WalletAddress, in.IdempotencyKey); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency release failed")
			}
		}
		return nil, false, err
	}
	metrics.TransactionsRecordedTotal.WithLabelValues("save", string(saved.Status)).Inc()

	if reserved {
		if err := s.idem.Complete(ctx, caller.WalletAddress, in.IdempotencyKey, saved.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency complete failed")
		}
	}
	return saved, false, nil
}

// reserve claims key for the caller. It returns the earlier transaction when
// the key already produced one, and reserved=false with no error when the
// save should go ahead unguarded (store down, stale key).
func (s *TransactionService) reserve(ctx context.Context, caller *domain.User, key string) (prev *domain.Transaction, reserved bool, err error) {
	txID, reserved, err := s.idem.Reserve(ctx, caller.WalletAddress, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed")
		return nil, false, nil
	}
	if reserved {
		return nil, true, nil
	}
	if txID == "" {
		return nil, false, domain.ErrRequestInProgress
	}

	if tx := findTransaction(caller.Transactions, txID); tx != nil {
		s.logger.Info().Str("idempotency_key", key).Str("transaction_id", txID).Msg("idempotent replay")
		return tx, false, nil
	}
	// The holder may have finished after caller was loaded.
	fresh, err := s.users.FindByWallet(ctx, caller.WalletAddress)
	if err != nil {
		return nil, false, err
	}
	if tx := findTransaction(fresh.Transactions, txID); tx != nil {
		s.logger.Info().Str("idempotency_key", key).Str("transaction_id", txID).Msg("idempotent replay")
		return tx, false, nil
	}
	s.logger.Warn().Str("idempotency_key", key).Str("transaction_id", txID).Msg("idempotency key points at unknown transaction")
	return nil, false, nil
}

func findTransaction(txs []domain.Transaction, id string) *domain.Transaction {
	for i := range txs {
		if txs[i].ID == id {
			return &txs[i]
		}
	}
	return nil
}

func validateTransaction(in *ports.SaveTransactionInput) error {
	if err := requireField("type", in.Type); err != nil {
		return err
	}
	if err := requireField("from", in.From); err != nil {
		return err
	}
	if err := requireField("to", in.To); err != nil {
		return err
	}
	if in.Status == "" {
		in.Status = domain.TxPending
	}
	if !in.Status.Valid() {
		return domain.Invalidf("status must be one of: completed pending cancelled")
	}
	return nil
}

// UpdateStatus sets the status of one of the caller's transactions. wallet
// must be the caller's own address.
func (s *TransactionService) UpdateStatus(ctx context.Context, creds ports.WalletCredentials, wallet, txID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	caller, err := s.auth.AuthenticateUser(ctx, creds)
	if err != nil {
		return nil, err
	}
	w, err := requireWallet("walletAddress", wallet)
	if err != nil {
		return nil, err
	}
	if w != caller.WalletAddress {
		return nil, domain.ErrForbidden
	}
	if err := requireField("transactionId", txID); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Invalidf("status must be one of: completed pending cancelled")
	}

	tx, err := s.users.UpdateTransactionStatus(ctx, w, txID, status)
	if err != nil {
		return nil, err
	}
	metrics.TransactionsRecordedTotal.WithLabelValues("status_update", string(status)).Inc()
	return tx, nil
}

func (s *TransactionService) History(ctx context.Context, wallet string) ([]domain.Transaction, error) {
	return s.log(ctx, wallet)
}

// Recent returns the last limit transactions in log order.
func (s *TransactionService) Recent(ctx context.Context, wallet string, limit int) ([]domain.Transaction, error) {
	txs, err := s.log(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if len(txs) > limit {
		txs = txs[len(txs)-limit:]
	}
	return txs, nil
}

// ByStatus filters the log by status; an empty status returns everything.
func (s *TransactionService) ByStatus(ctx context.Context, wallet string, status domain.TransactionStatus) ([]domain.Transaction, error) {
	if status != "" && !status.Valid() {
		return nil, domain.Invalidf("status must be one of: completed pending cancelled")
	}
	txs, err := s.log(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return txs, nil
	}
	return filter(txs, func(tx domain.Transaction) bool { return tx.Status == status }), nil
}

// ByType filters the log by type; an empty type returns everything.
func (s *TransactionService) ByType(ctx context.Context, wallet, txType string) ([]domain.Transaction, error) {
	if txType != "" && txType != domain.TxTypeSent && txType != domain.TxTypeReceived {
		return nil, domain.Invalidf("type must be one of: sent received")
	}
	txs, err := s.log(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if txType == "" {
		return txs, nil
	}
	return filter(txs, func(tx domain.Transaction) bool { return tx.Type == txType }), nil
}

func (s *TransactionService) CountByStatus(ctx context.Context, wallet string) (domain.TransactionCounts, error) {
	txs, err := s.log(ctx, wallet)
	if err != nil {
		return domain.TransactionCounts{}, err
	}
	return domain.CountByStatus(txs), nil
}

func (s *TransactionService) log(ctx context.Context, wallet string) ([]domain.Transaction, error) {
	w, err := requireWallet("walletAddress", wallet)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByWallet(ctx, w)
	if err != nil {
		return nil, err
	}
	if user.Transactions == nil {
		return []domain.Transaction{}, nil
	}
	return user.Transactions, nil
}

func filter(txs []domain.Transaction, keep func(domain.Transaction) bool) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}
