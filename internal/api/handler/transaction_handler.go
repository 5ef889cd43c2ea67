package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// HeaderIdempotencyKey deduplicates transaction submissions.
const HeaderIdempotencyKey = "Idempotency-Key"

// TransactionHandler serves the per-user transaction log.
type TransactionHandler struct {
	txs ports.TransactionService
}

func NewTransactionHandler(txs ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{txs: txs}
}

type saveTransactionRequest struct {
	WalletFields
	Type   string  `json:"type" form:"type"`
	Amount float64 `json:"amount" form:"amount"`
	From   string  `json:"from" form:"from"`
	To     string  `json:"to" form:"to"`
	Note   string  `json:"note" form:"note"`
	Status string  `json:"status" form:"status"`
}

type updateTransactionStatusRequest struct {
	WalletFields
	TransactionID string `json:"transactionId" form:"transactionId"`
	Status        string `json:"status" form:"status"`
}

type transactionResponse struct {
	Message     string              `json:"message"`
	Transaction *domain.Transaction `json:"transaction"`
}

type transactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type transactionCountsResponse struct {
	TransactionCounts domain.TransactionCounts `json:"transactionCounts"`
}

// Save appends a transaction to the caller's log. A repeated Idempotency-Key
// returns the original entry with 200 instead of 201.
//
// @Summary      Save a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                  false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      saveTransactionRequest  true   "Credentials plus transaction"
// @Success      201              {object}  transactionResponse
// @Success      200              {object}  transactionResponse
// @Failure      400              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /api/user/transaction [post]
func (h *TransactionHandler) Save(c echo.Context) error {
	var req saveTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	tx, replayed, err := h.txs.Save(c.Request().Context(), credentials(c, req.WalletFields), ports.SaveTransactionInput{
		Type:           req.Type,
		Amount:         req.Amount,
		From:           req.From,
		To:             req.To,
		Note:           req.Note,
		Status:         domain.TransactionStatus(req.Status),
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	if replayed {
		return c.JSON(http.StatusOK, transactionResponse{Message: "Transaction already recorded", Transaction: tx})
	}
	return c.JSON(http.StatusCreated, transactionResponse{Message: "Transaction saved successfully!", Transaction: tx})
}

// UpdateStatus changes the status of one of the caller's transactions. The
// path wallet must be the caller's own.
//
// @Summary      Update transaction status
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        walletAddress  path      string                          true  "Wallet address owning the transaction"
// @Param        body           body      updateTransactionStatusRequest  true  "Credentials, transaction id and new status"
// @Success      200            {object}  transactionResponse
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/user/transaction/{walletAddress} [put]
func (h *TransactionHandler) UpdateStatus(c echo.Context) error {
	var req updateTransactionStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	tx, err := h.txs.UpdateStatus(c.Request().Context(), credentials(c, req.WalletFields),
		c.Param("walletAddress"), req.TransactionID, domain.TransactionStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactionResponse{Message: "Transaction status updated successfully!", Transaction: tx})
}

// History returns a user's complete log. Public.
//
// @Summary      Complete transaction history
// @Tags         transactions
// @Produce      json
// @Param        walletAddress  path      string  true  "Wallet address"
// @Success      200            {object}  transactionsResponse
// @Failure      400            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/user/transactions/history/{walletAddress} [get]
func (h *TransactionHandler) History(c echo.Context) error {
	txs, err := h.txs.History(c.Request().Context(), c.Param("walletAddress"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactionsResponse{Transactions: txs})
}

// Recent returns the last limit entries of a user's log. Public.
//
// @Summary      Recent transactions
// @Tags         transactions
// @Produce      json
// @Param        walletAddress  query     string  true   "Wallet address"
// @Param        limit          query     int     false  "Number of entries (default 10)"
// @Success      200            {object}  transactionsResponse
// @Failure      400            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/user/transactions/recent [get]
func (h *TransactionHandler) Recent(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	txs, err := h.txs.Recent(c.Request().Context(), c.QueryParam("walletAddress"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactionsResponse{Transactions: txs})
}

// ByStatus filters a user's log by status. Public.
//
// @Summary      Transactions by status
// @Tags         transactions
// @Produce      json
// @Param        walletAddress  path      string  true   "Wallet address"
// @Param        status         query     string  false  "completed, pending or cancelled"
// @Success      200            {object}  transactionsResponse
// @Failure      400            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/user/transactions/status/{walletAddress} [get]
func (h *TransactionHandler) ByStatus(c echo.Context) error {
	status := domain.TransactionStatus(c.QueryParam("status"))
	txs, err := h.txs.ByStatus(c.Request().Context(), c.Param("walletAddress"), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactionsResponse{Transactions: txs})
}

// ByType filters a user's log by direction. Public.
//
// @Summary      Transactions by type
// @Tags         transactions
// @Produce      json
// @Param        walletAddress  path      string  true   "Wallet address"
// @Param        type           query     string  false  "sent or received"
// @Success      200            {object}  transactionsResponse
// @Failure      400            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/user/transactions/type/{walletAddress} [get]
func (h *TransactionHandler) ByType(c echo.Context) error {
	txs, err := h.txs.ByType(c.Request().Context(), c.Param("walletAddress"), c.QueryParam("type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactionsResponse{Transactions: txs})
}

// CountByStatus returns per-status counts for a user. Public.
//
// @Summary      Transaction counts by status
// @Tags         transactions
// @Produce      json
// @Param        walletAddress  path      string  true  "Wallet address"
// @Success      200            {object}  transactionCountsResponse
// @Failure      400            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/user/transactions/count/{walletAddress} [get]
func (h *TransactionHandler) CountByStatus(c echo.Context) error {
	counts, err := h.txs.CountByStatus(c.Request().Context(), c.Param("walletAddress"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactionCountsResponse{TransactionCounts: counts})
}
