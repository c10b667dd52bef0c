package balance

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/dto"
	"github.com/GlebRadaev/taxiback/internal/handlers/common"
	"github.com/GlebRadaev/taxiback/pkg/utils"
)

//go:generate mockgen -source=balance.go -destination=mock_balance.go -package=balance

type Service interface {
	GetBalance(ctx context.Context, userID int, role domain.Role) (*domain.Balance, error)
}

type LedgerService interface {
	Request(ctx context.Context, userID int, txType domain.TransactionType, amount decimal.Decimal) (*domain.Transaction, error)
	GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error)
}

type BalanceHandler struct {
	balanceService Service
	ledgerService  LedgerService
}

func New(balanceService Service, ledgerService LedgerService) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		ledgerService:  ledgerService,
	}
}

var depositTypes = map[string]domain.TransactionType{
	"rub":   domain.TxDepositRub,
	"bonus": domain.TxDepositBonus,
}

// GetBalance godoc
//
//	@Summary		Get current balance
//	@Description	Passengers get bonus and rub balances, drivers get the earnings balance and shift state
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		503	{object}	utils.Response	"Storage unavailable"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := common.Caller(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	balance, err := h.balanceService.GetBalance(r.Context(), userID, role)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewBalanceResponse(balance))
}

// Deposit godoc
//
//	@Summary		Request a deposit
//	@Description	Create a pending deposit to the rub or bonus balance. Money moves only after an admin approves it.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DepositRequestDTO	true	"Deposit request"
//	@Success		201		{object}	dto.TransactionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount or balance type"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Passengers only"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/balance/deposit [post]
func (h *BalanceHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := common.Caller(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.DepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	txType, ok := depositTypes[req.BalanceType]
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid balance type")
		return
	}

	tx, err := h.ledgerService.Request(r.Context(), userID, txType, req.Amount)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewTransactionResponse(*tx))
}

// Withdraw godoc
//
//	@Summary		Request a withdrawal
//	@Description	Create a pending withdrawal of driver earnings. The amount is checked now and again on approval.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request"
//	@Success		201		{object}	dto.TransactionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		403		{object}	utils.Response	"Drivers only"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/balance/withdraw [post]
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := common.Caller(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.ledgerService.Request(r.Context(), userID, domain.TxWithdrawal, req.Amount)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewTransactionResponse(*tx))
}

// GetTransactions godoc
//
//	@Summary		Get transaction history
//	@Description	Latest transactions of the authenticated user, newest first
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/transactions [get]
func (h *BalanceHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := common.Caller(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	txs, err := h.ledgerService.GetTransactions(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransactionsResponse(txs))
}
