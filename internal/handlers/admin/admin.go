package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/dto"
	"github.com/GlebRadaev/taxiback/internal/handlers/common"
	"github.com/GlebRadaev/taxiback/pkg/utils"
)

//go:generate mockgen -source=admin.go -destination=mock_admin.go -package=admin

type AuthService interface {
	AuthenticateAdmin(ctx context.Context, username, password string) (*domain.Admin, error)
	GenerateToken(userID int, role domain.Role) (string, error)
}

type ModerationService interface {
	Moderate(ctx context.Context, adminID, txID int, decision domain.Decision) (*domain.Transaction, error)
	Pending(ctx context.Context, limit int) ([]domain.Transaction, error)
}

type AdminHandler struct {
	authService       AuthService
	moderationService ModerationService
}

func New(authService AuthService, moderationService ModerationService) *AdminHandler {
	return &AdminHandler{
		authService:       authService,
		moderationService: moderationService,
	}
}

// Login godoc
//
//	@Summary		Authenticate admin
//	@Description	Log in with admin credentials and get a JWT token with the admin role
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AdminLoginRequestDTO	true	"Admin login request"
//	@Success		200		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/login [post]
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	admin, err := h.authService.AuthenticateAdmin(r.Context(), req.Username, req.Password)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	token, err := h.authService.GenerateToken(admin.ID, domain.RoleAdmin)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{
		Message: "Admin successfully authenticated",
		UserID:  admin.ID,
		Role:    string(domain.RoleAdmin),
	})
}

// GetPending godoc
//
//	@Summary		List pending transactions
//	@Description	Pending deposits and withdrawals waiting for a decision, newest first
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"Page size, at most 50"
//	@Success		200		{array}		dto.TransactionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid limit"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admins only"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/transactions [get]
func (h *AdminHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	txs, err := h.moderationService.Pending(r.Context(), limit)
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransactionsResponse(txs))
}

// Moderate godoc
//
//	@Summary		Approve or reject a transaction
//	@Description	Resolve a pending transaction. Approval moves the money, rejection only closes it.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Transaction id"
//	@Param			request	body		dto.ModerateRequestDTO	true	"Decision"
//	@Success		200		{object}	dto.TransactionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid action"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		403		{object}	utils.Response	"Admins only"
//	@Failure		404		{object}	utils.Response	"Transaction not found"
//	@Failure		409		{object}	utils.Response	"Transaction already processed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/transactions/{id} [post]
func (h *AdminHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	adminID, _, ok := common.Caller(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	txID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || txID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var req dto.ModerateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.moderationService.Moderate(r.Context(), adminID, txID, domain.Decision(req.Action))
	if err != nil {
		common.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransactionResponse(*tx))
}
