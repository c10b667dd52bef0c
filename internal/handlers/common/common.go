package common

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/pkg/auth"
	"github.com/GlebRadaev/taxiback/pkg/utils"
)

var statuses = []struct {
	err  error
	code int
}{
	{domain.ErrStorageUnavailable, http.StatusServiceUnavailable},
	{domain.ErrInvalidRequest, http.StatusBadRequest},
	{domain.ErrInvalidAmount, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrInsufficientFunds, http.StatusPaymentRequired},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrAccountNotFound, http.StatusNotFound},
	{domain.ErrAlreadyProcessed, http.StatusConflict},
	{domain.ErrUserExists, http.StatusConflict},
	{domain.ErrShiftActive, http.StatusConflict},
}

// RespondWithServiceError writes the status for err. Only the sentinel text
// reaches the client.
func RespondWithServiceError(w http.ResponseWriter, err error) {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			utils.RespondWithError(w, s.code, s.err.Error())
			return
		}
	}
	zap.L().Error("unhandled service error", zap.Error(err))
	utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
}

// Caller returns the authenticated user set by auth.Middleware.
func Caller(r *http.Request) (int, domain.Role, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return 0, "", false
	}
	role, ok := auth.RoleFromContext(r.Context())
	if !ok {
		return 0, "", false
	}
	return userID, domain.Role(role), true
}
