package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/taxiback/docs"
	adminhandlers "github.com/GlebRadaev/taxiback/internal/handlers/admin"
	authhandlers "github.com/GlebRadaev/taxiback/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/taxiback/internal/handlers/balance"
	ordershandlers "github.com/GlebRadaev/taxiback/internal/handlers/orders"
	shifthandlers "github.com/GlebRadaev/taxiback/internal/handlers/shift"
	"github.com/GlebRadaev/taxiback/internal/service"
	"github.com/GlebRadaev/taxiback/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	CreateOrder(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
}

type ShiftHandler interface {
	StartShift(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	GetPending(w http.ResponseWriter, r *http.Request)
	Moderate(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	BalanceHandler BalanceHandler
	OrderHandler   OrderHandler
	ShiftHandler   ShiftHandler
	AdminHandler   AdminHandler
	jwtService     auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		BalanceHandler: balancehandlers.New(s.BalanceService, s.LedgerService),
		OrderHandler:   ordershandlers.New(s.OrderService),
		ShiftHandler:   shifthandlers.New(s.ShiftService),
		AdminHandler:   adminhandlers.New(s.AuthService, s.ModerationService),
		jwtService:     jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.AuthHandler.Register)
		r.Post("/auth/login", h.AuthHandler.Login)
		r.Post("/admin/login", h.AdminHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.jwtService))

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RolePassenger, auth.RoleDriver))
				r.Get("/balance", h.BalanceHandler.GetBalance)
				r.Get("/transactions", h.BalanceHandler.GetTransactions)
				r.Get("/orders", h.OrderHandler.GetOrders)
			})
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RolePassenger))
				r.Post("/balance/deposit", h.BalanceHandler.Deposit)
				r.Post("/orders", h.OrderHandler.CreateOrder)
			})
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RoleDriver))
				r.Post("/balance/withdraw", h.BalanceHandler.Withdraw)
				r.Post("/shift/start", h.ShiftHandler.StartShift)
			})
			r.Route("/admin/transactions", func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RoleAdmin))
				r.Get("/", h.AdminHandler.GetPending)
				r.Post("/{id}", h.AdminHandler.Moderate)
			})
		})
	})

	return r
}
