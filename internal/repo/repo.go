package repo

import (
	"github.com/GlebRadaev/taxiback/internal/pg"
	balancerepo "github.com/GlebRadaev/taxiback/internal/repo/balance-repo"
	orderrepo "github.com/GlebRadaev/taxiback/internal/repo/order-repo"
	shiftrepo "github.com/GlebRadaev/taxiback/internal/repo/shift-repo"
	transactionrepo "github.com/GlebRadaev/taxiback/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/taxiback/internal/repo/user-repo"
	"github.com/GlebRadaev/taxiback/internal/service/authservice"
	"github.com/GlebRadaev/taxiback/internal/service/balanceservice"
	"github.com/GlebRadaev/taxiback/internal/service/ledgerservice"
	"github.com/GlebRadaev/taxiback/internal/service/orderservice"
	"github.com/GlebRadaev/taxiback/internal/shift"
)

type Repositories struct {
	UserRepo        authservice.Repo
	BalanceRepo     balanceservice.Repo
	TransactionRepo ledgerservice.Repo
	OrderRepo       orderservice.Repo
	ShiftRepo       shift.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		BalanceRepo:     balancerepo.New(conn, txManager),
		TransactionRepo: transactionrepo.New(conn),
		OrderRepo:       orderrepo.New(conn, txManager),
		ShiftRepo:       shiftrepo.New(conn, txManager),
	}
}
