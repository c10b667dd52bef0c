package orderrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/pg"
)

const columns = `id, passenger_id, driver_id, from_address, to_address, amount, payment_method,
        final_price, discount, comment, status, created_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Create inserts order and fills its id and creation time. Pricing fields are
// written once here and never updated afterwards.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
        INSERT INTO orders (passenger_id, from_address, to_address, amount, payment_method,
            final_price, discount, comment, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query,
			order.PassengerID, order.FromAddress, order.ToAddress, order.Amount, order.PaymentMethod,
			order.FinalPrice, order.Discount, order.Comment, order.Status,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			zap.L().Error("can't save order", zap.Error(err))
			return pg.Classify(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *Repository) FindByPassengerID(ctx context.Context, passengerID int, limit int) ([]domain.Order, error) {
	query := `
        SELECT ` + columns + `
        FROM orders
        WHERE passenger_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	return r.list(ctx, query, passengerID, limit)
}

func (r *Repository) FindByDriverID(ctx context.Context, driverID int, limit int) ([]domain.Order, error) {
	query := `
        SELECT ` + columns + `
        FROM orders
        WHERE driver_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	return r.list(ctx, query, driverID, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, pg.Classify(err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(&order.ID, &order.PassengerID, &order.DriverID, &order.FromAddress, &order.ToAddress,
			&order.Amount, &order.PaymentMethod, &order.FinalPrice, &order.Discount, &order.Comment,
			&order.Status, &order.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate orders", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return orders, nil
}
