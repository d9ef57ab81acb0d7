package analytics

import (
	"context"
	"database/sql"
	"fmt"

	"bookmart-be/internal/logger"

	"go.uber.org/zap"
)

// Repository gives the engine read-only access to the base entity
// collections. Writes belong to other layers entirely.
type Repository interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "LoadSnapshot"))

	snap := &Snapshot{}

	rows, err := r.db.QueryContext(ctx, `SELECT id, username FROM users ORDER BY id`)
	if err != nil {
		log.Error("failed to query users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		snap.Users = append(snap.Users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	productRows, err := r.db.QueryContext(ctx, `SELECT id, name, price, stock FROM products ORDER BY id`)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer productRows.Close()

	for productRows.Next() {
		var p Product
		if err := productRows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, err
		}
		snap.Products = append(snap.Products, p)
	}
	if err := productRows.Err(); err != nil {
		return nil, err
	}

	orderRows, err := r.db.QueryContext(ctx, `SELECT id, user_id, ordered_at, status FROM orders ORDER BY id`)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer orderRows.Close()

	for orderRows.Next() {
		var o Order
		if err := orderRows.Scan(&o.ID, &o.UserID, &o.OrderedAt, &o.Status); err != nil {
			return nil, err
		}
		snap.Orders = append(snap.Orders, o)
	}
	if err := orderRows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := r.db.QueryContext(ctx, `SELECT order_id, product_id, quantity FROM order_lines ORDER BY order_id, product_id`)
	if err != nil {
		log.Error("failed to query order lines", zap.Error(err))
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var l OrderLine
		if err := lineRows.Scan(&l.OrderID, &l.ProductID, &l.Quantity); err != nil {
			return nil, err
		}
		snap.Lines = append(snap.Lines, l)
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}

	log.Debug("snapshot loaded",
		zap.Int("users", len(snap.Users)),
		zap.Int("products", len(snap.Products)),
		zap.Int("orders", len(snap.Orders)),
		zap.Int("lines", len(snap.Lines)),
	)

	return snap, nil
}

// Validate checks the base-data contract before any report runs.
func (s *Snapshot) Validate() error {
	orders := s.ordersByID()
	products := s.productsByID()

	for _, p := range s.Products {
		if p.Price < 0 {
			return fmt.Errorf("%w: product %d has negative price", ErrInvariantViolation, p.ID)
		}
		if p.Stock < 0 {
			return fmt.Errorf("%w: product %d has negative stock", ErrInvariantViolation, p.ID)
		}
	}

	for _, l := range s.Lines {
		if _, ok := orders[l.OrderID]; !ok {
			return fmt.Errorf("%w: line references missing order %d", ErrInvariantViolation, l.OrderID)
		}
		if _, ok := products[l.ProductID]; !ok {
			return fmt.Errorf("%w: line references missing product %d", ErrInvariantViolation, l.ProductID)
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: line for order %d has non-positive quantity", ErrInvariantViolation, l.OrderID)
		}
	}

	return nil
}
