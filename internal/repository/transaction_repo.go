package repository

import (
	"context"
	"time"

	"photoset/api/internal/model"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) error
	GetByOrderID(ctx context.Context, orderID string) (*model.Transaction, error)

	// CompleteCapture marks the pending transaction for orderID completed and
	// grants the recorded credits plus an active 30-day subscription, all in
	// one transaction. Returns false without writing anything when the
	// transaction is no longer pending, which makes capture idempotent.
	CompleteCapture(ctx context.Context, orderID string, credits int, plan string, subscriptionExpiresAt time.Time) (bool, error)
}
