package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"photoset/api/internal/model"
)

type pgTransactionRepository struct {
	db *gorm.DB
}

func NewPGTransactionRepository(db *gorm.DB) TransactionRepository {
	return &pgTransactionRepository{db: db}
}

func (r *pgTransactionRepository) Create(ctx context.Context, txn *model.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *pgTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Transaction, error) {
	var txn model.Transaction
	if err := r.db.WithContext(ctx).Where("paypal_order_id = ?", orderID).First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *pgTransactionRepository) CompleteCapture(ctx context.Context, orderID string, credits int, plan string, subscriptionExpiresAt time.Time) (bool, error) {
	captured := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The status guard is the idempotency barrier: a second capture of
		// the same order id matches zero rows and nothing below runs.
		res := tx.Model(&model.Transaction{}).
			Where("paypal_order_id = ? AND status = ?", orderID, model.TransactionPending).
			Updates(map[string]interface{}{
				"status":       model.TransactionCompleted,
				"completed_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		captured = true

		var txn model.Transaction
		if err := tx.Where("paypal_order_id = ?", orderID).First(&txn).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("id = ?", txn.UserID).
			Updates(map[string]interface{}{
				"credits":                 gorm.Expr("credits + ?", credits),
				"plan":                    plan,
				"subscription_status":     model.SubscriptionActive,
				"subscription_expires_at": subscriptionExpiresAt,
			}).Error
	})
	return captured, err
}
