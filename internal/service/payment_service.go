package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"photoset/api/internal/model"
	"photoset/api/internal/provider/paypal"
	"photoset/api/internal/repository"
)

const subscriptionPeriod = 30 * 24 * time.Hour

// OrderClient is the external payment-provider collaborator.
// *paypal.Client satisfies it.
type OrderClient interface {
	CreateOrder(ctx context.Context, amount, description string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string) error
}

type OrderResult struct {
	OrderID     string `json:"order_id"`
	ApproveLink string `json:"approve_link,omitempty"`
	Plan        string `json:"plan"`
	Amount      string `json:"amount"`
}

type CaptureResult struct {
	OrderID      string `json:"order_id"`
	Status       string `json:"status"`
	CreditsAdded int    `json:"credits_added"`
}

type PaymentService interface {
	// CreateOrder opens a provider order for the plan and records a pending
	// transaction keyed by the provider's order id.
	CreateOrder(ctx context.Context, user *model.User, planID string) (*OrderResult, error)
	// CaptureOrder confirms the provider capture, then completes the pending
	// transaction exactly once: credit grant, plan, and a 30-day active
	// subscription. Re-capturing a completed order returns ErrAlreadyCaptured
	// without touching the balance.
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}

type paymentService struct {
	txnRepo repository.TransactionRepository
	orders  OrderClient
}

func NewPaymentService(txnRepo repository.TransactionRepository, orders OrderClient) PaymentService {
	return &paymentService{
		txnRepo: txnRepo,
		orders:  orders,
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, user *model.User, planID string) (*OrderResult, error) {
	plan, ok := PlanByID(planID)
	if !ok {
		return nil, ErrInvalidPlan
	}

	order, err := s.orders.CreateOrder(ctx, plan.Price,
		fmt.Sprintf("PhotoSet %s Plan - %d credits", plan.Name, plan.Credits))
	if err != nil {
		return nil, err
	}

	txn := &model.Transaction{
		UserID:        user.ID,
		Amount:        plan.Price,
		Currency:      "USD",
		Status:        model.TransactionPending,
		PaymentMethod: "paypal",
		PayPalOrderID: order.ID,
		Plan:          plan.ID,
		Metadata:      model.TransactionMetadata{"credits": plan.Credits},
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	return &OrderResult{
		OrderID:     order.ID,
		ApproveLink: order.ApproveLink,
		Plan:        plan.ID,
		Amount:      plan.Price,
	}, nil
}

func (s *paymentService) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	if err := s.orders.CaptureOrder(ctx, orderID); err != nil {
		return nil, err
	}

	txn, err := s.txnRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	credits := txn.Metadata.Credits()
	expiresAt := time.Now().UTC().Add(subscriptionPeriod)

	captured, err := s.txnRepo.CompleteCapture(ctx, orderID, credits, txn.Plan, expiresAt)
	if err != nil {
		return nil, err
	}
	if !captured {
		return nil, ErrAlreadyCaptured
	}

	return &CaptureResult{
		OrderID:      orderID,
		Status:       string(model.TransactionCompleted),
		CreditsAdded: credits,
	}, nil
}

var _ PaymentService = (*paymentService)(nil)
