package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"photoset/api/internal/model"
	"photoset/api/internal/provider/paypal"
	"photoset/api/internal/repository"
	"photoset/api/internal/service"
)

type fakeOrderClient struct {
	nextID       int
	captureCalls int
	captureErr   error
}

func (f *fakeOrderClient) CreateOrder(_ context.Context, amount, _ string) (*paypal.Order, error) {
	f.nextID++
	id := fmt.Sprintf("ORDER-%d-%s", f.nextID, amount)
	return &paypal.Order{
		ID:          id,
		ApproveLink: "https://www.sandbox.paypal.com/checkoutnow?token=" + id,
	}, nil
}

func (f *fakeOrderClient) CaptureOrder(_ context.Context, _ string) error {
	f.captureCalls++
	return f.captureErr
}

func newPaymentService(db *gorm.DB, orders *fakeOrderClient) service.PaymentService {
	return service.NewPaymentService(repository.NewPGTransactionRepository(db), orders)
}

func TestCreateOrderRecordsPendingTransaction(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db, &fakeOrderClient{})
	ctx := context.Background()

	user := seedUser(t, db, "uma@example.com")

	result, err := svc.CreateOrder(ctx, user, "starter")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if result.Amount != "5.00" {
		t.Errorf("expected amount 5.00, got %q", result.Amount)
	}
	if result.ApproveLink == "" {
		t.Error("expected an approve link")
	}

	var txn model.Transaction
	if err := db.First(&txn, "paypal_order_id = ?", result.OrderID).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if txn.Status != model.TransactionPending {
		t.Errorf("expected pending status, got %q", txn.Status)
	}
	if txn.UserID != user.ID {
		t.Errorf("transaction owner mismatch: %s", txn.UserID)
	}
	if txn.Metadata.Credits() != 50 {
		t.Errorf("expected 50 credits in metadata, got %d", txn.Metadata.Credits())
	}
}

func TestCreateOrderInvalidPlan(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db, &fakeOrderClient{})

	user := seedUser(t, db, "vera@example.com")
	if _, err := svc.CreateOrder(context.Background(), user, "enterprise"); !errors.Is(err, service.ErrInvalidPlan) {
		t.Fatalf("expected ErrInvalidPlan, got %v", err)
	}
}

func TestCaptureCompletesExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	orders := &fakeOrderClient{}
	svc := newPaymentService(db, orders)
	ctx := context.Background()

	user := seedUser(t, db, "walt@example.com")
	before := user.Credits

	order, err := svc.CreateOrder(ctx, user, "standard")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	result, err := svc.CaptureOrder(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if result.CreditsAdded != 100 {
		t.Errorf("expected 100 credits added, got %d", result.CreditsAdded)
	}
	if result.Status != string(model.TransactionCompleted) {
		t.Errorf("expected completed status, got %q", result.Status)
	}

	reloaded := reloadUser(t, db, user.ID)
	if reloaded.Credits != before+100 {
		t.Errorf("expected credits %d, got %d", before+100, reloaded.Credits)
	}
	if reloaded.Plan != model.PlanStandard {
		t.Errorf("expected standard plan, got %q", reloaded.Plan)
	}
	if reloaded.SubscriptionStatus != model.SubscriptionActive {
		t.Errorf("expected active subscription, got %q", reloaded.SubscriptionStatus)
	}
	if reloaded.SubscriptionExpiresAt == nil {
		t.Error("expected a subscription expiry")
	}

	// A replayed capture must not grant credits again.
	if _, err := svc.CaptureOrder(ctx, order.OrderID); !errors.Is(err, service.ErrAlreadyCaptured) {
		t.Fatalf("expected ErrAlreadyCaptured, got %v", err)
	}
	if got := reloadUser(t, db, user.ID).Credits; got != before+100 {
		t.Errorf("replay changed the balance: %d", got)
	}
}

func TestCaptureUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(db, &fakeOrderClient{})

	if _, err := svc.CaptureOrder(context.Background(), "ORDER-MISSING"); !errors.Is(err, service.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestCaptureProviderRejection(t *testing.T) {
	db := newTestDB(t)
	orders := &fakeOrderClient{captureErr: &paypal.Error{StatusCode: 422, Message: "ORDER_NOT_APPROVED"}}
	svc := newPaymentService(db, orders)
	ctx := context.Background()

	user := seedUser(t, db, "xena@example.com")
	before := user.Credits

	order, err := svc.CreateOrder(ctx, user, "premium")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = svc.CaptureOrder(ctx, order.OrderID)
	var provErr *paypal.Error
	if !errors.As(err, &provErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if got := reloadUser(t, db, user.ID).Credits; got != before {
		t.Errorf("rejected capture changed the balance: %d", got)
	}
}
