package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
)

// TransactionMetadata is a JSON blob stored in the metadata column.
type TransactionMetadata map[string]interface{}

func (m TransactionMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *TransactionMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, isStr := value.(string); isStr {
			bytes = []byte(s)
		} else {
			return errors.New("TransactionMetadata.Scan: type assertion to []byte failed")
		}
	}
	return json.Unmarshal(bytes, m)
}

// Credits reads the credit grant recorded at order creation.
func (m TransactionMetadata) Credits() int {
	v, ok := m["credits"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

type Transaction struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        string              `gorm:"type:varchar(16);not null" json:"amount"`
	Currency      string              `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`
	Status        TransactionStatus   `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	PaymentMethod string              `gorm:"type:varchar(32);not null;default:'paypal'" json:"payment_method"`
	PayPalOrderID string              `gorm:"column:paypal_order_id;type:varchar(64);uniqueIndex;not null" json:"paypal_order_id"`
	Plan          string              `gorm:"type:varchar(32);not null" json:"plan"`
	Metadata      TransactionMetadata `gorm:"type:jsonb" json:"metadata,omitempty"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
