package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Mwangea/RentalApartmentsBackend/models"
)

var ErrNotFound = errors.New("store: record not found")

// PaymentStore is the durable record of payment attempts, keyed by the
// provider-issued checkout reference. The Pending-to-terminal transition is a
// compare-and-set: when the provider delivers the same callback more than
// once, exactly one caller wins the transition and the rest observe a no-op.
type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByReference(ctx context.Context, checkoutRequestID string) (*models.Payment, error)
	CompletePending(ctx context.Context, checkoutRequestID, receiptNumber string) (bool, error)
	FailPending(ctx context.Context, checkoutRequestID string) (bool, error)
	ListByTenant(ctx context.Context, tenantID string) ([]models.Payment, error)
}

// Directory resolves the recipients of payment notifications. The lookups are
// read-only against data owned by the property and account modules.
type Directory interface {
	OwnerOfProperty(ctx context.Context, propertyID uint) (string, error)
	AdminIDs(ctx context.Context) ([]string, error)
}

type GormPaymentStore struct {
	db *gorm.DB
}

func NewGormPaymentStore(db *gorm.DB) *GormPaymentStore {
	return &GormPaymentStore{db: db}
}

func (s *GormPaymentStore) Create(ctx context.Context, payment *models.Payment) error {
	return s.db.WithContext(ctx).Create(payment).Error
}

func (s *GormPaymentStore) FindByReference(ctx context.Context, checkoutRequestID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).
		Where("checkout_request_id = ?", checkoutRequestID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (s *GormPaymentStore) CompletePending(ctx context.Context, checkoutRequestID, receiptNumber string) (bool, error) {
	return s.transition(ctx, checkoutRequestID, models.PaymentStatusCompleted, receiptNumber)
}

func (s *GormPaymentStore) FailPending(ctx context.Context, checkoutRequestID string) (bool, error) {
	return s.transition(ctx, checkoutRequestID, models.PaymentStatusFailed, "")
}

// transition flips a Pending row to a terminal status. The status guard in the
// WHERE clause serializes concurrent duplicate callbacks for the same
// reference: only one UPDATE reports an affected row.
func (s *GormPaymentStore) transition(ctx context.Context, checkoutRequestID, status, receiptNumber string) (bool, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":       status,
		"last_updated": &now,
	}
	if receiptNumber != "" {
		updates["mpesa_receipt_number"] = receiptNumber
	}

	result := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("checkout_request_id = ? AND status = ?", checkoutRequestID, models.PaymentStatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *GormPaymentStore) ListByTenant(ctx context.Context, tenantID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) OwnerOfProperty(ctx context.Context, propertyID uint) (string, error) {
	var property models.Property
	err := d.db.WithContext(ctx).First(&property, propertyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return property.LandlordID, nil
}

func (d *GormDirectory) AdminIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := d.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Pluck("id", &ids).Error
	return ids, err
}
