package store

import (
	"context"
	"sync"
	"time"

	"github.com/Mwangea/RentalApartmentsBackend/models"
)

// MemoryPaymentStore is an in-memory PaymentStore used in tests and local
// development, mirroring the CAS semantics of the database-backed store.
type MemoryPaymentStore struct {
	mu       sync.Mutex
	nextID   uint
	payments map[string]*models.Payment
}

func NewMemoryPaymentStore() *MemoryPaymentStore {
	return &MemoryPaymentStore{payments: make(map[string]*models.Payment)}
}

func (s *MemoryPaymentStore) Create(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	payment.ID = s.nextID
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}

	stored := *payment
	s.payments[payment.CheckoutRequestID] = &stored
	return nil
}

func (s *MemoryPaymentStore) FindByReference(_ context.Context, checkoutRequestID string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[checkoutRequestID]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *payment
	return &copied, nil
}

func (s *MemoryPaymentStore) CompletePending(_ context.Context, checkoutRequestID, receiptNumber string) (bool, error) {
	return s.transition(checkoutRequestID, models.PaymentStatusCompleted, receiptNumber)
}

func (s *MemoryPaymentStore) FailPending(_ context.Context, checkoutRequestID string) (bool, error) {
	return s.transition(checkoutRequestID, models.PaymentStatusFailed, "")
}

func (s *MemoryPaymentStore) transition(checkoutRequestID, status, receiptNumber string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[checkoutRequestID]
	if !ok || payment.Status != models.PaymentStatusPending {
		return false, nil
	}

	now := time.Now()
	payment.Status = status
	payment.LastUpdated = &now
	if receiptNumber != "" {
		payment.MpesaReceiptNumber = receiptNumber
	}
	return true, nil
}

func (s *MemoryPaymentStore) ListByTenant(_ context.Context, tenantID string) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []models.Payment
	for _, p := range s.payments {
		if p.TenantID == tenantID {
			payments = append(payments, *p)
		}
	}
	return payments, nil
}

// MemoryDirectory is a fixed recipient directory for tests.
type MemoryDirectory struct {
	Owners map[uint]string
	Admins []string
}

func (d *MemoryDirectory) OwnerOfProperty(_ context.Context, propertyID uint) (string, error) {
	owner, ok := d.Owners[propertyID]
	if !ok {
		return "", ErrNotFound
	}
	return owner, nil
}

func (d *MemoryDirectory) AdminIDs(_ context.Context) ([]string, error) {
	return d.Admins, nil
}
