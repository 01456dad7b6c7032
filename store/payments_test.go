package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mwangea/RentalApartmentsBackend/models"
)

func pendingPayment(ref string) *models.Payment {
	return &models.Payment{
		LeaseID:           1,
		PropertyID:        1,
		TenantID:          "t1",
		Amount:            5000,
		Method:            models.PaymentMethodMobileMoney,
		CheckoutRequestID: ref,
		Status:            models.PaymentStatusPending,
	}
}

func TestFindByReference(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPaymentStore()

	require.NoError(t, s.Create(ctx, pendingPayment("ws_CO_123")))

	found, err := s.FindByReference(ctx, "ws_CO_123")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPending, found.Status)

	_, err = s.FindByReference(ctx, "ws_CO_999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCompletePendingWinsOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPaymentStore()
	require.NoError(t, s.Create(ctx, pendingPayment("ws_CO_123")))

	won, err := s.CompletePending(ctx, "ws_CO_123", "QCI12345")
	require.NoError(t, err)
	require.True(t, won)

	// Replay of the same callback must be a no-op.
	won, err = s.CompletePending(ctx, "ws_CO_123", "QCI12345")
	require.NoError(t, err)
	require.False(t, won)

	payment, err := s.FindByReference(ctx, "ws_CO_123")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusCompleted, payment.Status)
	require.Equal(t, "QCI12345", payment.MpesaReceiptNumber)
	require.NotNil(t, payment.LastUpdated)
}

func TestFailPendingLeavesReceiptEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPaymentStore()
	require.NoError(t, s.Create(ctx, pendingPayment("ws_CO_123")))

	won, err := s.FailPending(ctx, "ws_CO_123")
	require.NoError(t, err)
	require.True(t, won)

	// A success callback arriving after the failure must not resurrect the row.
	won, err = s.CompletePending(ctx, "ws_CO_123", "QCI12345")
	require.NoError(t, err)
	require.False(t, won)

	payment, err := s.FindByReference(ctx, "ws_CO_123")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusFailed, payment.Status)
	require.Empty(t, payment.MpesaReceiptNumber)
}

func TestConcurrentCallbacksSingleWinner(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPaymentStore()
	require.NoError(t, s.Create(ctx, pendingPayment("ws_CO_123")))

	const attempts = 32
	var wg sync.WaitGroup
	wins := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := s.CompletePending(ctx, "ws_CO_123", "QCI12345")
			require.NoError(t, err)
			wins <- won
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for won := range wins {
		if won {
			winners++
		}
	}
	require.Equal(t, 1, winners)
}

func TestListByTenant(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPaymentStore()
	require.NoError(t, s.Create(ctx, pendingPayment("ws_CO_1")))
	require.NoError(t, s.Create(ctx, pendingPayment("ws_CO_2")))

	other := pendingPayment("ws_CO_3")
	other.TenantID = "t2"
	require.NoError(t, s.Create(ctx, other))

	payments, err := s.ListByTenant(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, payments, 2)
}
