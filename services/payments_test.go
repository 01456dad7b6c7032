package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/mpesa"
	"github.com/Mwangea/RentalApartmentsBackend/store"
)

type fakeGateway struct {
	tokenErr   error
	pushErr    error
	checkoutID string
	pushCalls  int
}

func (g *fakeGateway) GetAccessToken(_ context.Context) (string, error) {
	if g.tokenErr != nil {
		return "", g.tokenErr
	}
	return "token-123", nil
}

func (g *fakeGateway) SubmitPushPayment(_ context.Context, _ int64, _, _, _ string) (*mpesa.STKPushResponse, error) {
	g.pushCalls++
	if g.pushErr != nil {
		return nil, g.pushErr
	}
	return &mpesa.STKPushResponse{
		CheckoutRequestID: g.checkoutID,
		CustomerMessage:   "Success. Request accepted for processing",
	}, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []string
	fail  map[string]bool
	calls int
}

func (n *recordingNotifier) Notify(_ context.Context, userID, _, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.fail[userID] {
		return errors.New("delivery failed")
	}
	n.sent = append(n.sent, userID)
	return nil
}

func newOrchestrator(gateway *fakeGateway) (*PaymentOrchestrator, *store.MemoryPaymentStore, *recordingNotifier) {
	paymentStore := store.NewMemoryPaymentStore()
	dir := &store.MemoryDirectory{
		Owners: map[uint]string{1: "landlord-1"},
		Admins: []string{"admin-1", "admin-2"},
	}
	notifier := &recordingNotifier{fail: map[string]bool{}}
	return NewPaymentOrchestrator(gateway, paymentStore, dir, notifier), paymentStore, notifier
}

func TestInitiateMpesaThenSuccessCallback(t *testing.T) {
	ctx := context.Background()
	orc, paymentStore, notifier := newOrchestrator(&fakeGateway{checkoutID: "ws_CO_123"})

	result, err := orc.InitiateMpesa(ctx, 1, 1, "t1", 5000, "254712345678")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "ws_CO_123", result.CheckoutRequestID)

	payment, err := paymentStore.FindByReference(ctx, "ws_CO_123")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPending, payment.Status)
	require.Empty(t, notifier.sent)

	require.True(t, orc.HandleCallback(ctx, "ws_CO_123", 0, "QCI12345"))

	payment, err = paymentStore.FindByReference(ctx, "ws_CO_123")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusCompleted, payment.Status)
	require.Equal(t, "QCI12345", payment.MpesaReceiptNumber)

	// Tenant, landlord and both admins each get exactly one notification.
	require.ElementsMatch(t, []string{"t1", "landlord-1", "admin-1", "admin-2"}, notifier.sent)
}

func TestFailureCallbackLeavesReceiptEmpty(t *testing.T) {
	ctx := context.Background()
	orc, paymentStore, notifier := newOrchestrator(&fakeGateway{checkoutID: "ws_CO_123"})

	_, err := orc.InitiateMpesa(ctx, 1, 1, "t1", 5000, "254712345678")
	require.NoError(t, err)

	require.True(t, orc.HandleCallback(ctx, "ws_CO_123", 1032, ""))

	payment, err := paymentStore.FindByReference(ctx, "ws_CO_123")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusFailed, payment.Status)
	require.Empty(t, payment.MpesaReceiptNumber)
	require.Empty(t, notifier.sent)
}

func TestDuplicateCallbackNotifiesOnce(t *testing.T) {
	ctx := context.Background()
	orc, paymentStore, notifier := newOrchestrator(&fakeGateway{checkoutID: "ws_CO_123"})

	_, err := orc.InitiateMpesa(ctx, 1, 1, "t1", 5000, "254712345678")
	require.NoError(t, err)

	require.True(t, orc.HandleCallback(ctx, "ws_CO_123", 0, "QCI12345"))
	firstFanOut := notifier.calls

	// The provider delivers at-least-once; a replay is accepted but changes nothing.
	require.True(t, orc.HandleCallback(ctx, "ws_CO_123", 0, "QCI12345"))
	require.Equal(t, firstFanOut, notifier.calls)

	payment, err := paymentStore.FindByReference(ctx, "ws_CO_123")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusCompleted, payment.Status)
}

func TestCallbackUnknownReference(t *testing.T) {
	ctx := context.Background()
	orc, _, notifier := newOrchestrator(&fakeGateway{checkoutID: "ws_CO_123"})

	require.False(t, orc.HandleCallback(ctx, "ws_CO_999", 0, "QCI12345"))
	require.Empty(t, notifier.sent)
}

func TestInitiateMpesaValidation(t *testing.T) {
	ctx := context.Background()
	gateway := &fakeGateway{checkoutID: "ws_CO_123"}
	orc, _, _ := newOrchestrator(gateway)

	_, err := orc.InitiateMpesa(ctx, 1, 1, "t1", 0, "254712345678")
	require.ErrorIs(t, err, ErrValidation)

	_, err = orc.InitiateMpesa(ctx, 1, 1, "t1", -50, "254712345678")
	require.ErrorIs(t, err, ErrValidation)

	_, err = orc.InitiateMpesa(ctx, 1, 1, "t1", 5000, "0712345678")
	require.ErrorIs(t, err, ErrValidation)

	// Fractional shillings would charge a different amount than recorded.
	_, err = orc.InitiateMpesa(ctx, 1, 1, "t1", 5000.50, "254712345678")
	require.ErrorIs(t, err, ErrValidation)

	// Validation failures never reach the provider.
	require.Zero(t, gateway.pushCalls)
}

func TestInitiateMpesaAuthFailurePersistsNothing(t *testing.T) {
	ctx := context.Background()
	gateway := &fakeGateway{tokenErr: mpesa.ErrAuth}
	orc, paymentStore, _ := newOrchestrator(gateway)

	_, err := orc.InitiateMpesa(ctx, 1, 1, "t1", 5000, "254712345678")
	require.ErrorIs(t, err, mpesa.ErrAuth)
	require.Zero(t, gateway.pushCalls)

	payments, err := paymentStore.ListByTenant(ctx, "t1")
	require.NoError(t, err)
	require.Empty(t, payments)
}

func TestInitiateMpesaPushFailurePersistsNothing(t *testing.T) {
	ctx := context.Background()
	orc, paymentStore, _ := newOrchestrator(&fakeGateway{pushErr: mpesa.ErrGateway})

	_, err := orc.InitiateMpesa(ctx, 1, 1, "t1", 5000, "254712345678")
	require.ErrorIs(t, err, mpesa.ErrGateway)

	payments, err := paymentStore.ListByTenant(ctx, "t1")
	require.NoError(t, err)
	require.Empty(t, payments)
}

func TestInitiateCash(t *testing.T) {
	ctx := context.Background()
	orc, paymentStore, notifier := newOrchestrator(&fakeGateway{})

	references := make(map[string]bool)
	for i := 0; i < 3; i++ {
		result, err := orc.InitiateCash(ctx, 1, 1, "t1", 12000)
		require.NoError(t, err)
		require.True(t, result.Success)
		require.False(t, references[result.CheckoutRequestID], "references must be unique")
		references[result.CheckoutRequestID] = true

		payment, err := paymentStore.FindByReference(ctx, result.CheckoutRequestID)
		require.NoError(t, err)
		require.Equal(t, models.PaymentStatusCompleted, payment.Status)
		require.Equal(t, models.PaymentMethodCash, payment.Method)
		require.NotEmpty(t, payment.MpesaReceiptNumber)
	}

	// Identical lease/amount still yields independent attempts.
	payments, err := paymentStore.ListByTenant(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, payments, 3)

	// Each settlement fanned out to tenant + landlord + two admins.
	require.Equal(t, 12, notifier.calls)
}

func TestFanOutFailureDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	orc, paymentStore, notifier := newOrchestrator(&fakeGateway{checkoutID: "ws_CO_123"})
	notifier.fail["landlord-1"] = true

	_, err := orc.InitiateMpesa(ctx, 1, 1, "t1", 5000, "254712345678")
	require.NoError(t, err)
	require.True(t, orc.HandleCallback(ctx, "ws_CO_123", 0, "QCI12345"))

	// Landlord delivery failed but tenant and admins still got theirs,
	// and the payment stayed Completed.
	require.ElementsMatch(t, []string{"t1", "admin-1", "admin-2"}, notifier.sent)

	payment, err := paymentStore.FindByReference(ctx, "ws_CO_123")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusCompleted, payment.Status)
}

func TestFanOutOwnerLookupFailureDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	paymentStore := store.NewMemoryPaymentStore()
	dir := &store.MemoryDirectory{Owners: map[uint]string{}, Admins: []string{"admin-1"}}
	notifier := &recordingNotifier{fail: map[string]bool{}}
	orc := NewPaymentOrchestrator(&fakeGateway{checkoutID: "ws_CO_123"}, paymentStore, dir, notifier)

	_, err := orc.InitiateMpesa(ctx, 1, 99, "t1", 5000, "254712345678")
	require.NoError(t, err)
	require.True(t, orc.HandleCallback(ctx, "ws_CO_123", 0, "QCI12345"))

	require.ElementsMatch(t, []string{"t1", "admin-1"}, notifier.sent)
}
