package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"

	"github.com/google/uuid"

	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/mpesa"
	"github.com/Mwangea/RentalApartmentsBackend/store"
)

// ErrValidation marks bad input rejected before any I/O happens.
var ErrValidation = errors.New("payments: invalid request")

// Kenyan MSISDN in international format, e.g. 254712345678.
var phonePattern = regexp.MustCompile(`^254[17]\d{8}$`)

// Gateway is the slice of the M-Pesa client the orchestrator depends on.
type Gateway interface {
	GetAccessToken(ctx context.Context) (string, error)
	SubmitPushPayment(ctx context.Context, amount int64, phoneNumber, accountReference, token string) (*mpesa.STKPushResponse, error)
}

// Notifier delivers a notification to a single user. The orchestrator only
// depends on this signature, not on the delivery channel.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message, kind string) error
}

type PaymentResult struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	CheckoutRequestID string `json:"checkout_request_id,omitempty"`
}

// PaymentOrchestrator coordinates the gateway client and the payment store:
// it creates the Pending record during initiation and consumes the provider
// callback to move it to a terminal state.
type PaymentOrchestrator struct {
	gateway  Gateway
	store    store.PaymentStore
	dir      store.Directory
	notifier Notifier
}

func NewPaymentOrchestrator(gateway Gateway, paymentStore store.PaymentStore, dir store.Directory, notifier Notifier) *PaymentOrchestrator {
	return &PaymentOrchestrator{
		gateway:  gateway,
		store:    paymentStore,
		dir:      dir,
		notifier: notifier,
	}
}

// InitiateMpesa pushes a payment prompt to the tenant's phone and records a
// Pending attempt keyed by the provider's CheckoutRequestID. Nothing is
// persisted when the token exchange or the push itself fails, so a failed
// initiation leaves no orphan rows behind.
func (o *PaymentOrchestrator) InitiateMpesa(ctx context.Context, leaseID, propertyID uint, tenantID string, amount float64, phoneNumber string) (*PaymentResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	// M-Pesa takes whole currency units; rejecting fractions here keeps the
	// charged amount identical to the recorded one.
	if amount != math.Trunc(amount) {
		return nil, fmt.Errorf("%w: amount must be a whole number of shillings", ErrValidation)
	}
	if !phonePattern.MatchString(phoneNumber) {
		return nil, fmt.Errorf("%w: phone number must be in the format 2547XXXXXXXX", ErrValidation)
	}

	token, err := o.gateway.GetAccessToken(ctx)
	if err != nil {
		log.Printf("Failed to get access token from M-Pesa: %v", err)
		return nil, err
	}

	resp, err := o.gateway.SubmitPushPayment(ctx, int64(amount), phoneNumber,
		strconv.FormatUint(uint64(leaseID), 10), token)
	if err != nil {
		log.Printf("Payment initiation failed for lease %d: %v", leaseID, err)
		return nil, err
	}

	payment := &models.Payment{
		LeaseID:           leaseID,
		PropertyID:        propertyID,
		TenantID:          tenantID,
		Amount:            amount,
		Method:            models.PaymentMethodMobileMoney,
		PhoneNumber:       phoneNumber,
		CheckoutRequestID: resp.CheckoutRequestID,
		Status:            models.PaymentStatusPending,
	}
	if err := o.store.Create(ctx, payment); err != nil {
		log.Printf("Failed to record pending payment %s: %v", resp.CheckoutRequestID, err)
		return nil, err
	}

	return &PaymentResult{
		Success:           true,
		Message:           resp.CustomerMessage,
		CheckoutRequestID: resp.CheckoutRequestID,
	}, nil
}

// InitiateCash records a cash payment. Cash is settled at the time of entry,
// so the attempt is created Completed under a synthesized reference and the
// settlement notifications go out immediately.
func (o *PaymentOrchestrator) InitiateCash(ctx context.Context, leaseID, propertyID uint, tenantID string, amount float64) (*PaymentResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}

	reference := "CASH-" + uuid.NewString()
	payment := &models.Payment{
		LeaseID:            leaseID,
		PropertyID:         propertyID,
		TenantID:           tenantID,
		Amount:             amount,
		Method:             models.PaymentMethodCash,
		CheckoutRequestID:  reference,
		MpesaReceiptNumber: reference,
		Status:             models.PaymentStatusCompleted,
	}
	if err := o.store.Create(ctx, payment); err != nil {
		return nil, err
	}

	o.fanOutSettled(ctx, payment)

	return &PaymentResult{
		Success:           true,
		Message:           "Cash payment recorded",
		CheckoutRequestID: reference,
	}, nil
}

// HandleCallback applies the provider's settlement result to the matching
// Pending attempt. It returns false when no attempt matches the reference,
// which the callback endpoint reports to the provider as a rejection.
// Duplicate and out-of-order callbacks are accepted without mutating terminal
// state and without re-firing notifications.
func (o *PaymentOrchestrator) HandleCallback(ctx context.Context, checkoutRequestID string, resultCode int, receiptNumber string) bool {
	payment, err := o.store.FindByReference(ctx, checkoutRequestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Possibly an integration bug or a replay from a wiped environment.
			log.Printf("Callback for unknown checkout request %s", checkoutRequestID)
			return false
		}
		log.Printf("Failed to look up payment %s: %v", checkoutRequestID, err)
		return false
	}

	if payment.IsTerminal() {
		log.Printf("Ignoring duplicate callback for %s (already %s)", checkoutRequestID, payment.Status)
		return true
	}

	if resultCode == 0 {
		won, err := o.store.CompletePending(ctx, checkoutRequestID, receiptNumber)
		if err != nil {
			log.Printf("Failed to complete payment %s: %v", checkoutRequestID, err)
			return true
		}
		if won {
			payment.Status = models.PaymentStatusCompleted
			payment.MpesaReceiptNumber = receiptNumber
			o.fanOutSettled(ctx, payment)
		}
		return true
	}

	if _, err := o.store.FailPending(ctx, checkoutRequestID); err != nil {
		log.Printf("Failed to mark payment %s as failed: %v", checkoutRequestID, err)
	}
	return true
}

// ListPayments returns the caller's payment history, newest first.
func (o *PaymentOrchestrator) ListPayments(ctx context.Context, tenantID string) ([]models.Payment, error) {
	return o.store.ListByTenant(ctx, tenantID)
}

// fanOutSettled notifies the tenant, the property owner, and all admins that a
// payment settled. Each recipient is best-effort: a failed lookup or delivery
// is logged and never blocks the others or rolls back the payment.
func (o *PaymentOrchestrator) fanOutSettled(ctx context.Context, payment *models.Payment) {
	title := "Payment Received"
	message := fmt.Sprintf("Payment of KES %.2f for lease %d has been received (receipt %s).",
		payment.Amount, payment.LeaseID, payment.MpesaReceiptNumber)

	if err := o.notifier.Notify(ctx, payment.TenantID, "Payment Successful",
		fmt.Sprintf("Your rent payment of KES %.2f was received. Receipt: %s.", payment.Amount, payment.MpesaReceiptNumber),
		models.NotificationTypePaymentConfirmation); err != nil {
		log.Printf("Failed to notify tenant %s: %v", payment.TenantID, err)
	}

	ownerID, err := o.dir.OwnerOfProperty(ctx, payment.PropertyID)
	if err != nil {
		log.Printf("Failed to resolve owner of property %d: %v", payment.PropertyID, err)
	} else if err := o.notifier.Notify(ctx, ownerID, title, message, models.NotificationTypePaymentConfirmation); err != nil {
		log.Printf("Failed to notify landlord %s: %v", ownerID, err)
	}

	adminIDs, err := o.dir.AdminIDs(ctx)
	if err != nil {
		log.Printf("Failed to resolve admins: %v", err)
		return
	}
	for _, adminID := range adminIDs {
		if err := o.notifier.Notify(ctx, adminID, title, message, models.NotificationTypePaymentConfirmation); err != nil {
			log.Printf("Failed to notify admin %s: %v", adminID, err)
		}
	}
}
