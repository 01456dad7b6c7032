package payments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mwangea/RentalApartmentsBackend/authz"
	"github.com/Mwangea/RentalApartmentsBackend/handlers/auth"
	"github.com/Mwangea/RentalApartmentsBackend/models"
	"github.com/Mwangea/RentalApartmentsBackend/services"
)

// API exposes the payment endpoints over the orchestrator.
type API struct {
	orchestrator *services.PaymentOrchestrator
}

func NewAPI(orchestrator *services.PaymentOrchestrator) *API {
	return &API{orchestrator: orchestrator}
}

// RegisterRoutes mounts the authenticated payment endpoints.
func (a *API) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/initiate-mpesa-payment", a.InitiateMpesaPayment)
	r.POST("/cash-payments", a.InitiateCashPayment)
	r.GET("/payments", a.GetPayments)
}

// RegisterCallbackRoute mounts the unauthenticated provider callback.
func (a *API) RegisterCallbackRoute(r *gin.Engine) {
	r.POST("/mpesa/callback", a.MpesaCallback)
}

type mpesaPaymentRequest struct {
	LeaseID     uint    `json:"lease_id"`
	PropertyID  uint    `json:"property_id"`
	Amount      float64 `json:"amount"`
	PhoneNumber string  `json:"phone_number"`
}

type cashPaymentRequest struct {
	LeaseID    uint    `json:"lease_id"`
	PropertyID uint    `json:"property_id"`
	TenantID   string  `json:"tenant_id"`
	Amount     float64 `json:"amount"`
}

func (a *API) InitiateMpesaPayment(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	if !authz.Can(authz.ActorFromUser(user), authz.ResourcePayment, authz.ActionCreate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to initiate payments"})
		return
	}

	var req mpesaPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	result, err := a.orchestrator.InitiateMpesa(c.Request.Context(),
		req.LeaseID, req.PropertyID, user.ID, req.Amount, req.PhoneNumber)
	if err != nil {
		status, message := initiationFailure(err)
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (a *API) InitiateCashPayment(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	if !authz.Can(authz.ActorFromUser(user), authz.ResourcePayment, authz.ActionCreate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to record payments"})
		return
	}

	var req cashPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	// Tenants record their own cash payments; admins and landlords may record
	// a receipt on a tenant's behalf.
	tenantID := user.ID
	if req.TenantID != "" && user.Role != models.RoleTenant {
		tenantID = req.TenantID
	}

	result, err := a.orchestrator.InitiateCash(c.Request.Context(),
		req.LeaseID, req.PropertyID, tenantID, req.Amount)
	if err != nil {
		status, message := initiationFailure(err)
		c.JSON(status, gin.H{"success": false, "message": message})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (a *API) GetPayments(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return
	}

	payments, err := a.orchestrator.ListPayments(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// stkCallbackEnvelope mirrors the Daraja callback body. The receipt number
// arrives as a metadata item named MpesaReceiptNumber.
type stkCallbackEnvelope struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

func (e *stkCallbackEnvelope) receiptNumber() string {
	for _, item := range e.Body.StkCallback.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			if receipt, ok := item.Value.(string); ok {
				return receipt
			}
		}
	}
	return ""
}

// MpesaCallback receives the asynchronous settlement result from Safaricom.
// The provider delivers at-least-once; idempotency is handled downstream.
func (a *API) MpesaCallback(c *gin.Context) {
	var envelope stkCallbackEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ResultCode": 1, "ResultDesc": "Invalid callback payload"})
		return
	}

	callback := envelope.Body.StkCallback
	if callback.CheckoutRequestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ResultCode": 1, "ResultDesc": "Missing CheckoutRequestID"})
		return
	}

	handled := a.orchestrator.HandleCallback(c.Request.Context(),
		callback.CheckoutRequestID, callback.ResultCode, envelope.receiptNumber())
	if !handled {
		c.JSON(http.StatusOK, gin.H{"ResultCode": 1, "ResultDesc": "Record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
}

func initiationFailure(err error) (int, string) {
	if errors.Is(err, services.ErrValidation) {
		return http.StatusBadRequest, err.Error()
	}
	// Auth and gateway failures with the provider surface as a business
	// failure to the caller; retrying is a new, independent attempt.
	return http.StatusBadGateway, "Payment initiation failed. Please try again."
}
