package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"bookly/config"
	requestRepoPkg "bookly/database/repository/request"
)

// PaymentHandler creates Stripe payment intents for booking deposits.
type PaymentHandler struct {
	Requests requestRepoPkg.RequestRepository
	Logger   *zap.Logger
}

func NewPaymentHandler(requests requestRepoPkg.RequestRepository, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Requests: requests, Logger: logger}
}

// CreateDepositIntentHandler creates a PaymentIntent for the deposit of a
// pending request. Responds 501 until a Stripe key is configured.
func (h *PaymentHandler) CreateDepositIntentHandler(c *gin.Context) {
	if config.AppConfig.StripeKey == "" {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Stripe not configured"})
		return
	}

	var input struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	id := strings.TrimSpace(input.ID)
	if id == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing request id"})
		return
	}

	req, err := h.Requests.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load request", "details": err.Error()})
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}
	if req.DepositAmount <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No deposit due for this request"})
		return
	}

	currency := strings.ToLower(strings.TrimSpace(req.DepositCurrency))
	if currency == "" {
		currency = "cad"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(req.DepositAmount) * 100),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("request_id", req.ID)
	params.AddMetadata("customer_email", req.Email)

	intent, err := paymentintent.New(params)
	if err != nil {
		h.Logger.Error("stripe payment intent failed", zap.String("request_id", req.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"client_secret": intent.ClientSecret,
		"amount":        req.DepositAmount,
		"currency":      strings.ToUpper(currency),
	})
}
