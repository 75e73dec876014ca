package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	reqdto "rentmart/internal/handler/dto/request"
	resdto "rentmart/internal/handler/dto/response"
	"rentmart/internal/handler/middleware"
	"rentmart/internal/pkg/errs"
	"rentmart/internal/usecase/commands"
	"rentmart/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const webhookSignatureHeader = "x-paystack-signature"

type PaymentHandler struct {
	paymentCommands    commands.PaymentCommands
	transactionQueries queries.TransactionQueries
	gateway            commands.PaymentGateway
}

func NewPaymentHandler(
	paymentCommands commands.PaymentCommands,
	transactionQueries queries.TransactionQueries,
	gateway commands.PaymentGateway,
) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands:    paymentCommands,
		transactionQueries: transactionQueries,
		gateway:            gateway,
	}
}

// @Summary Initialize payment
// @Description Open a hosted checkout session for a pending rental
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.InitializePaymentRequest true "Rental to pay for"
// @Success 200 {object} resdto.InitializePaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payments/initialize [post]
func (h *PaymentHandler) InitializePayment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "error": "Invalid request format",
		})
		return
	}

	result, err := h.paymentCommands.InitializePayment(c.Request.Context(), actor, req.RentalID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRentalNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false, "error": "Rental not found",
			})
		case errors.Is(err, errs.ErrNotRentalParty):
			c.JSON(http.StatusForbidden, gin.H{
				"success": false, "error": "Not a party to this rental",
			})
		case errors.Is(err, errs.ErrRentalNotPayable):
			c.JSON(http.StatusConflict, gin.H{
				"success": false, "error": "Rental is not awaiting payment",
			})
		case errors.Is(err, errs.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{
				"success": false, "error": "Payment gateway unavailable, try again",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false, "error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromInitializePaymentResult(result))
}

// Webhook receives gateway events. Every parseable, authentic delivery is
// acknowledged with 200 so the gateway stops retrying, even when settlement
// resolves to a conflict or rejection; only a settlement that could not run
// at all answers non-2xx. A bad signature is rejected before any body
// content is trusted.
//
// @Summary Payment webhook
// @Description Receive charge events from the payment gateway
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "error": "Unreadable body",
		})
		return
	}

	signature := c.GetHeader(webhookSignatureHeader)
	if !h.gateway.VerifyWebhookSignature(signature, body) {
		slog.Warn("webhook signature verification failed", "client_ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false, "error": "Invalid signature",
		})
		return
	}

	var event reqdto.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "error": "Invalid event payload",
		})
		return
	}

	if event.Event != "charge.success" || event.Data.Reference == "" {
		// Unhandled event types are acknowledged and ignored.
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ignored"})
		return
	}

	outcome, err := h.paymentCommands.SettleTransaction(c.Request.Context(), event.Data.Reference)
	if err != nil {
		// Settlement could not run (gateway or DB down). A non-2xx answer
		// makes the gateway redeliver later, which is what we want.
		slog.Error("webhook settlement failed",
			"reference", event.Data.Reference,
			"error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "error": "Settlement failed",
		})
		return
	}

	slog.Info("webhook settlement processed",
		"reference", event.Data.Reference,
		"outcome", string(outcome))
	c.JSON(http.StatusOK, gin.H{"success": true, "status": string(outcome)})
}

// @Summary Verify payment
// @Description Settle and report a transaction after checkout redirect
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Gateway reference"
// @Success 200 {object} resdto.VerifyPaymentResponse
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payments/verify/{reference} [get]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Reference required",
		})
		return
	}

	outcome, err := h.paymentCommands.SettleTransaction(c.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, errs.ErrGatewayUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment gateway unavailable, try again",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	if outcome == commands.SettlementUnmatched {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Transaction not found",
		})
		return
	}

	response := resdto.VerifyPaymentResponse{Outcome: string(outcome)}
	if view, viewErr := h.transactionQueries.GetByReference(c.Request.Context(), reference); viewErr == nil {
		response.Transaction = resdto.FromTransactionView(view)
	}

	c.JSON(http.StatusOK, response)
}
