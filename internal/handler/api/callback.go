package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"accept-broker/internal/domain/transaction"
	resdto "accept-broker/internal/handler/dto/response"
	"accept-broker/internal/handler/httperr"
	"accept-broker/internal/infra/authnet"
	"accept-broker/internal/pkg/config"
	"accept-broker/internal/pkg/errs"
	"accept-broker/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	// maxWebhookBody bounds the raw body read for signature verification.
	maxWebhookBody  = 1 << 20
	fallbackMessage = "The payment could not be completed"
)

type CallbackHandler struct {
	cmds          commands.ReconcileCommands
	resultViewURL string
	logger        *slog.Logger
}

func NewCallbackHandler(cmds commands.ReconcileCommands, cfg config.BrokerConfig, logger *slog.Logger) *CallbackHandler {
	return &CallbackHandler{cmds: cmds, resultViewURL: cfg.ResultViewURL, logger: logger}
}

// @Summary Hosted page return
// @Description Reconciles the gateway redirect and forwards the browser to the result view
// @Tags callbacks
// @Param transId query string false "Gateway transaction ID"
// @Param responseCode query string false "1 approved, 2 declined, other error"
// @Param refId query string false "Correlation reference ID"
// @Param cancelled query bool false "Customer cancelled on the hosted page"
// @Success 302
// @Router / [get]
func (h *CallbackHandler) Return(c *gin.Context) {
	query := c.Request.URL.Query()
	raw := make(map[string]string, len(query))
	for k := range query {
		raw[k] = query.Get(k)
	}

	out := h.cmds.ReconcileReturn(c.Request.Context(), commands.ReturnParams{
		Cancelled:                strings.EqualFold(query.Get("cancelled"), "true"),
		TransactionID:            query.Get("transId"),
		ResponseCode:             query.Get("responseCode"),
		ResponseReasonText:       query.Get("responseReasonText"),
		AuthCode:                 query.Get("authCode"),
		Amount:                   query.Get("amount"),
		AccountNumber:            query.Get("accountNumber"),
		AccountType:              query.Get("accountType"),
		CustomerProfileID:        query.Get("customerProfileId"),
		CustomerPaymentProfileID: query.Get("customerPaymentProfileId"),
		ReferenceID:              query.Get("refId"),
		Raw:                      raw,
	})

	c.Redirect(http.StatusFound, h.resultURL(out))
}

// FallbackURL is the error result view used when the return handler cannot
// produce an outcome at all.
func (h *CallbackHandler) FallbackURL() string {
	return h.resultURL(commands.ReturnOutcome{Status: transaction.StatusError, Message: fallbackMessage})
}

// resultURL merges the outcome into the configured result view's query string.
func (h *CallbackHandler) resultURL(out commands.ReturnOutcome) string {
	u, err := url.Parse(h.resultViewURL)
	if err != nil {
		h.logger.Error("invalid result view url, redirecting to root", "url", h.resultViewURL, "error", err)
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	q.Set("status", out.Status.String())
	for k, v := range map[string]string{
		"transactionId": out.TransactionID,
		"authCode":      out.AuthCode,
		"amount":        out.Amount,
		"accountNumber": out.AccountNumber,
		"accountType":   out.AccountType,
		"refId":         out.ReferenceID,
		"message":       out.Message,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// @Summary Gateway webhook
// @Description Signed event notification; verified with HMAC-SHA512 over the raw body
// @Tags callbacks
// @Accept json
// @Produce json
// @Param X-ANET-Signature header string true "sha512=<hex>"
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /webhooks/authorizenet [post]
func (h *CallbackHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrValidation), httperr.CodeValidation, "Unreadable request body", nil)
		return
	}
	result, err := h.cmds.HandleWebhook(c.Request.Context(), commands.WebhookInput{
		Body:      body,
		Signature: c.GetHeader(authnet.SignatureHeader),
	})
	if err != nil {
		httperr.Abort(c, err, false)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWebhookResult(result))
}
