package api

import (
	"net/http"

	reqdto "accept-broker/internal/handler/dto/request"
	resdto "accept-broker/internal/handler/dto/response"
	"accept-broker/internal/handler/httperr"
	"accept-broker/internal/handler/validation"
	"accept-broker/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	cmds commands.BrokerCommands
}

func NewPaymentHandler(cmds commands.BrokerCommands) *PaymentHandler {
	return &PaymentHandler{cmds: cmds}
}

// @Summary Charge customer profile
// @Description Charge a stored payment profile; the default one is used when none is given
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.ChargeCustomerProfileRequest true "Charge request"
// @Success 200 {object} resdto.ChargeResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /charge-customer-profile [post]
func (h *PaymentHandler) ChargeCustomerProfile(c *gin.Context) {
	var req reqdto.ChargeCustomerProfileRequest
	if fields, err := validation.BindJSON(c, &req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", fields)
		return
	}
	result, err := h.cmds.ChargeCustomerProfile(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err, req.Debug.Debug)
		return
	}
	c.JSON(http.StatusOK, resdto.FromChargeResult(result, req.Debug.Debug))
}

// @Summary Process Accept.js payment
// @Description Authorize and capture using opaque payment data from Accept.js
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.ProcessPaymentRequest true "Opaque payment"
// @Success 200 {object} resdto.ChargeResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /process-payment [post]
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req reqdto.ProcessPaymentRequest
	if fields, err := validation.BindJSON(c, &req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", fields)
		return
	}
	result, err := h.cmds.ProcessPayment(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err, req.Debug.Debug)
		return
	}
	c.JSON(http.StatusOK, resdto.FromChargeResult(result, req.Debug.Debug))
}
