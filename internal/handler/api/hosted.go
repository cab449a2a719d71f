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

type HostedHandler struct {
	cmds commands.BrokerCommands
}

func NewHostedHandler(cmds commands.BrokerCommands) *HostedHandler {
	return &HostedHandler{cmds: cmds}
}

// @Summary Issue hosted payment token
// @Description Token for the Accept Hosted payment form, for a new or returning customer
// @Tags hosted
// @Accept json
// @Produce json
// @Param request body reqdto.AcceptHostedTokenRequest true "Hosted payment request"
// @Success 200 {object} resdto.HostedTokenResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /accept-hosted-token [post]
func (h *HostedHandler) AcceptHostedToken(c *gin.Context) {
	var req reqdto.AcceptHostedTokenRequest
	if fields, err := validation.BindJSON(c, &req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", fields)
		return
	}
	result, err := h.cmds.IssueHostedPaymentToken(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err, req.Debug.Debug)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHostedTokenResult(result, req.Debug.Debug))
}

// @Summary Issue hosted profile token
// @Description Token for a hosted customer profile page (manage, add or edit payment and shipping)
// @Tags hosted
// @Accept json
// @Produce json
// @Param request body reqdto.HostedProfileTokenRequest true "Hosted profile request"
// @Success 200 {object} resdto.HostedTokenResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /get-hosted-profile-token [post]
func (h *HostedHandler) HostedProfileToken(c *gin.Context) {
	var req reqdto.HostedProfileTokenRequest
	if fields, err := validation.BindJSON(c, &req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", fields)
		return
	}
	result, err := h.cmds.IssueHostedProfileToken(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err, req.Debug.Debug)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHostedTokenResult(result, req.Debug.Debug))
}
