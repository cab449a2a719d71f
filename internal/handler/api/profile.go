package api

import (
	"net/http"

	reqdto "accept-broker/internal/handler/dto/request"
	resdto "accept-broker/internal/handler/dto/response"
	"accept-broker/internal/handler/httperr"
	"accept-broker/internal/handler/validation"
	"accept-broker/internal/usecase/commands"
	"accept-broker/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	cmds commands.BrokerCommands
	q    queries.ProfileQueries
}

func NewProfileHandler(cmds commands.BrokerCommands, q queries.ProfileQueries) *ProfileHandler {
	return &ProfileHandler{cmds: cmds, q: q}
}

// @Summary Create customer profile
// @Description Create a gateway customer profile and remember it locally by email
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body reqdto.CreateCustomerProfileRequest true "Customer info"
// @Success 200 {object} resdto.CreateCustomerProfileResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /create-customer-profile [post]
func (h *ProfileHandler) CreateCustomerProfile(c *gin.Context) {
	var req reqdto.CreateCustomerProfileRequest
	if fields, err := validation.BindJSON(c, &req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", fields)
		return
	}
	result, err := h.cmds.CreateCustomerProfile(c.Request.Context(), *req.CustomerInfo.ToInput())
	if err != nil {
		httperr.Abort(c, err, req.Debug.Debug)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCreateProfileResult(result, req.Debug.Debug))
}

// @Summary Get customer profile
// @Description Fetch a gateway customer profile with masked payment profiles and shipping addresses
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body reqdto.GetCustomerProfileRequest true "Profile ID"
// @Success 200 {object} resdto.CustomerProfileResponse
// @Failure 400 {object} httperr.Response
// @Router /get-customer-profile [post]
func (h *ProfileHandler) GetCustomerProfile(c *gin.Context) {
	var req reqdto.GetCustomerProfileRequest
	if fields, err := validation.BindJSON(c, &req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", fields)
		return
	}
	view, err := h.q.GetCustomerProfile(c.Request.Context(), req.CustomerProfileID)
	if err != nil {
		httperr.Abort(c, err, req.Debug.Debug)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProfileView(view, req.Debug.Debug))
}
