package api

import (
	"net/http"

	resdto "accept-broker/internal/handler/dto/response"
	"accept-broker/internal/handler/httperr"
	"accept-broker/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	q queries.ConfigQueries
}

func NewConfigHandler(q queries.ConfigQueries) *ConfigHandler {
	return &ConfigHandler{q: q}
}

// @Summary Get client auth config
// @Description Public client key, login ID and environment URLs for Accept.js
// @Tags config
// @Produce json
// @Success 200 {object} resdto.AuthConfigResponse
// @Failure 500 {object} httperr.Response
// @Router /get-auth-config [get]
func (h *ConfigHandler) GetAuthConfig(c *gin.Context) {
	view, err := h.q.AuthConfig(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err, false)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAuthConfigView(view))
}
