package healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/fundoo-notes/platform/web/handler"
)

// Get godoc
// @Summary Healthcheck
// @Tags Healthcheck
// @Success 200
// @Router /v1/healthcheck [get]
func Get(_ *gin.Context) handler.Result {
	return handler.Result{Status: http.StatusOK}
}
