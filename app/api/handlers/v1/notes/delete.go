package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/fundoo-notes/platform/web/handler"
)

// Delete godoc
// @Summary Delete a note
// @Description Delete a note with its collaborators and labels, only the owner can
// @Tags Note
// @Param X-User-Id header string true "Caller id"
// @Param id path string true "Note id"
// @Success 204
// @Failure 403 {object} handler.Error
// @Failure 404 {object} handler.Error
// @Router /v1/notes/{id} [delete]
func (h Handlers) Delete(ctx *gin.Context) handler.Result {
	userID, noteID, res, ok := caller(ctx, true)
	if !ok {
		return res
	}

	if err := h.Service.Destroy(ctx, userID, noteID); err != nil {
		return failure(err)
	}
	return handler.Result{Status: http.StatusNoContent}
}
