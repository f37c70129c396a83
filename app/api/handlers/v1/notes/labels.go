package notes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/fundoo-notes/platform/web/handler"
)

// AddLabels godoc
// @Summary Label a note
// @Description Attach labels owned by the caller, other ids are skipped
// @Tags Label
// @Accept json
// @Param X-User-Id header string true "Caller id"
// @Param id path string true "Note id"
// @Param ids body IDs true "labelIds"
// @Success 204
// @Failure 403 {object} handler.Error
// @Router /v1/notes/{id}/labels [post]
func (h Handlers) AddLabels(ctx *gin.Context) handler.Result {
	return h.labels(ctx, h.Service.AddLabels)
}

// RemoveLabels godoc
// @Summary Remove labels from a note
// @Tags Label
// @Accept json
// @Param X-User-Id header string true "Caller id"
// @Param id path string true "Note id"
// @Param ids body IDs true "labelIds"
// @Success 204
// @Failure 403 {object} handler.Error
// @Router /v1/notes/{id}/labels [delete]
func (h Handlers) RemoveLabels(ctx *gin.Context) handler.Result {
	return h.labels(ctx, h.Service.RemoveLabels)
}

func (h Handlers) labels(ctx *gin.Context, apply func(ctx context.Context, userID, noteID uint64, labelIDs []uint64) error) handler.Result {
	userID, noteID, res, ok := caller(ctx, true)
	if !ok {
		return res
	}

	var body IDs
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return badBody(err)
	}

	if err := apply(ctx, userID, noteID, body.LabelIds); err != nil {
		return failure(err)
	}
	return handler.Result{Status: http.StatusNoContent}
}
