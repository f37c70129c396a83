package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/fundoo-notes/business/v1/note"
	"github.com/ribgsilva/fundoo-notes/platform/web/handler"
)

// Create godoc
// @Summary Create a note
// @Description Create a note owned by the caller, a future reminder is scheduled
// @Tags Note
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller id"
// @Param note body note.NewNote true "Note"
// @Success 201 {object} note.Note
// @Failure 400 {object} handler.Error
// @Router /v1/notes [post]
func (h Handlers) Create(ctx *gin.Context) handler.Result {
	userID, _, res, ok := caller(ctx, false)
	if !ok {
		return res
	}

	var newN note.NewNote
	if err := ctx.ShouldBindJSON(&newN); err != nil {
		return badBody(err)
	}

	created, err := h.Service.Create(ctx, userID, newN)
	if err != nil {
		return failure(err)
	}
	return handler.Result{Status: http.StatusCreated, Body: created}
}
