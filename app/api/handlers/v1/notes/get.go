package notes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/fundoo-notes/business/v1/note"
	"github.com/ribgsilva/fundoo-notes/platform/web/handler"
)

// Get godoc
// @Summary Find a notes
// @Description Find a note the caller owns or collaborates on using its id
// @Tags Note
// @Produce json
// @Param X-User-Id header string true "Caller id"
// @Param id path string true "Note id"
// @Success 200 {object} note.Note
// @Failure 400 {object} handler.Error
// @Failure 404 {object} handler.Error
// @Router /v1/notes/{id} [get]
func (h Handlers) Get(ctx *gin.Context) handler.Result {
	userID, noteID, res, ok := caller(ctx, true)
	if !ok {
		return res
	}

	found, err := h.Service.Get(ctx, userID, noteID)
	if err != nil {
		return failure(err)
	}
	return handler.Result{Status: http.StatusOK, Body: found}
}

// List godoc
// @Summary List notes
// @Description List the notes of the caller, owned or shared, that are neither archived nor trashed
// @Tags Note
// @Produce json
// @Param X-User-Id header string true "Caller id"
// @Success 200 {array} note.Note
// @Router /v1/notes [get]
func (h Handlers) List(ctx *gin.Context) handler.Result {
	return h.view(ctx, h.Service.List)
}

// Archived godoc
// @Summary List archived notes
// @Tags Note
// @Produce json
// @Param X-User-Id header string true "Caller id"
// @Success 200 {array} note.Note
// @Router /v1/notes/archived [get]
func (h Handlers) Archived(ctx *gin.Context) handler.Result {
	return h.view(ctx, h.Service.Archived)
}

// Trashed godoc
// @Summary List trashed notes
// @Tags Note
// @Produce json
// @Param X-User-Id header string true "Caller id"
// @Success 200 {array} note.Note
// @Router /v1/notes/trashed [get]
func (h Handlers) Trashed(ctx *gin.Context) handler.Result {
	return h.view(ctx, h.Service.Trashed)
}

func (h Handlers) view(ctx *gin.Context, list func(ctx context.Context, userID uint64) ([]note.Note, error)) handler.Result {
	userID, _, res, ok := caller(ctx, false)
	if !ok {
		return res
	}

	notes, err := list(ctx, userID)
	if err != nil {
		return failure(err)
	}
	return handler.Result{Status: http.StatusOK, Body: notes}
}
