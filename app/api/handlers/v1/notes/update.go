package notes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/fundoo-notes/business/v1/note"
	"github.com/ribgsilva/fundoo-notes/platform/web/handler"
)

// Update godoc
// @Summary Update a note
// @Description Partially update a note, only the fields sent are changed
// @Tags Note
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller id"
// @Param id path string true "Note id"
// @Param note body note.UpdateNote true "Fields to change"
// @Success 200 {object} note.Note
// @Failure 400 {object} handler.Error
// @Failure 404 {object} handler.Error
// @Router /v1/notes/{id} [patch]
func (h Handlers) Update(ctx *gin.Context) handler.Result {
	userID, noteID, res, ok := caller(ctx, true)
	if !ok {
		return res
	}

	var upd note.UpdateNote
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		return badBody(err)
	}

	updated, err := h.Service.Update(ctx, userID, noteID, upd)
	if err != nil {
		return failure(err)
	}
	return handler.Result{Status: http.StatusOK, Body: updated}
}

// ToggleArchive godoc
// @Summary Archive or unarchive a note
// @Tags Note
// @Produce json
// @Param X-User-Id header string true "Caller id"
// @Param id path string true "Note id"
// @Success 200 {object} note.Note
// @Failure 404 {object} handler.Error
// @Router /v1/notes/{id}/archive [patch]
func (h Handlers) ToggleArchive(ctx *gin.Context) handler.Result {
	return h.toggle(ctx, h.Service.ToggleArchive)
}

// ToggleTrash godoc
// @Summary Trash or restore a note
// @Tags Note
// @Produce json
// @Param X-User-Id header string true "Caller id"
// @Param id path string true "Note id"
// @Success 200 {object} note.Note
// @Failure 404 {object} handler.Error
// @Router /v1/notes/{id}/trash [patch]
func (h Handlers) ToggleTrash(ctx *gin.Context) handler.Result {
	return h.toggle(ctx, h.Service.ToggleTrash)
}

func (h Handlers) toggle(ctx *gin.Context, flip func(ctx context.Context, userID, noteID uint64) (note.Note, error)) handler.Result {
	userID, noteID, res, ok := caller(ctx, true)
	if !ok {
		return res
	}

	flipped, err := flip(ctx, userID, noteID)
	if err != nil {
		return failure(err)
	}
	return handler.Result{Status: http.StatusOK, Body: flipped}
}
