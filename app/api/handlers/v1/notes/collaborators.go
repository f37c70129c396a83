package notes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/fundoo-notes/platform/web/handler"
)

// AddCollaborators godoc
// @Summary Share a note
// @Description Share a note with other users, ids that match no user are returned as invalid with a 207
// @Tags Collaborator
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller id"
// @Param id path string true "Note id"
// @Param ids body IDs true "userIds"
// @Success 200 {object} note.ShareResult
// @Success 207 {object} note.ShareResult
// @Failure 400 {object} handler.Error
// @Failure 403 {object} handler.Error
// @Router /v1/notes/{id}/collaborators [post]
func (h Handlers) AddCollaborators(ctx *gin.Context) handler.Result {
	userID, noteID, res, ok := caller(ctx, true)
	if !ok {
		return res
	}

	var body IDs
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return badBody(err)
	}

	shared, err := h.Service.AddCollaborators(ctx, userID, noteID, body.UserIds)
	if err != nil {
		return failure(err)
	}
	if shared.Partial() {
		return handler.Result{Status: http.StatusMultiStatus, Body: shared}
	}
	return handler.Result{Status: http.StatusOK, Body: shared}
}

// RemoveCollaborators godoc
// @Summary Un-share a note
// @Tags Collaborator
// @Accept json
// @Param X-User-Id header string true "Caller id"
// @Param id path string true "Note id"
// @Param ids body IDs true "userIds"
// @Success 204
// @Failure 403 {object} handler.Error
// @Router /v1/notes/{id}/collaborators [delete]
func (h Handlers) RemoveCollaborators(ctx *gin.Context) handler.Result {
	userID, noteID, res, ok := caller(ctx, true)
	if !ok {
		return res
	}

	var body IDs
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return badBody(err)
	}

	if err := h.Service.RemoveCollaborators(ctx, userID, noteID, body.UserIds); err != nil {
		return failure(err)
	}
	return handler.Result{Status: http.StatusNoContent}
}
