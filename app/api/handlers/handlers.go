package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/fundoo-notes/app/api/handlers/v1/healthcheck"
	"github.com/ribgsilva/fundoo-notes/app/api/handlers/v1/notes"
	"github.com/ribgsilva/fundoo-notes/business/v1/note"
	"github.com/ribgsilva/fundoo-notes/platform/web/handler"
)

func MapDefaults(r *gin.Engine) {
	r.GET("/v1/healthcheck", handler.Wrapper(healthcheck.Get))
}

func MapApi(r *gin.Engine, svc *note.Service) {
	h := notes.Handlers{Service: svc}

	v1 := r.Group("/v1/notes")
	v1.GET("", handler.Wrapper(h.List))
	v1.GET("/archived", handler.Wrapper(h.Archived))
	v1.GET("/trashed", handler.Wrapper(h.Trashed))
	v1.GET("/:id", handler.Wrapper(h.Get))
	v1.POST("", handler.Wrapper(h.Create))
	v1.PATCH("/:id", handler.Wrapper(h.Update))
	v1.DELETE("/:id", handler.Wrapper(h.Delete))
	v1.PATCH("/:id/archive", handler.Wrapper(h.ToggleArchive))
	v1.PATCH("/:id/trash", handler.Wrapper(h.ToggleTrash))
	v1.POST("/:id/collaborators", handler.Wrapper(h.AddCollaborators))
	v1.DELETE("/:id/collaborators", handler.Wrapper(h.RemoveCollaborators))
	v1.POST("/:id/labels", handler.Wrapper(h.AddLabels))
	v1.DELETE("/:id/labels", handler.Wrapper(h.RemoveLabels))
}
