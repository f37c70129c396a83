package notes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ribgsilva/fundoo-notes/business/v1/note"
	"github.com/ribgsilva/fundoo-notes/platform/web/handler"
)

type Handlers struct {
	Service *note.Service
}

// IDs is the body of the collaborators and labels endpoints
type IDs struct {
	UserIds  []uint64 `json:"userIds,omitempty" example:"2"`
	LabelIds []uint64 `json:"labelIds,omitempty" example:"1"`
}

var (
	unauthorized = handler.Result{
		Status: http.StatusUnauthorized,
		Body:   handler.Error{Message: "missing or invalid " + handler.UserHeader + " header"},
	}
	invalidID = handler.Result{
		Status: http.StatusBadRequest,
		Body:   handler.Error{Message: "invalid id"},
	}
)

// caller reads the user id header and the note id path param, ok is false when the returned Result must
// be written as is
func caller(ctx *gin.Context, withNote bool) (userID, noteID uint64, res handler.Result, ok bool) {
	if userID, ok = handler.UserID(ctx); !ok {
		return 0, 0, unauthorized, false
	}
	if !withNote {
		return userID, 0, handler.Result{}, true
	}
	if noteID, ok = handler.PathID(ctx, "id"); !ok {
		return 0, 0, invalidID, false
	}
	return userID, noteID, handler.Result{}, true
}

func badBody(err error) handler.Result {
	return handler.Result{
		Status: http.StatusBadRequest,
		Body:   handler.Error{Message: "invalid body", Details: err.Error()},
	}
}

// failure maps the note error kinds, store details are logged by the service and never returned
func failure(err error) handler.Result {
	var fields note.ValidationErrors
	switch {
	case errors.As(err, &fields):
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: "validation failed", Details: fields},
		}
	case errors.Is(err, note.ErrValidation):
		return handler.Result{
			Status: http.StatusBadRequest,
			Body:   handler.Error{Message: err.Error()},
		}
	case errors.Is(err, note.ErrNotFound):
		return handler.Result{
			Status: http.StatusNotFound,
			Body:   handler.Error{Message: "notes not found"},
		}
	case errors.Is(err, note.ErrPermissionDenied):
		return handler.Result{
			Status: http.StatusForbidden,
			Body:   handler.Error{Message: "permission denied"},
		}
	default:
		return handler.Result{
			Status: http.StatusInternalServerError,
			Body:   handler.Error{Message: "internal error"},
		}
	}
}
