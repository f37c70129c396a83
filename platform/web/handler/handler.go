package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserHeader carries the authenticated caller id, set by the auth gateway in front of the api
const UserHeader = "X-User-Id"

// Result is what every handler returns, the Wrapper writes it as the response
type Result struct {
	Status int
	Body   any
}

// Error is the default error body
type Error struct {
	Message string `json:"message" example:"notes not found"`
	Details any    `json:"details,omitempty"`
}

// Wrapper adapts a handler returning a Result into a gin.HandlerFunc
func Wrapper(h func(ctx *gin.Context) Result) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		r := h(ctx)
		if r.Body == nil || r.Status == http.StatusNoContent {
			ctx.Status(r.Status)
			return
		}
		ctx.JSON(r.Status, r.Body)
	}
}

// UserID reads the caller id from the UserHeader
func UserID(ctx *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(ctx.GetHeader(UserHeader), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// PathID parses an uint64 path param
func PathID(ctx *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
