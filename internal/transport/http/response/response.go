// Package response renders entity operation results. Successes return the
// raw entity or list; failures return `{"errors": [...]}` with the status the
// taxonomy dictates. Unexpected errors never leak detail to the caller.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-microblog-api/internal/apperr"
)

// genericMsg is the only thing a client sees for a non-taxonomy failure.
const genericMsg = "Encountered an unexpected error while processing the request."

type Body struct {
	Errors []apperr.Entry `json:"errors"`
}

func OK(c *gin.Context, data any) {
	if data == nil {
		data = struct{}{}
	}
	c.JSON(http.StatusOK, data)
}

// Errors writes a failure envelope with the given status.
func Errors(c *gin.Context, status int, entries []apperr.Entry) {
	c.JSON(status, Body{Errors: entries})
}

// Fail maps a taxonomy error to its status and entries. Anything outside the
// taxonomy is logged with full detail server-side and rendered as a generic
// 500 so storage internals never reach the client.
func Fail(c *gin.Context, log *zap.Logger, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		Errors(c, ae.Status(), ae.Entries)
		return
	}
	log.Error("unhandled error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	Errors(c, http.StatusInternalServerError, []apperr.Entry{{Msg: genericMsg}})
}
