package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"go-microblog-api/internal/apperr"
	"go-microblog-api/internal/transport/http/response"
)

// ConcurrencyLimit caps the number of requests in flight, as back-pressure
// for the database pool behind the stores.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c, 1); err != nil {
			response.Errors(c, http.StatusServiceUnavailable, []apperr.Entry{{Msg: "Server busy. Please retry the request."}})
			c.Abort()
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
