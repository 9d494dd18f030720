package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-microblog-api/internal/core/server"
	"go-microblog-api/internal/transport/http/handler"
	mdw "go-microblog-api/internal/transport/http/middleware"
)

// NewAPIEngine assembles the public API: base engine (recovery + CORS),
// ambient middleware chain, operational endpoints, and the entity modules
// mounted under the configured prefix.
func NewAPIEngine(l *zap.Logger, prefix string, users *handler.UserHandler, posts *handler.PostHandler) *gin.Engine {
	r := server.NewRouter(l)

	r.Use(
		mdw.RequestID(),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	reg := NewRegistry()
	reg.Register(users, posts)

	api := r.Group(prefix)
	reg.MountAll(api)

	return r
}
