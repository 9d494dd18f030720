package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-microblog-api/internal/service"
	mdw "go-microblog-api/internal/transport/http/middleware"
	"go-microblog-api/internal/transport/http/response"
	"go-microblog-api/internal/validation"
)

type PostHandler struct {
	posts *service.PostService
	log   *zap.Logger
}

func NewPostHandler(posts *service.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, log: log}
}

func (h *PostHandler) MountAPI(g *gin.RouterGroup) {
	g.POST("/posts", mdw.Body(validation.PostRules()), h.Create)
	g.GET("/posts/:id", mdw.ID(), h.Retrieve)
	g.PUT("/posts/:id", mdw.ID(), mdw.Body(validation.PostRules()), h.Update)
	g.DELETE("/posts/:id", mdw.ID(), h.Delete)
}

func (h *PostHandler) Create(c *gin.Context) {
	p, err := h.posts.Create(c.Request.Context(), mdw.BodyFrom(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, p)
}

// Retrieve renders an absent post as 200 with an empty object rather than a
// 404, matching the published contract for this route.
func (h *PostHandler) Retrieve(c *gin.Context) {
	p, err := h.posts.Retrieve(c.Request.Context(), mdw.IDFrom(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	if p == nil {
		response.OK(c, struct{}{})
		return
	}
	response.OK(c, p)
}

func (h *PostHandler) Update(c *gin.Context) {
	p, err := h.posts.Update(c.Request.Context(), mdw.IDFrom(c), mdw.BodyFrom(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, p)
}

func (h *PostHandler) Delete(c *gin.Context) {
	p, err := h.posts.Delete(c.Request.Context(), mdw.IDFrom(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, p)
}
