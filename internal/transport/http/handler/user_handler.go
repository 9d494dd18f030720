package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-microblog-api/internal/service"
	mdw "go-microblog-api/internal/transport/http/middleware"
	"go-microblog-api/internal/transport/http/response"
	"go-microblog-api/internal/validation"
)

type UserHandler struct {
	users *service.UserService
	posts *service.PostService
	log   *zap.Logger
}

func NewUserHandler(users *service.UserService, posts *service.PostService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, posts: posts, log: log}
}

func (h *UserHandler) MountAPI(g *gin.RouterGroup) {
	g.POST("/users", mdw.Body(validation.UserRules()), h.Create)
	g.GET("/users/:id", mdw.ID(), h.Retrieve)
	g.PUT("/users/:id", mdw.ID(), mdw.Body(validation.UserRules()), h.Update)
	g.DELETE("/users/:id", mdw.ID(), h.Delete)
	g.GET("/users/:id/posts", mdw.ID(), h.ListPosts)
}

func (h *UserHandler) Create(c *gin.Context) {
	u, err := h.users.Create(c.Request.Context(), mdw.BodyFrom(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, u)
}

func (h *UserHandler) Retrieve(c *gin.Context) {
	u, err := h.users.Retrieve(c.Request.Context(), mdw.IDFrom(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	u, err := h.users.Update(c.Request.Context(), mdw.IDFrom(c), mdw.BodyFrom(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	u, err := h.users.Delete(c.Request.Context(), mdw.IDFrom(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, u)
}

// ListPosts returns the user's posts; an unknown user yields an empty array,
// never a 404.
func (h *UserHandler) ListPosts(c *gin.Context) {
	posts, err := h.posts.ListByUser(c.Request.Context(), mdw.IDFrom(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.OK(c, posts)
}
