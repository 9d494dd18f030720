package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-microblog-api/internal/apperr"
	"go-microblog-api/internal/transport/http/response"
	"go-microblog-api/internal/validation"
)

const (
	ctxKeyBody = "validated_body"
	ctxKeyID   = "validated_id"
)

// Body decodes the JSON request body, rejects anything that is not a
// non-empty object, runs the per-field rules, and stashes the raw object for
// the handler. All rule violations for the request are returned together.
func Body(rules []*validation.Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw any
		if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
			abortMissingBody(c)
			return
		}
		body, ok := raw.(map[string]any)
		if !ok || len(body) == 0 {
			abortMissingBody(c)
			return
		}
		if entries := validation.Run(body, rules); len(entries) > 0 {
			response.Errors(c, http.StatusBadRequest, entries)
			c.Abort()
			return
		}
		c.Set(ctxKeyBody, body)
		c.Next()
	}
}

func abortMissingBody(c *gin.Context) {
	response.Errors(c, http.StatusBadRequest, []apperr.Entry{{
		Location: "body",
		Msg:      validation.MsgMissingBody,
		Type:     "field",
	}})
	c.Abort()
}

// BodyFrom returns the object stashed by Body.
func BodyFrom(c *gin.Context) map[string]any {
	body, _ := c.MustGet(ctxKeyBody).(map[string]any)
	return body
}

// ID validates the :id path segment as a non-negative integer and
// short-circuits before any entity operation runs.
func ID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 0 {
			response.Errors(c, http.StatusBadRequest, []apperr.Entry{{
				Msg: "Invalid id parameter. Must be a positive integer.",
			}})
			c.Abort()
			return
		}
		c.Set(ctxKeyID, id)
		c.Next()
	}
}

// IDFrom returns the id stashed by ID.
func IDFrom(c *gin.Context) int {
	id, _ := c.MustGet(ctxKeyID).(int)
	return id
}
