package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule is implemented by handlers that mount their own routes.
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// Optional: modules implementing this control mount order (lower mounts
// first). Default is 100.
type prioritizer interface{ Priority() int }

// Registry collects API modules and mounts them in priority order.
type Registry struct {
	mods []APIModule
}

func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) Register(mods ...APIModule) {
	r.mods = append(r.mods, mods...)
}

func (r *Registry) MountAll(api *gin.RouterGroup) {
	mods := append([]APIModule(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(api)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
