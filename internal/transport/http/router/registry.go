package router

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// APIModule and AdminModule are the two mount points a feature module can
// implement; a module may implement both.
type APIModule interface{ MountAPI(*gin.RouterGroup) }
type AdminModule interface{ MountAdmin(*gin.RouterGroup) }

// 可选：数值越小越先挂，不实现默认 100
type prioritizer interface{ Priority() int }

// publicMarker modules mount outside the JWT group.
type publicMarker interface{ Public() bool }

type Registry struct {
	mu        sync.RWMutex
	apiMods   []APIModule
	adminMods []AdminModule
}

func NewRegistry() *Registry { return &Registry{} }

// Register files each module under API and/or Admin by its methods.
func (r *Registry) Register(mods ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mod := range mods {
		if m, ok := mod.(APIModule); ok {
			r.apiMods = append(r.apiMods, m)
		}
		if m, ok := mod.(AdminModule); ok {
			r.adminMods = append(r.adminMods, m)
		}
	}
}

// MountAllAPI mounts public modules on public and the rest on secured.
func (r *Registry) MountAllAPI(public, secured *gin.RouterGroup) {
	r.mu.RLock()
	mods := append([]APIModule(nil), r.apiMods...)
	r.mu.RUnlock()

	sortByPriority(mods)
	for _, m := range mods {
		if isPublic(m) {
			m.MountAPI(public)
		} else {
			m.MountAPI(secured)
		}
	}
}

func (r *Registry) MountAllAdmin(admin *gin.RouterGroup) {
	r.mu.RLock()
	mods := append([]AdminModule(nil), r.adminMods...)
	r.mu.RUnlock()

	sortByPriority(mods)
	for _, m := range mods {
		m.MountAdmin(admin)
	}
}

func sortByPriority[M any](mods []M) {
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}

func isPublic(v any) bool {
	p, ok := v.(publicMarker)
	return ok && p.Public()
}
