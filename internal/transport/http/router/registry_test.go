package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeMod struct {
	name     string
	prio     int
	public   bool
	mountLog *[]string
}

func (m fakeMod) Priority() int { return m.prio }
func (m fakeMod) Public() bool  { return m.public }

func (m fakeMod) MountAPI(g *gin.RouterGroup) {
	*m.mountLog = append(*m.mountLog, m.name+"@"+g.BasePath())
}

type adminMod struct{ fakeMod }

func (m adminMod) MountAdmin(g *gin.RouterGroup) {
	*m.mountLog = append(*m.mountLog, "admin:"+m.name+"@"+g.BasePath())
}

func TestRegistry_OrderAndGroups(t *testing.T) {
	var log []string
	r := gin.New()
	public := r.Group("/api")
	secured := public.Group("/s")

	reg := NewRegistry()
	reg.Register(
		fakeMod{name: "late", prio: 50, mountLog: &log},
		fakeMod{name: "open", prio: 10, public: true, mountLog: &log},
		adminMod{fakeMod{name: "both", prio: 20, mountLog: &log}},
		"not a module",
	)
	reg.MountAllAPI(public, secured)
	reg.MountAllAdmin(r.Group("/admin/v1"))

	assert.Equal(t, []string{
		"open@/api",
		"both@/api/s",
		"late@/api/s",
		"admin:both@/admin/v1",
	}, log)
}
