package job

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/internal/transport/http/ez"
)

// JobDto exposes the job name as title.
type JobDto struct {
	ID    int    `json:"id"`
	Title string `json:"title" binding:"required,max=50"`
}

type mapper struct{}

func (mapper) ToEntity(in *JobDto, dst *domain.Job) error {
	name := strings.TrimSpace(in.Title)
	if name == "" {
		return domain.ErrInvalidInput
	}
	dst.Name = name
	return nil
}

func (mapper) ToDTO(j *domain.Job) JobDto {
	return JobDto{ID: j.ID, Title: j.Name}
}

// Module serves /Job.
type Module struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, l *zap.Logger) *Module { return &Module{db: db, log: l} }

func (m *Module) Priority() int { return 30 }

func (m *Module) MountAPI(g *gin.RouterGroup) {
	ez.Crud(ez.New(g, m.db, m.log).Group("/Job"), ez.CrudConfig[domain.Job, JobDto, JobDto]{
		Name:   "Job",
		Plural: "Jobs",
		Mapper: mapper{},
	})
}
