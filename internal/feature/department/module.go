package department

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/internal/transport/http/ez"
)

type DepartmentDto struct {
	ID   int    `json:"id"`
	Name string `json:"name" binding:"required,max=50"`
}

type mapper struct{}

func (mapper) ToEntity(in *DepartmentDto, dst *domain.Department) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	dst.Name = name
	return nil
}

func (mapper) ToDTO(d *domain.Department) DepartmentDto {
	return DepartmentDto{ID: d.ID, Name: d.Name}
}

// Module serves /Department.
type Module struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, l *zap.Logger) *Module { return &Module{db: db, log: l} }

func (m *Module) Priority() int { return 30 }

func (m *Module) MountAPI(g *gin.RouterGroup) {
	ez.Crud(ez.New(g, m.db, m.log).Group("/Department"), ez.CrudConfig[domain.Department, DepartmentDto, DepartmentDto]{
		Name:   "Department",
		Plural: "Departments",
		Mapper: mapper{},
	})
}
