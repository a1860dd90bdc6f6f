package employee

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/internal/repo"
	"go-gin-addressbook/internal/transport/http/ez"
)

// Module serves /AddressBook.
type Module struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, l *zap.Logger) *Module { return &Module{db: db, log: l} }

func (m *Module) Priority() int { return 20 }

func (m *Module) MountAPI(g *gin.RouterGroup) {
	ez.RegisterValidators()
	e := ez.New(g, m.db, m.log).Group("/AddressBook")

	ez.Crud(e, ez.CrudConfig[domain.Employee, EmployeeDto, EmployeeResponse]{
		Name:            "Employee",
		Plural:          "Employees",
		Mapper:          Mapper{},
		Includes:        []string{"JobTitle", "Department"},
		ScopeList:       filterByBirthDate,
		NotFoundOnEmpty: true,
	})
}

// filterByBirthDate applies ?startDateOfBirth&endDateOfBirth, inclusive. The
// range only applies when both ends are given.
func filterByBirthDate(c *gin.Context, q repo.Query[domain.Employee]) (repo.Query[domain.Employee], error) {
	from, to := c.Query("startDateOfBirth"), c.Query("endDateOfBirth")
	if from == "" || to == "" {
		return q, nil
	}
	start, err := ParseDate(from)
	if err != nil {
		return q, err
	}
	end, err := ParseDate(to)
	if err != nil {
		return q, err
	}
	return q.Where("date_of_birth >= ? AND date_of_birth <= ?", start, end), nil
}
