package ez

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/internal/repo"
	"go-gin-addressbook/internal/uow"
)

// Mapper converts between the request DTO, the entity and the response DTO.
// ToEntity must leave the key of dst alone.
type Mapper[T any, In any, Out any] interface {
	ToEntity(in *In, dst *T) error
	ToDTO(e *T) Out
}

type CrudConfig[T domain.Keyed, In any, Out any] struct {
	Name   string // singular, e.g. "Employee"
	Plural string // e.g. "Employees"
	Mapper Mapper[T, In, Out]

	// Includes are eager-loaded on every read.
	Includes []string
	// ScopeList narrows the list query from request parameters.
	ScopeList func(c *gin.Context, q repo.Query[T]) (repo.Query[T], error)
	// NotFoundOnEmpty answers an empty list with 404.
	NotFoundOnEmpty bool
}

type none struct{}

// Crud mounts GetAll<Plural>, Get<Name>ById/:id, Add<Name>, Update<Name>/:id
// and Delete<Name>/:id.
func Crud[T domain.Keyed, In any, Out any](e EZ, cfg CrudConfig[T, In, Out]) {
	lower, lowerPlural := strings.ToLower(cfg.Name), strings.ToLower(cfg.Plural)
	notFound := cfg.Name + " not found."
	invalid := "Invalid " + lower + " data."
	saveFailed := "An error occurred while saving the " + lower + "."

	load := func(c *gin.Context, r *repo.GormRepository[T, int], id int) (*T, error) {
		if len(cfg.Includes) == 0 {
			return r.GetByID(c.Request.Context(), id)
		}
		return r.GetAllIncluding(cfg.Includes...).WhereID(id).First(c.Request.Context())
	}

	RegisterAction(e, Action[none, []Out]{
		Method:  http.MethodGet,
		Path:    "/GetAll" + cfg.Plural,
		Binder:  BindNone,
		Message: cfg.Plural + " retrieved successfully.",
		Handler: func(c *gin.Context, u *uow.UnitOfWork, _ *none) ([]Out, error) {
			r := uow.Entity[T, int](u)
			var items []T
			var err error
			if len(cfg.Includes) == 0 && cfg.ScopeList == nil {
				items, err = r.GetAll(c.Request.Context())
			} else {
				q := r.GetAllIncluding(cfg.Includes...)
				if cfg.ScopeList != nil {
					if q, err = cfg.ScopeList(c, q); err != nil {
						return nil, err
					}
				}
				items, err = q.Find(c.Request.Context())
			}
			if err != nil {
				return nil, err
			}
			if len(items) == 0 && cfg.NotFoundOnEmpty {
				return nil, NotFound("No " + lowerPlural + " found.")
			}
			out := make([]Out, 0, len(items))
			for i := range items {
				out = append(out, cfg.Mapper.ToDTO(&items[i]))
			}
			return out, nil
		},
	})

	RegisterAction(e, Action[none, Out]{
		Method:  http.MethodGet,
		Path:    "/Get" + cfg.Name + "ById/:id",
		Binder:  BindNone,
		Message: cfg.Name + " retrieved successfully.",
		Handler: func(c *gin.Context, u *uow.UnitOfWork, _ *none) (Out, error) {
			var zero Out
			id, ok := pathID(c)
			if !ok {
				return zero, NotFound(notFound)
			}
			found, err := load(c, uow.Entity[T, int](u), id)
			if err != nil {
				return zero, err
			}
			if found == nil {
				return zero, NotFound(notFound)
			}
			return cfg.Mapper.ToDTO(found), nil
		},
	})

	RegisterAction(e, Action[In, Out]{
		Method:     http.MethodPost,
		Path:       "/Add" + cfg.Name,
		Binder:     BindJSON,
		Message:    cfg.Name + " added successfully.",
		InvalidMsg: invalid,
		Handler: func(c *gin.Context, u *uow.UnitOfWork, in *In) (Out, error) {
			var zero Out
			var ent T
			if err := cfg.Mapper.ToEntity(in, &ent); err != nil {
				return zero, BadRequest(invalid)
			}
			r := uow.Entity[T, int](u)
			if err := r.Insert(&ent); err != nil {
				return zero, Internal(saveFailed, err)
			}
			if err := u.Save(c.Request.Context()); err != nil {
				return zero, Internal(saveFailed, err)
			}
			created, err := load(c, r, ent.Key())
			if err != nil || created == nil {
				created = &ent
			}
			return cfg.Mapper.ToDTO(created), nil
		},
	})

	RegisterAction(e, Action[In, Out]{
		Method:     http.MethodPut,
		Path:       "/Update" + cfg.Name + "/:id",
		Binder:     BindJSON,
		Message:    cfg.Name + " updated successfully.",
		InvalidMsg: invalid,
		Handler: func(c *gin.Context, u *uow.UnitOfWork, in *In) (Out, error) {
			var zero Out
			id, ok := pathID(c)
			if !ok {
				return zero, NotFound(notFound)
			}
			r := uow.Entity[T, int](u)
			existing, err := r.GetByID(c.Request.Context(), id)
			if err != nil {
				return zero, err
			}
			if existing == nil {
				return zero, NotFound(notFound)
			}
			if err := cfg.Mapper.ToEntity(in, existing); err != nil {
				return zero, BadRequest(invalid)
			}
			if err := r.Update(existing); err != nil {
				return zero, Internal(saveFailed, err)
			}
			if err := u.Save(c.Request.Context()); err != nil {
				// deleted between the lookup and the write
				if errors.Is(err, domain.ErrNotFound) {
					return zero, NotFound(notFound)
				}
				return zero, Internal(saveFailed, err)
			}
			updated, err := load(c, r, id)
			if err != nil || updated == nil {
				updated = existing
			}
			return cfg.Mapper.ToDTO(updated), nil
		},
	})

	RegisterAction(e, Action[none, *Out]{
		Method:  http.MethodDelete,
		Path:    "/Delete" + cfg.Name + "/:id",
		Binder:  BindNone,
		Message: cfg.Name + " deleted successfully.",
		Handler: func(c *gin.Context, u *uow.UnitOfWork, _ *none) (*Out, error) {
			id, ok := pathID(c)
			if !ok {
				return nil, NotFound(notFound)
			}
			r := uow.Entity[T, int](u)
			existing, err := r.GetByID(c.Request.Context(), id)
			if err != nil {
				return nil, err
			}
			if existing == nil {
				return nil, NotFound(notFound)
			}
			if err := r.Remove(existing); err != nil {
				return nil, err
			}
			if err := u.Save(c.Request.Context()); err != nil {
				return nil, Internal("An error occurred while deleting the "+lower+".", err)
			}
			return nil, nil
		},
	})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil && id > 0
}
