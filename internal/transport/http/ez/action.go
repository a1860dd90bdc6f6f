package ez

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-addressbook/internal/domain"
	"go-gin-addressbook/internal/transport/http/middleware"
	resp "go-gin-addressbook/internal/transport/http/response"
	"go-gin-addressbook/internal/uow"
)

// EZ registers actions on a route group. Every action gets its own unit of
// work over db.
type EZ struct {
	g   *gin.RouterGroup
	db  *gorm.DB
	log *zap.Logger
}

func New(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, db: db, log: l}
}

// Group returns an EZ rooted at a sub path of the current group.
func (e EZ) Group(path string) EZ {
	return EZ{g: e.g.Group(path), db: e.db, log: e.log}
}

func (e EZ) DB() *gorm.DB          { return e.db }
func (e EZ) Log() *zap.Logger      { return e.log }
func (e EZ) Raw() *gin.RouterGroup { return e.g }

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none"
)

const unexpected = "An unexpected error occurred."

// AErr carries the status and client message for a failed action. Body, when
// set, is written as-is instead of the envelope.
type AErr struct {
	Code int
	Msg  string
	Err  error
	Body any
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg, Err: domain.ErrNotFound} }
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// WithBody fails with status and writes body verbatim.
func WithBody(status int, body any) error { return &AErr{Code: status, Body: body} }

// Action describes one endpoint. I is the bound input, O the payload.
type Action[I any, O any] struct {
	Method         string
	Path           string
	Binder         Binder
	Auth           bool
	Roles          []string
	Message        string // success envelope message
	InvalidMsg     string // replaces the binding error text in 400s
	Raw            bool   // write O without the envelope
	NoContent      bool   // 204 on success
	SkipUnitOfWork bool   // Handler gets a nil unit
	Handler        func(c *gin.Context, u *uow.UnitOfWork, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if a.Auth {
			claims, ok := middleware.ClaimsFrom(c)
			if !ok {
				c.JSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, "unauthorized"))
				return
			}
			if len(a.Roles) > 0 && !slices.ContainsFunc(a.Roles, claims.HasRole) {
				c.JSON(http.StatusForbidden, resp.Error(http.StatusForbidden, "forbidden"))
				return
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			e.writeBindError(c, a.InvalidMsg, bindErr)
			return
		}

		var out O
		var err error
		if a.SkipUnitOfWork {
			out, err = a.Handler(c, nil, &in)
		} else {
			err = uow.Do(c.Request.Context(), e.db, func(u *uow.UnitOfWork) error {
				var herr error
				out, herr = a.Handler(c, u, &in)
				return herr
			})
		}
		if err != nil {
			e.writeError(c, err)
			return
		}

		switch {
		case a.NoContent:
			c.Status(http.StatusNoContent)
		case a.Raw:
			c.JSON(http.StatusOK, out)
		default:
			c.JSON(http.StatusOK, resp.OK(out, a.Message))
		}
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

func (e EZ) writeBindError(c *gin.Context, invalidMsg string, err error) {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		c.JSON(http.StatusRequestEntityTooLarge, resp.Error(http.StatusRequestEntityTooLarge, ""))
		return
	}
	msg := invalidMsg
	if msg == "" {
		msg = describeBindError(err)
	}
	c.JSON(http.StatusBadRequest, resp.Resp{Success: false, Message: msg, Data: fieldErrors(err)})
}

func (e EZ) writeError(c *gin.Context, err error) {
	var ae *AErr
	switch {
	case errors.As(err, &ae):
		if ae.Code >= http.StatusInternalServerError {
			e.log.Error("action failed", zap.String("path", c.FullPath()), zap.String("rid", c.GetString(middleware.KeyRequestID)), zap.Error(err))
		}
		if ae.Body != nil {
			c.JSON(ae.Code, ae.Body)
			return
		}
		c.JSON(ae.Code, resp.Error(ae.Code, ae.Msg))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, resp.Error(http.StatusNotFound, ""))
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, resp.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, resp.Error(http.StatusGatewayTimeout, ""))
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to send
		c.Abort()
	default:
		e.log.Error("action failed", zap.String("path", c.FullPath()), zap.String("rid", c.GetString(middleware.KeyRequestID)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error(http.StatusInternalServerError, unexpected))
	}
}
