package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"printfarm/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// BaseURL prefixes every API route.
const BaseURL = "/api/v1"

// HTTPObserver receives one observation per finished request.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

type RouterConfig struct {
	Logger *slog.Logger
	// Observer is optional.
	Observer HTTPObserver
	// MetricsHandler is served on /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter builds the echo instance: API routes under BaseURL with
// OpenAPI request validation, plus /health, /metrics, /openapi.json and
// the Swagger UI.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	requestValidator, err := NewRequestValidator()
	if err != nil {
		return nil, err
	}
	specJSON, err := openAPIJSON()
	if err != nil {
		return nil, err
	}
	registerSwaggerDoc(specJSON)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewBodyValidator()
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)

	if cfg.Observer != nil {
		e.Use(observe(cfg.Observer))
	}
	e.Use(middleware.Recover())

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}
	e.GET("/openapi.json", func(ctx echo.Context) error {
		return ctx.JSONBlob(http.StatusOK, specJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(BaseURL, requestValidator.Middleware())
	servers.RegisterHandlers(api, server)

	return e, nil
}

func openAPIJSON() ([]byte, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerSwaggerOnce sync.Once

// registerSwaggerDoc hands the spec to swag so echo-swagger can serve it as
// doc.json. swag panics on a second registration under the same name.
func registerSwaggerDoc(specJSON []byte) {
	registerSwaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(specJSON)})
	})
}

func observe(o HTTPObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			if err := next(ctx); err != nil {
				ctx.Error(err)
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			o.ObserveHTTP(ctx.Request().Method, route, ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}
