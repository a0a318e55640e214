package http

import (
	"onboarding-service/internal/adapter/middleware"
	"onboarding-service/internal/config"
	"onboarding-service/internal/usecase/submission"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Deps struct {
	Config      *config.Config
	Logger      *zap.Logger
	Submissions *submission.Usecase
	Ping        Pinger
	// Optional; nil disables Idempotency-Key handling.
	Redis *redis.Client
}

// NewServer builds the echo instance with every route registered.
func NewServer(d Deps) (*echo.Echo, error) {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewErrorHandler(log)
	if d.Config.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	e.Use(
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}),
		echomw.Recover(),
		middleware.RequestLogger(log),
		echomw.BodyLimit(d.Config.BodyLimit()),
	)

	health := NewHandler(d.Ping)
	pages := NewPageHandler(log)
	subs := NewSubmissionHandler(d.Submissions)

	var submitMW []echo.MiddlewareFunc
	if d.Redis != nil {
		submitMW = append(submitMW, middleware.Idempotency(d.Redis, d.Config.IdempotencyTTL(), log))
	}

	// routes
	e.GET("/health", health.Health)
	e.GET("/", pages.Root)
	e.GET("/onboarding", pages.OnboardingNoSlash)
	e.GET(OnboardingPath, pages.Onboarding)
	e.Static("/onboarding/uploads", d.Config.UploadDir)

	for _, prefix := range []string{"/onboarding/api", "/api"} {
		g := e.Group(prefix)
		g.POST("/submit", subs.Submit, submitMW...)
		g.GET("/users/:place_id", subs.ListByPlace)
		g.GET("/users/:place_id/export", subs.Export)
	}
	return e, nil
}
