package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/drelaann/simple-ecommerce-api/api/http/handlers"
	"github.com/drelaann/simple-ecommerce-api/api/http/middleware"
	"github.com/drelaann/simple-ecommerce-api/api/http/presenter"
	"github.com/drelaann/simple-ecommerce-api/pkg/metrics"
)

// AppOptions configures the Fiber application shared by every route.
type AppOptions struct {
	Name        string
	CORSOrigins []string
	Logger      *zap.Logger
	Metrics     *metrics.Registry
}

// NewApp builds the Fiber app with recovery, CORS, request logging and metrics.
func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: joinOrigins(opts.CORSOrigins),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	if opts.Logger != nil {
		app.Use(middleware.RequestLogger(opts.Logger))
	}
	if opts.Metrics != nil {
		app.Use(middleware.Metrics(opts.Metrics.HTTP))
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}
	return app
}

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	health *handlers.HealthHandler,
	auth *handlers.AuthHandler,
	users *handlers.UserHandler,
	products *handlers.ProductHandler,
	authMW fiber.Handler,
) {
	app.Get("/", health.Root)
	app.Get("/health", health.Health)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	v1.Post("/auth/login", auth.Login)

	ug := v1.Group("/users")
	ug.Post("/", users.Create)
	ug.Get("/", users.List)
	// registered before /:id so "me" is not parsed as an id
	ug.Get("/me", authMW, users.Me)
	ug.Get("/:id", users.Get)
	ug.Put("/:id", users.Update)
	ug.Delete("/:id", users.Delete)

	pg := v1.Group("/products")
	pg.Post("/", products.Create)
	pg.Get("/", products.List)
	pg.Get("/:id", products.Get)
	pg.Put("/:id", products.Update)
	pg.Delete("/:id", products.Delete)
	pg.Patch("/:id/stock", products.UpdateStock)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	message := "internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, message = fe.Code, fe.Message
	}
	return presenter.Error(c, code, message)
}

func joinOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
