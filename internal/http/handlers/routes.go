package handlers

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "backoffice/internal/log"
)

type AppOptions struct {
	// BodyLimit caps request bodies in bytes; 0 means 1 MiB.
	BodyLimit int
	// LoginRateLimit is the number of login attempts per IP per minute; 0 disables it.
	LoginRateLimit int
	// AccessLog receives one line per request; nil disables access logging.
	AccessLog io.Writer
}

func NewApp(d *Deps, opts AppOptions) *fiber.App {
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = 1 << 20
	}
	app := fiber.New(fiber.Config{
		AppName:      "backoffice",
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Output: opts.AccessLog,
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(helmet.New())

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	login := []fiber.Handler{}
	if opts.LoginRateLimit > 0 {
		login = append(login, limiter.New(limiter.Config{
			Max:        opts.LoginRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.login.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"success": false, "message": "Too many attempts. Please try again later.", "user": nil,
				})
			},
		}))
	}
	app.Post("/login", append(login, d.AuthHandler.Login)...)

	pub := app.Group("/public")
	pub.Get("/featured-products", d.PublicHandler.Featured)
	pub.Get("/categories", d.PublicHandler.Categories)
	pub.Get("/products/:id/availability", d.PublicHandler.Availability)

	guard := RequireAdmin(d.AuthSvc)

	app.Get("/dashboard/stats", guard, d.DashboardHandler.Stats)

	products := app.Group("/products", guard)
	products.Get("/", d.ProductHandler.List)
	products.Get("/:id", d.ProductHandler.Get)
	products.Post("/", d.ProductHandler.Create)
	products.Put("/:id", d.ProductHandler.Update)
	products.Delete("/:id", d.ProductHandler.Delete)

	orders := app.Group("/orders", guard)
	orders.Get("/", d.OrderHandler.List)
	orders.Get("/:id", d.OrderHandler.Get)
	orders.Post("/", d.OrderHandler.Create)
	orders.Put("/:id/status", d.OrderHandler.UpdateStatus)
	orders.Put("/:id", d.OrderHandler.Update)
	orders.Delete("/:id", d.OrderHandler.Delete)

	users := app.Group("/users", guard)
	users.Get("/", d.UserHandler.List)
	users.Get("/:id", d.UserHandler.Get)
	users.Post("/", d.UserHandler.Create)
	users.Put("/:id", d.UserHandler.Update)
	users.Delete("/:id", d.UserHandler.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Not found", "data": nil})
	})
	return app
}
