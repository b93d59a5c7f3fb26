package status

import (
	"market-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler serves liveness and run status.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a status handler backed by the given store.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// NewApp builds the status Fiber app with its middleware and routes.
func NewApp(store *Store, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Tag every request so its log lines can be correlated.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("request_id", uuid.NewString())
		return c.Next()
	})
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRequestID(log, c)
		l.Info("request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		err := c.Next()
		if err != nil {
			l.Error("request error", zap.Error(err))
		}
		return err
	})

	h := NewHandler(store, log)
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/healthz", h.HandleHealth)
	app.Get("/status", h.HandleStatus)
	app.Get("/status/:source", h.HandleSourceStatus)
}

// HandleHealth reports process liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleStatus returns the latest run report for every source.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"runs": h.store.All()})
}

// HandleSourceStatus returns the latest run report for one source.
func (h *Handler) HandleSourceStatus(c *fiber.Ctx) error {
	report, ok := h.store.Get(c.Params("source"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no runs recorded for source",
		})
	}
	return c.JSON(report)
}
