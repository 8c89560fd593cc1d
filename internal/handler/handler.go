package handler

import (
	"errors"
	"time"

	"lingualift/internal/domain"
	"lingualift/internal/middleware"
	"lingualift/internal/ratelimit"
	"lingualift/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler wires the engine's operations to the HTTP surface.
type Handler struct {
	reviews *service.ReviewService
	ledger  *service.LedgerService
	limiter *ratelimit.Limiter
	logger  *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	reviews *service.ReviewService,
	ledger *service.LedgerService,
	limiter *ratelimit.Limiter,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		reviews: reviews,
		ledger:  ledger,
		limiter: limiter,
		logger:  logger,
	}
}

// RegisterRoutes attaches all engine routes to the app. Every mutating
// route sits behind the rate limiter; read-only routes do not.
func (h *Handler) RegisterRoutes(app *fiber.App, authSecret string, maxRequests int, window time.Duration) {
	api := app.Group("/api", middleware.Auth(authSecret))
	limited := api.Group("", middleware.RateLimit(h.limiter, maxRequests, window, h.logger))

	limited.Post("/items", h.createItem)
	limited.Delete("/items/:id", h.deleteItem)
	limited.Post("/items/:id/review", h.reviewItem)
	limited.Post("/items/:id/rotate", h.rotateItem)
	limited.Post("/xp", h.awardXP)

	api.Get("/items/due", h.listDue)
	api.Get("/progress", h.getProgress)
	api.Get("/ratelimit", h.rateCheck)
}

// fail maps domain errors onto HTTP statuses. Ownership violations
// were already folded into not-found by the service layer.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrLedgerContention):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "concurrent update, try again"})
	default:
		h.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
