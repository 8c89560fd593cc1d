package handler

import (
	"time"

	"lingualift/internal/domain"
	"lingualift/internal/middleware"
	"lingualift/internal/ratelimit"

	"github.com/gofiber/fiber/v2"
)

type awardRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) awardXP(c *fiber.Ctx) error {
	var req awardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	award, err := h.ledger.Award(middleware.CallerID(c), domain.RewardReason(req.Reason))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"total_xp":     award.TotalXP,
		"streak_count": award.StreakCount,
	})
}

// getProgress serves the dashboard read path. The effective streak is
// projected from the stored snapshot; nothing is written here.
func (h *Handler) getProgress(c *fiber.Ctx) error {
	snapshot, err := h.ledger.Progress(middleware.CallerID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"total_xp":         snapshot.TotalXP,
		"monthly_xp":       snapshot.MonthlyXP,
		"streak_count":     snapshot.StreakCount,
		"effective_streak": snapshot.EffectiveStreak,
		"is_premium":       snapshot.IsPremium,
	})
}

// rateCheck lets the surrounding system probe a policy for an explicit
// subject key before invoking a protected endpoint.
func (h *Handler) rateCheck(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		key = ratelimit.ClientKey(c.Get("X-Real-IP"), c.Get("X-Forwarded-For"))
	}

	maxRequests := c.QueryInt("max", 60)
	windowMs := c.QueryInt("window_ms", 60000)

	res, err := h.limiter.Check(key, maxRequests, time.Duration(windowMs)*time.Millisecond)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"allowed":   res.Allowed,
		"remaining": res.Remaining,
		"reset_at":  res.ResetAt.UTC(),
	})
}
