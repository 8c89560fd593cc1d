package handler

import (
	"time"

	"lingualift/internal/domain"
	"lingualift/internal/middleware"
	"lingualift/internal/srs"

	"github.com/gofiber/fiber/v2"
)

type createItemRequest struct {
	Variants []string `json:"variants"`
}

type reviewRequest struct {
	Outcome     string `json:"outcome"`
	AudioPlayed bool   `json:"audio_played"`
}

type itemResponse struct {
	ID                  int64      `json:"id"`
	Variants            []string   `json:"variants"`
	CurrentVariantIndex int        `json:"current_variant_index"`
	EaseFactor          float64    `json:"ease_factor"`
	CurrentIntervalMs   int64      `json:"current_interval_ms"`
	ConsecutiveCorrect  int        `json:"consecutive_correct"`
	NextReviewAt        time.Time  `json:"next_review_at"`
	LastReviewedAt      *time.Time `json:"last_reviewed_at,omitempty"`
}

func toItemResponse(item *domain.LearningItem) itemResponse {
	return itemResponse{
		ID:                  item.ID,
		Variants:            item.Variants,
		CurrentVariantIndex: item.CurrentVariantIndex,
		EaseFactor:          item.EaseFactor,
		CurrentIntervalMs:   item.CurrentIntervalMs,
		ConsecutiveCorrect:  item.ConsecutiveCorrect,
		NextReviewAt:        item.NextReviewAt,
		LastReviewedAt:      item.LastReviewedAt,
	}
}

func (h *Handler) createItem(c *fiber.Ctx) error {
	var req createItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	item, err := h.reviews.CreateItem(middleware.CallerID(c), req.Variants)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
}

func (h *Handler) deleteItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	if err := h.reviews.DeleteItem(middleware.CallerID(c), int64(itemID)); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// reviewItem applies a review outcome. Successful reviews also earn
// XP: the base tariff, or the audio tariff when the engagement flag is
// set. The amount itself is never taken from the client.
func (h *Handler) reviewItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	outcome, err := srs.ParseOutcome(req.Outcome)
	if err != nil {
		return h.fail(c, err)
	}

	item, err := h.reviews.SubmitReview(middleware.CallerID(c), int64(itemID), outcome)
	if err != nil {
		return h.fail(c, err)
	}

	resp := fiber.Map{"item": toItemResponse(item)}

	if outcome == srs.OutcomeSuccess {
		reason := domain.RewardReview
		if req.AudioPlayed {
			reason = domain.RewardReviewAudio
		}
		award, err := h.ledger.Award(middleware.CallerID(c), reason)
		if err != nil {
			return h.fail(c, err)
		}
		resp["award"] = fiber.Map{
			"total_xp":     award.TotalXP,
			"streak_count": award.StreakCount,
		}
	}

	return c.JSON(resp)
}

func (h *Handler) rotateItem(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	item, err := h.reviews.RotateVariant(middleware.CallerID(c), int64(itemID))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toItemResponse(item))
}

func (h *Handler) listDue(c *fiber.Ctx) error {
	items, err := h.reviews.DueItems(middleware.CallerID(c), c.QueryInt("limit"))
	if err != nil {
		return h.fail(c, err)
	}

	resp := make([]itemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toItemResponse(&items[i]))
	}

	return c.JSON(fiber.Map{"items": resp})
}
