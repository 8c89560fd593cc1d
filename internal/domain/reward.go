package domain

// RewardReason identifies why XP is being awarded. Amounts are fixed
// server-side; a client-supplied number is never accepted.
type RewardReason string

const (
	// RewardReview is the base reward for a successful review.
	RewardReview RewardReason = "review"
	// RewardReviewAudio is the higher reward for a review where the
	// audio engagement condition was also met.
	RewardReviewAudio RewardReason = "review_audio"
)

var rewardTariff = map[RewardReason]int{
	RewardReview:      10,
	RewardReviewAudio: 15,
}

// Amount returns the XP amount for the reason, or false if the reason
// is not part of the tariff.
func (r RewardReason) Amount() (int, bool) {
	amount, ok := rewardTariff[r]
	return amount, ok
}
