package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewardReason_Amount(t *testing.T) {
	amount, ok := RewardReview.Amount()
	assert.True(t, ok)
	assert.Equal(t, 10, amount)

	amount, ok = RewardReviewAudio.Amount()
	assert.True(t, ok)
	assert.Equal(t, 15, amount)

	_, ok = RewardReason("jackpot").Amount()
	assert.False(t, ok)
}
