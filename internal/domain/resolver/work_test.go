package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coin-server/internal/domain/account"
)

func TestWork(t *testing.T) {
	t.Run("正常系: 報酬が付与される", func(t *testing.T) {
		acct := account.MustNewAccount("user123", 1000, 0, 0)
		// payout=120+80=200, テンプレートは3番目
		rng := &stubRand{values: []int{80, 2}}

		outcome, err := Work(acct, rng)

		require.NoError(t, err)
		assert.True(t, outcome.Success)
		assert.Equal(t, int64(200), outcome.Delta)
		assert.Equal(t, int64(1200), acct.Balance())
		assert.Equal(t, "work_03", outcome.TemplateID)
		assert.Equal(t, TagWork, outcome.PresentationTag)
		assert.Equal(t, "user123", outcome.BoundValues["user_id"])
		assert.Equal(t, int64(200), outcome.BoundValues["amount"])
	})
}

func TestDaily(t *testing.T) {
	t.Run("正常系: デイリーボーナスが付与される", func(t *testing.T) {
		acct := account.MustNewAccount("user123", 0, 0, 0)
		rng := &stubRand{values: []int{0, 0}}

		outcome, err := Daily(acct, rng)

		require.NoError(t, err)
		assert.True(t, outcome.Success)
		assert.Equal(t, int64(PayoutMin), outcome.Delta)
		assert.Equal(t, int64(PayoutMin), acct.Balance())
		assert.Equal(t, "daily_01", outcome.TemplateID)
		assert.Equal(t, TagDaily, outcome.PresentationTag)
	})
}
