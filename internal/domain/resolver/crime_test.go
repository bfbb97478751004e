package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coin-server/internal/domain/account"
)

func TestCrime(t *testing.T) {
	t.Run("正常系: 成功で基本報酬の3倍を獲得", func(t *testing.T) {
		acct := account.MustNewAccount("user123", 0, 0, 0)
		// 判定64 (<65で成功), payout=120+100=220, テンプレート1番目
		rng := &stubRand{values: []int{64, 100, 0}}

		outcome, err := Crime(acct, Policy{AllowNegativeBalance: true}, rng)

		require.NoError(t, err)
		assert.True(t, outcome.Success)
		assert.Equal(t, int64(660), outcome.Delta)
		assert.Equal(t, int64(660), acct.Balance())
		assert.Equal(t, "crime_success_01", outcome.TemplateID)
		assert.Equal(t, TagCrimeSuccess, outcome.PresentationTag)
	})

	t.Run("正常系: 失敗で基本報酬の4倍の罰金（マイナス残高あり）", func(t *testing.T) {
		acct := account.MustNewAccount("user123", 100, 0, 0)
		// 判定65 (>=65で失敗), payout=120, 罰金480
		rng := &stubRand{values: []int{65, 0, 0}}

		outcome, err := Crime(acct, Policy{AllowNegativeBalance: true}, rng)

		require.NoError(t, err)
		assert.False(t, outcome.Success)
		assert.Equal(t, int64(-480), outcome.Delta)
		assert.Equal(t, int64(-380), acct.Balance())
		assert.Equal(t, "crime_caught_01", outcome.TemplateID)
		assert.Equal(t, TagCrimeCaught, outcome.PresentationTag)
	})

	t.Run("正常系: マイナス残高不許可では罰金が残高で切り詰められる", func(t *testing.T) {
		acct := account.MustNewAccount("user123", 100, 0, 0)
		rng := &stubRand{values: []int{99, 0, 0}}

		outcome, err := Crime(acct, Policy{AllowNegativeBalance: false}, rng)

		require.NoError(t, err)
		assert.False(t, outcome.Success)
		assert.Equal(t, int64(-100), outcome.Delta)
		assert.Equal(t, int64(0), acct.Balance())
	})
}
