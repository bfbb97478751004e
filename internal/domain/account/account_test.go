package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		balance   int64
		wins      int
		losses    int
		wantError error
	}{
		{
			name:    "正常系: 通常のアカウント作成",
			userID:  "user123",
			balance: 1000,
			wins:    3,
			losses:  2,
		},
		{
			name:    "正常系: マイナス残高のアカウント作成",
			userID:  "user123",
			balance: -500,
		},
		{
			name:    "正常系: 記号を含むユーザーID",
			userID:  "user_1-2.3@example",
			balance: 0,
		},
		{
			name:      "異常系: 空のユーザーID",
			userID:    "",
			balance:   0,
			wantError: ErrInvalidUserID,
		},
		{
			name:      "異常系: 無効な文字を含むユーザーID",
			userID:    "user 123",
			balance:   0,
			wantError: ErrInvalidUserID,
		},
		{
			name:      "異常系: 残高が上限超過",
			userID:    "user123",
			balance:   MaxAmount + 1,
			wantError: ErrBalanceOutOfRange,
		},
		{
			name:      "異常系: 残高が下限未満",
			userID:    "user123",
			balance:   MinBalance - 1,
			wantError: ErrBalanceOutOfRange,
		},
		{
			name:      "異常系: マイナスの勝利数",
			userID:    "user123",
			balance:   0,
			wins:      -1,
			wantError: ErrInvalidTally,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAccount(tt.userID, tt.balance, tt.wins, tt.losses)

			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.userID, got.UserID())
			assert.Equal(t, tt.balance, got.Balance())
			assert.Equal(t, tt.wins, got.Wins())
			assert.Equal(t, tt.losses, got.Losses())
		})
	}
}

func TestAccount_Credit(t *testing.T) {
	tests := []struct {
		name        string
		account     *Account
		amount      int64
		wantBalance int64
		wantError   error
	}{
		{
			name:        "正常系: 残高を増やす",
			account:     MustNewAccount("user123", 1000, 0, 0),
			amount:      500,
			wantBalance: 1500,
		},
		{
			name:        "正常系: マイナス残高から増やす",
			account:     MustNewAccount("user123", -100, 0, 0),
			amount:      300,
			wantBalance: 200,
		},
		{
			name:        "異常系: ゼロの付与",
			account:     MustNewAccount("user123", 1000, 0, 0),
			amount:      0,
			wantBalance: 1000,
			wantError:   ErrInvalidAmount,
		},
		{
			name:        "異常系: マイナスの付与",
			account:     MustNewAccount("user123", 1000, 0, 0),
			amount:      -100,
			wantBalance: 1000,
			wantError:   ErrInvalidAmount,
		},
		{
			name:        "異常系: 上限を超える付与",
			account:     MustNewAccount("user123", MaxAmount-10, 0, 0),
			amount:      100,
			wantBalance: MaxAmount - 10,
			wantError:   ErrBalanceOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Credit(tt.amount)

			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantBalance, tt.account.Balance())
		})
	}
}

func TestAccount_Debit(t *testing.T) {
	tests := []struct {
		name        string
		account     *Account
		amount      int64
		wantBalance int64
		wantError   error
	}{
		{
			name:        "正常系: 残高を減らす",
			account:     MustNewAccount("user123", 1000, 0, 0),
			amount:      400,
			wantBalance: 600,
		},
		{
			name:        "正常系: 残高を超えて減らす（マイナス残高）",
			account:     MustNewAccount("user123", 100, 0, 0),
			amount:      500,
			wantBalance: -400,
		},
		{
			name:        "異常系: ゼロの減算",
			account:     MustNewAccount("user123", 1000, 0, 0),
			amount:      0,
			wantBalance: 1000,
			wantError:   ErrInvalidAmount,
		},
		{
			name:        "異常系: 下限を下回る減算",
			account:     MustNewAccount("user123", MinBalance+10, 0, 0),
			amount:      100,
			wantBalance: MinBalance + 10,
			wantError:   ErrBalanceOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Debit(tt.amount)

			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantBalance, tt.account.Balance())
		})
	}
}

func TestAccount_RecordWinLoss(t *testing.T) {
	a := MustNewAccount("user123", 0, 0, 0)

	a.RecordWin()
	a.RecordWin()
	a.RecordLoss()

	assert.Equal(t, 2, a.Wins())
	assert.Equal(t, 1, a.Losses())
}

func TestAccount_Clone(t *testing.T) {
	a := MustNewAccount("user123", 1000, 2, 1)
	c := a.Clone()

	require.NoError(t, a.Credit(500))
	a.RecordWin()

	// 複製は元の変更の影響を受けない
	assert.Equal(t, int64(1000), c.Balance())
	assert.Equal(t, 2, c.Wins())
	assert.Equal(t, int64(1500), a.Balance())
}

func TestTransfer(t *testing.T) {
	t.Run("正常系: 残高を移動", func(t *testing.T) {
		from := MustNewAccount("user123", 1000, 0, 0)
		to := MustNewAccount("user456", 200, 0, 0)

		err := Transfer(from, to, 300)

		require.NoError(t, err)
		assert.Equal(t, int64(700), from.Balance())
		assert.Equal(t, int64(500), to.Balance())
	})

	t.Run("異常系: 無効な金額では状態を変えない", func(t *testing.T) {
		from := MustNewAccount("user123", 1000, 0, 0)
		to := MustNewAccount("user456", 200, 0, 0)

		err := Transfer(from, to, 0)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Equal(t, int64(1000), from.Balance())
		assert.Equal(t, int64(200), to.Balance())
	})

	t.Run("異常系: 受け取り側が上限超過の場合は送金を取り消す", func(t *testing.T) {
		from := MustNewAccount("user123", 1000, 0, 0)
		to := MustNewAccount("user456", MaxAmount-10, 0, 0)

		err := Transfer(from, to, 100)

		assert.ErrorIs(t, err, ErrBalanceOutOfRange)
		assert.Equal(t, int64(1000), from.Balance())
		assert.Equal(t, int64(MaxAmount-10), to.Balance())
	})
}
