package account

import (
	"errors"
	"regexp"
)

var (
	// ErrInvalidUserID ユーザーIDが無効
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrBalanceOutOfRange 残高が範囲外
	ErrBalanceOutOfRange = errors.New("balance out of range")
	// ErrAmountTooLarge 金額が大きすぎる
	ErrAmountTooLarge = errors.New("amount too large")
)

const (
	// MaxAmount 最大金額 (10兆)
	MaxAmount = 10_000_000_000_000
	// MinBalance 最小残高 (-10兆: 罰金によるマイナス残高許容のため)
	MinBalance = -10_000_000_000_000
)

var userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)

// Account ユーザーごとの経済アカウントエンティティ
// 残高とじゃんけんの勝敗数を保持する
type Account struct {
	userID  string
	balance int64 // 整数値（小数点なし）、マイナス値を許可
	wins    int
	losses  int
}

// NewAccount 新しいAccountエンティティを作成
func NewAccount(userID string, balance int64, wins, losses int) (*Account, error) {
	if !userIDRegex.MatchString(userID) {
		return nil, ErrInvalidUserID
	}
	if balance < MinBalance || balance > MaxAmount {
		return nil, ErrBalanceOutOfRange
	}
	if wins < 0 || losses < 0 {
		return nil, ErrInvalidTally
	}
	return &Account{
		userID:  userID,
		balance: balance,
		wins:    wins,
		losses:  losses,
	}, nil
}

// NewEmptyAccount 残高ゼロのAccountエンティティを作成（遅延作成用の既定レコード）
func NewEmptyAccount(userID string) (*Account, error) {
	return NewAccount(userID, 0, 0, 0)
}

// UserID ユーザーIDを返す
func (a *Account) UserID() string {
	return a.userID
}

// Balance 残高を返す
func (a *Account) Balance() int64 {
	return a.balance
}

// Wins じゃんけんの勝利数を返す
func (a *Account) Wins() int {
	return a.wins
}

// Losses じゃんけんの敗北数を返す
func (a *Account) Losses() int {
	return a.losses
}

// Credit 残高を増やす
func (a *Account) Credit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return ErrAmountTooLarge
	}
	// オーバーフローチェック
	if a.balance > MaxAmount-amount {
		return ErrBalanceOutOfRange
	}
	a.balance += amount
	return nil
}

// Debit 残高を減らす
// 台帳自体はゼロ床を適用しない。マイナス残高を許すかどうかは各リゾルバのポリシー
func (a *Account) Debit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return ErrAmountTooLarge
	}
	// アンダーフローチェック (MinBalanceを下回らないか)
	if a.balance < MinBalance+amount {
		return ErrBalanceOutOfRange
	}
	a.balance -= amount
	return nil
}

// RecordWin じゃんけんの勝利を記録
func (a *Account) RecordWin() {
	a.wins++
}

// RecordLoss じゃんけんの敗北を記録
func (a *Account) RecordLoss() {
	a.losses++
}

// Clone アカウントの複製を返す（保存失敗時のロールバック用）
func (a *Account) Clone() *Account {
	c := *a
	return &c
}

// Transfer fromからtoへ金額を移動する
// debitとcreditを1つの論理単位として適用し、credit失敗時はdebitを取り消す
func Transfer(from, to *Account, amount int64) error {
	if err := from.Debit(amount); err != nil {
		return err
	}
	if err := to.Credit(amount); err != nil {
		from.balance += amount
		return err
	}
	return nil
}

// MustNewAccount テスト用ヘルパー: NewAccountを呼び出し、エラーが発生した場合はpanicする
func MustNewAccount(userID string, balance int64, wins, losses int) *Account {
	a, err := NewAccount(userID, balance, wins, losses)
	if err != nil {
		panic(err)
	}
	return a
}
