package resolver

import (
	"errors"

	"coin-server/internal/domain/account"
)

var (
	// ErrInvalidChoice 選択肢が無効
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrInvalidTarget 対象が無効（自分自身への強盗など）
	ErrInvalidTarget = errors.New("invalid target")
	// ErrTargetTooPoor 対象の残高が強盗の最低基準未満
	ErrTargetTooPoor = errors.New("target balance below rob threshold")
	// ErrStakeBelowMinimum 賭け金が最低額未満
	ErrStakeBelowMinimum = errors.New("stake below minimum")
)

const (
	// PayoutMin 基本報酬の最小値
	PayoutMin = 120
	// PayoutMax 基本報酬の最大値
	PayoutMax = 450
	// MinGambleStake ギャンブルの最低賭け金
	MinGambleStake = 30
	// MinRobTargetBalance 強盗対象に必要な最低残高
	MinRobTargetBalance = 100
	// CrimeSuccessPercent 犯罪の成功確率 (%)
	CrimeSuccessPercent = 65
	// CrimeRewardMultiplier 犯罪成功時の報酬倍率
	CrimeRewardMultiplier = 3
	// CrimePenaltyMultiplier 犯罪失敗時の罰金倍率
	CrimePenaltyMultiplier = 4
	// RobSuccessPercent 強盗の成功確率 (%)
	RobSuccessPercent = 40
	// RobFinePercent 強盗失敗時の罰金率 (%)
	RobFinePercent = 10
)

// プレゼンテーションタグ
// 描画層への装飾ヒント。コアの契約としては素通しされるだけの文字列
const (
	TagWork         = "work"
	TagCrimeSuccess = "crime_success"
	TagCrimeCaught  = "crime_caught"
	TagBalance      = "balance"
	TagGambleWin    = "gamble_win"
	TagGambleLose   = "gamble_lose"
	TagDaily        = "daily"
	TagRobSuccess   = "rob_success"
	TagRobCaught    = "rob_caught"
	TagRPSWin       = "rps_win"
	TagRPSLose      = "rps_lose"
	TagRPSTie       = "rps_tie"
)

// Rand リゾルバに注入する乱数源
// *math/rand.Randがそのまま満たす
type Rand interface {
	Intn(n int) int
}

// Policy リゾルバの挙動を切り替えるポリシー
type Policy struct {
	// AllowNegativeBalance 罰金で残高がマイナスになることを許すか
	// falseの場合、罰金は残高を上限として切り詰められる
	AllowNegativeBalance bool
}

// Outcome アクションの解決結果
type Outcome struct {
	Success         bool
	Delta           int64 // 残高の符号付き変動額
	TemplateID      string
	BoundValues     map[string]interface{}
	PresentationTag string
}

// payout U(PayoutMin, PayoutMax) の基本報酬を引く
func payout(rng Rand) int64 {
	return int64(PayoutMin + rng.Intn(PayoutMax-PayoutMin+1))
}

// debitWithPolicy ポリシーを適用して残高を減らし、実際に引かれた額を返す
// マイナス残高が許されない場合は残高を上限に切り詰め、ゼロ以下なら何もしない
func debitWithPolicy(acct *account.Account, amount int64, policy Policy) (int64, error) {
	if !policy.AllowNegativeBalance {
		if b := acct.Balance(); amount > b {
			amount = b
		}
	}
	if amount <= 0 {
		return 0, nil
	}
	if err := acct.Debit(amount); err != nil {
		return 0, err
	}
	return amount, nil
}
