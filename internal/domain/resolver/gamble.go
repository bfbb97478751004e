package resolver

import (
	"coin-server/internal/domain/account"
)

// ギャンブルの選択肢（2択）
const (
	GambleChoiceA = 1
	GambleChoiceB = 2
)

// Gamble ギャンブルアクションを解決する
// 2択を当てると賭け金の2倍を獲得し、外すと賭け金を失う
// 前提条件を満たさない場合は状態を変更せずエラーを返す
func Gamble(acct *account.Account, choice int, stake int64, rng Rand) (*Outcome, error) {
	if choice != GambleChoiceA && choice != GambleChoiceB {
		return nil, ErrInvalidChoice
	}
	if acct.Balance() == 0 || stake > acct.Balance() {
		return nil, account.ErrInsufficientBalance
	}
	if stake < MinGambleStake {
		return nil, ErrStakeBelowMinimum
	}

	outcome := rng.Intn(2) + 1

	if choice == outcome {
		winnings := stake * 2
		if err := acct.Credit(winnings); err != nil {
			return nil, err
		}

		return &Outcome{
			Success:    true,
			Delta:      winnings,
			TemplateID: "gamble_win",
			BoundValues: map[string]interface{}{
				"user_id": acct.UserID(),
				"choice":  choice,
				"outcome": outcome,
				"stake":   stake,
				"amount":  winnings,
			},
			PresentationTag: TagGambleWin,
		}, nil
	}

	if err := acct.Debit(stake); err != nil {
		return nil, err
	}

	return &Outcome{
		Success:    false,
		Delta:      -stake,
		TemplateID: "gamble_lose",
		BoundValues: map[string]interface{}{
			"user_id": acct.UserID(),
			"choice":  choice,
			"outcome": outcome,
			"stake":   stake,
			"amount":  stake,
		},
		PresentationTag: TagGambleLose,
	}, nil
}
