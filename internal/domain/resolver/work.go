package resolver

import (
	"coin-server/internal/domain/account"
)

// Work 労働アクションを解決する
// U(120,450) の報酬を必ず付与する
func Work(acct *account.Account, rng Rand) (*Outcome, error) {
	amount := payout(rng)
	if err := acct.Credit(amount); err != nil {
		return nil, err
	}

	return &Outcome{
		Success:    true,
		Delta:      amount,
		TemplateID: pickTemplate(rng, "work", workTemplates),
		BoundValues: map[string]interface{}{
			"user_id": acct.UserID(),
			"amount":  amount,
		},
		PresentationTag: TagWork,
	}, nil
}

// Daily デイリーボーナスを解決する
// クールダウン（24時間）のみで制御される無条件の付与
func Daily(acct *account.Account, rng Rand) (*Outcome, error) {
	amount := payout(rng)
	if err := acct.Credit(amount); err != nil {
		return nil, err
	}

	return &Outcome{
		Success:    true,
		Delta:      amount,
		TemplateID: pickTemplate(rng, "daily", dailyTemplates),
		BoundValues: map[string]interface{}{
			"user_id": acct.UserID(),
			"amount":  amount,
		},
		PresentationTag: TagDaily,
	}, nil
}
