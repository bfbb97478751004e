package resolver

import (
	"coin-server/internal/domain/account"
)

// 強盗成功時の奪取率の段階（対象の残高で決まる）
const (
	robTierMidBalance  = 2_500
	robTierHighBalance = 10_000
)

// robTier 対象の残高から奪取率の範囲 (%) を返す
func robTier(targetBalance int64) (lo, hi int) {
	switch {
	case targetBalance < robTierMidBalance:
		return 10, 20
	case targetBalance < robTierHighBalance:
		return 15, 25
	default:
		return 20, 30
	}
}

// Rob 強盗アクションを解決する
// 対象は自分以外かつ残高100以上でなければならない（どちらも状態変更なしで失敗）
// 40%で対象の残高に応じた割合を奪い、失敗すると自分の残高の10%を罰金として払う
func Rob(actor, target *account.Account, policy Policy, rng Rand) (*Outcome, error) {
	if actor.UserID() == target.UserID() {
		return nil, ErrInvalidTarget
	}
	if target.Balance() < MinRobTargetBalance {
		return nil, ErrTargetTooPoor
	}

	if rng.Intn(100) < RobSuccessPercent {
		lo, hi := robTier(target.Balance())
		percent := lo + rng.Intn(hi-lo+1)
		// 整数の切り捨て除算
		amount := target.Balance() * int64(percent) / 100
		if err := account.Transfer(target, actor, amount); err != nil {
			return nil, err
		}

		return &Outcome{
			Success:    true,
			Delta:      amount,
			TemplateID: pickTemplate(rng, "rob_success", robSuccessTemplates),
			BoundValues: map[string]interface{}{
				"user_id":   actor.UserID(),
				"target_id": target.UserID(),
				"amount":    amount,
				"percent":   percent,
			},
			PresentationTag: TagRobSuccess,
		}, nil
	}

	fine := actor.Balance() * RobFinePercent / 100
	debited, err := debitWithPolicy(actor, fine, policy)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Success:    false,
		Delta:      -debited,
		TemplateID: pickTemplate(rng, "rob_caught", robCaughtTemplates),
		BoundValues: map[string]interface{}{
			"user_id":   actor.UserID(),
			"target_id": target.UserID(),
			"amount":    debited,
		},
		PresentationTag: TagRobCaught,
	}, nil
}
