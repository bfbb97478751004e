package resolver

import (
	"coin-server/internal/domain/account"
)

// Crime 犯罪アクションを解決する
// 65%で基本報酬の3倍を獲得し、失敗すると基本報酬の4倍の罰金を払う
// 罰金は床なし（ポリシーで許可されていればマイナス残高になりうる）
func Crime(acct *account.Account, policy Policy, rng Rand) (*Outcome, error) {
	if rng.Intn(100) < CrimeSuccessPercent {
		amount := payout(rng) * CrimeRewardMultiplier
		if err := acct.Credit(amount); err != nil {
			return nil, err
		}

		return &Outcome{
			Success:    true,
			Delta:      amount,
			TemplateID: pickTemplate(rng, "crime_success", crimeSuccessTemplates),
			BoundValues: map[string]interface{}{
				"user_id": acct.UserID(),
				"amount":  amount,
			},
			PresentationTag: TagCrimeSuccess,
		}, nil
	}

	amount := payout(rng) * CrimePenaltyMultiplier
	debited, err := debitWithPolicy(acct, amount, policy)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Success:    false,
		Delta:      -debited,
		TemplateID: pickTemplate(rng, "crime_caught", crimeCaughtTemplates),
		BoundValues: map[string]interface{}{
			"user_id": acct.UserID(),
			"amount":  debited,
		},
		PresentationTag: TagCrimeCaught,
	}, nil
}
