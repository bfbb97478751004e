package resolver

import (
	"strings"

	"coin-server/internal/domain/account"
)

// じゃんけんの手
const (
	RPSRock     = "rock"
	RPSPaper    = "paper"
	RPSScissors = "scissors"
)

var rpsChoices = []string{RPSRock, RPSPaper, RPSScissors}

// beats 手 → その手が勝てる相手の手
var beats = map[string]string{
	RPSRock:     RPSScissors,
	RPSPaper:    RPSRock,
	RPSScissors: RPSPaper,
}

// RPS じゃんけんアクションを解決する
// 勝ちはwins、負けはlossesを1増やし、あいこはどちらも変えない
// 結果には常に更新後の戦績を含める
func RPS(acct *account.Account, choice string, rng Rand) (*Outcome, error) {
	choice = strings.ToLower(choice)
	if _, ok := beats[choice]; !ok {
		return nil, ErrInvalidChoice
	}

	botChoice := rpsChoices[rng.Intn(len(rpsChoices))]

	var templateID, tag string
	var success bool
	switch {
	case choice == botChoice:
		templateID = "rps_tie"
		tag = TagRPSTie
	case beats[choice] == botChoice:
		acct.RecordWin()
		templateID = "rps_win"
		tag = TagRPSWin
		success = true
	default:
		acct.RecordLoss()
		templateID = "rps_lose"
		tag = TagRPSLose
	}

	return &Outcome{
		Success:    success,
		Delta:      0,
		TemplateID: templateID,
		BoundValues: map[string]interface{}{
			"user_id":    acct.UserID(),
			"choice":     choice,
			"bot_choice": botChoice,
			"wins":       acct.Wins(),
			"losses":     acct.Losses(),
		},
		PresentationTag: tag,
	}, nil
}
