package handler

// ActionResponse アクション結果レスポンス
// @Description アクション結果レスポンス
type ActionResponse struct {
	UserID      string                 `json:"user_id" example:"user123"`
	Action      string                 `json:"action" example:"work"`
	Success     bool                   `json:"success" example:"true"`
	Delta       string                 `json:"delta" example:"300"`
	NewBalance  string                 `json:"new_balance" example:"1300"`
	TemplateID  string                 `json:"template_id" example:"work_03"`
	Message     string                 `json:"message,omitempty" example:"user123はジュースを売って300コイン稼いだ"`
	BoundValues map[string]interface{} `json:"bound_values,omitempty"`
	Tag         string                 `json:"tag" example:"work"`
}

// GambleRequest ギャンブルリクエスト
// @Description ギャンブルリクエスト
type GambleRequest struct {
	Choice int    `json:"choice" example:"1" enums:"1,2"`
	Stake  string `json:"stake" example:"100"`
}

// RobRequest 強盗リクエスト
// @Description 強盗リクエスト
type RobRequest struct {
	TargetID string `json:"target_id" example:"user456"`
}

// RPSRequest じゃんけんリクエスト
// @Description じゃんけんリクエスト
type RPSRequest struct {
	Choice  string `json:"choice" example:"rock" enums:"rock,paper,scissors"`
	GuildID string `json:"guild_id,omitempty" example:"guild789"`
}

// BalanceResponse 残高照会レスポンス
// @Description 残高照会レスポンス
type BalanceResponse struct {
	UserID  string `json:"user_id" example:"user123"`
	Balance string `json:"balance" example:"1300"`
	Wins    int    `json:"wins" example:"4"`
	Losses  int    `json:"losses" example:"2"`
}
