package handler

// RosterMember 名簿エントリ
// @Description 名簿エントリ
type RosterMember struct {
	UserID      string `json:"user_id" example:"user123"`
	DisplayName string `json:"display_name" example:"Alice"`
}

// LeaderboardRequest ランキング取得リクエスト
// @Description ランキング取得リクエスト
type LeaderboardRequest struct {
	Roster []RosterMember `json:"roster"`
	Limit  int            `json:"limit,omitempty" example:"10"`
}

// LeaderboardEntry ランキングの1行
// @Description ランキングの1行
type LeaderboardEntry struct {
	Rank        int    `json:"rank" example:"1"`
	UserID      string `json:"user_id" example:"user123"`
	DisplayName string `json:"display_name" example:"Alice"`
	Balance     string `json:"balance" example:"9000"`
}

// LeaderboardResponse ランキング取得レスポンス
// @Description ランキング取得レスポンス
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
