package leaderboard

// Member ランキング対象の名簿エントリ
type Member struct {
	UserID      string
	DisplayName string
}

// GetLeaderboardRequest ランキング取得リクエスト
// Rosterは呼び出し側（チャットアダプタ）が提供するメンバー名簿
type GetLeaderboardRequest struct {
	Roster []Member
	Limit  int
}

// Entry ランキングの1行
type Entry struct {
	Rank        int
	UserID      string
	DisplayName string
	Balance     int64
}

// GetLeaderboardResponse ランキング取得レスポンス
type GetLeaderboardResponse struct {
	Entries []Entry
}
