package economy

// ActionRequest 引数なしアクション (work, crime, daily) のリクエスト
type ActionRequest struct {
	UserID string
}

// GambleRequest ギャンブルリクエスト
type GambleRequest struct {
	UserID string
	Choice int // 1 or 2
	Stake  int64
}

// RobRequest 強盗リクエスト
type RobRequest struct {
	UserID   string
	TargetID string
}

// RPSRequest じゃんけんリクエスト
type RPSRequest struct {
	UserID  string
	ScopeID string // ギルドID。クールダウンの追跡キーに使う（空の場合はUserID）
	Choice  string // "rock", "paper", "scissors"
}

// ActionResponse アクションの解決結果レスポンス
type ActionResponse struct {
	UserID          string
	ActionKind      string
	Success         bool
	Delta           int64
	NewBalance      int64
	TemplateID      string
	BoundValues     map[string]interface{}
	PresentationTag string
}

// GetBalanceRequest 残高照会リクエスト
type GetBalanceRequest struct {
	UserID string
}

// GetBalanceResponse 残高照会レスポンス
type GetBalanceResponse struct {
	UserID          string
	Balance         int64
	Wins            int
	Losses          int
	TemplateID      string
	PresentationTag string
}

// AdjustRequest 管理APIによる残高調整リクエスト
type AdjustRequest struct {
	UserID string
	Amount int64
	Reason string
}

// AdjustResponse 管理APIによる残高調整レスポンス
type AdjustResponse struct {
	UserID       string
	BalanceAfter int64
}
