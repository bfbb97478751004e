package handler

// AdjustRequest 残高調整リクエスト
// @Description 残高調整リクエスト
type AdjustRequest struct {
	Amount string `json:"amount" example:"500"`
	Reason string `json:"reason" example:"イベント報酬"`
}

// AdjustResponse 残高調整レスポンス
// @Description 残高調整レスポンス
type AdjustResponse struct {
	UserID       string `json:"user_id" example:"user123"`
	BalanceAfter string `json:"balance_after" example:"1800"`
}
