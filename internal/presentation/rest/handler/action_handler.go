package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	economyapp "coin-server/internal/application/economy"
	"coin-server/internal/domain/resolver"
)

// ActionHandler 経済アクションハンドラー
type ActionHandler struct {
	economyService *economyapp.EconomyApplicationService
}

// NewActionHandler 新しいActionHandlerを作成
func NewActionHandler(economyService *economyapp.EconomyApplicationService) *ActionHandler {
	return &ActionHandler{
		economyService: economyService,
	}
}

// Work 労働アクションハンドラー
// @Summary 労働で報酬を得る
// @Description クールダウン中でなければランダムな報酬を付与します
// @Tags actions
// @Produce json
// @Security Bearer
// @Success 200 {object} ActionResponse "アクション成功"
// @Failure 429 {object} middleware.ErrorResponse "クールダウン中"
// @Router /actions/work [post]
func (h *ActionHandler) Work(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	resp, err := h.economyService.Work(c.Request().Context(), &economyapp.ActionRequest{UserID: userID})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toActionResponse(resp))
}

// Crime 犯罪アクションハンドラー
// @Summary 犯罪で一攫千金を狙う
// @Description 65%で大きな報酬、失敗すると罰金を払います
// @Tags actions
// @Produce json
// @Security Bearer
// @Success 200 {object} ActionResponse "アクション成功"
// @Failure 429 {object} middleware.ErrorResponse "クールダウン中"
// @Router /actions/crime [post]
func (h *ActionHandler) Crime(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	resp, err := h.economyService.Crime(c.Request().Context(), &economyapp.ActionRequest{UserID: userID})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toActionResponse(resp))
}

// Daily デイリーボーナスハンドラー
// @Summary デイリーボーナスを受け取る
// @Description 24時間に1回ランダムな報酬を付与します
// @Tags actions
// @Produce json
// @Security Bearer
// @Success 200 {object} ActionResponse "アクション成功"
// @Failure 429 {object} middleware.ErrorResponse "クールダウン中"
// @Router /actions/daily [post]
func (h *ActionHandler) Daily(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	resp, err := h.economyService.Daily(c.Request().Context(), &economyapp.ActionRequest{UserID: userID})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toActionResponse(resp))
}

// Gamble ギャンブルハンドラー
// @Summary 2択のギャンブルに賭ける
// @Description 当たれば賭け金の2倍を獲得、外れると賭け金を失います
// @Tags actions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body GambleRequest true "ギャンブルリクエスト"
// @Success 200 {object} ActionResponse "アクション成功"
// @Failure 400 {object} middleware.ErrorResponse "不正なリクエスト"
// @Failure 409 {object} middleware.ErrorResponse "残高不足"
// @Failure 429 {object} middleware.ErrorResponse "クールダウン中"
// @Router /actions/gamble [post]
func (h *ActionHandler) Gamble(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var reqBody GambleRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	// 賭け金をint64に変換
	stake, err := strconv.ParseInt(reqBody.Stake, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid stake format")
	}

	resp, err := h.economyService.Gamble(c.Request().Context(), &economyapp.GambleRequest{
		UserID: userID,
		Choice: reqBody.Choice,
		Stake:  stake,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toActionResponse(resp))
}

// Rob 強盗ハンドラー
// @Summary 他のユーザーから奪う
// @Description 40%で対象の残高の一部を奪い、失敗すると罰金を払います
// @Tags actions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body RobRequest true "強盗リクエスト"
// @Success 200 {object} ActionResponse "アクション成功"
// @Failure 400 {object} middleware.ErrorResponse "不正な対象"
// @Failure 409 {object} middleware.ErrorResponse "対象の残高不足"
// @Failure 429 {object} middleware.ErrorResponse "クールダウン中"
// @Router /actions/rob [post]
func (h *ActionHandler) Rob(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var reqBody RobRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if reqBody.TargetID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "target_id is required")
	}

	resp, err := h.economyService.Rob(c.Request().Context(), &economyapp.RobRequest{
		UserID:   userID,
		TargetID: reqBody.TargetID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toActionResponse(resp))
}

// RPS じゃんけんハンドラー
// @Summary ボットとじゃんけんする
// @Description 勝敗の戦績を記録します。あいこは戦績を変えません
// @Tags actions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body RPSRequest true "じゃんけんリクエスト"
// @Success 200 {object} ActionResponse "アクション成功"
// @Failure 400 {object} middleware.ErrorResponse "不正な手"
// @Failure 429 {object} middleware.ErrorResponse "クールダウン中"
// @Router /actions/rps [post]
func (h *ActionHandler) RPS(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var reqBody RPSRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.economyService.PlayRPS(c.Request().Context(), &economyapp.RPSRequest{
		UserID:  userID,
		ScopeID: reqBody.GuildID,
		Choice:  reqBody.Choice,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toActionResponse(resp))
}

// GetBalance 残高照会ハンドラー
// @Summary 残高を照会する
// @Description 自分の残高とじゃんけんの戦績を取得します
// @Tags actions
// @Produce json
// @Security Bearer
// @Success 200 {object} BalanceResponse "残高取得成功"
// @Failure 429 {object} middleware.ErrorResponse "クールダウン中"
// @Router /balance [get]
func (h *ActionHandler) GetBalance(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	resp, err := h.economyService.GetBalance(c.Request().Context(), &economyapp.GetBalanceRequest{UserID: userID})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, BalanceResponse{
		UserID:  resp.UserID,
		Balance: strconv.FormatInt(resp.Balance, 10),
		Wins:    resp.Wins,
		Losses:  resp.Losses,
	})
}

// userIDFromContext トークンからuser_idを取得
func userIDFromContext(c echo.Context) (string, error) {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}
	return userID, nil
}

// toActionResponse アプリケーション層のレスポンスをRESTモデルに変換
func toActionResponse(resp *economyapp.ActionResponse) ActionResponse {
	return ActionResponse{
		UserID:      resp.UserID,
		Action:      resp.ActionKind,
		Success:     resp.Success,
		Delta:       strconv.FormatInt(resp.Delta, 10),
		NewBalance:  strconv.FormatInt(resp.NewBalance, 10),
		TemplateID:  resp.TemplateID,
		Message:     renderMessage(resp.TemplateID, resp.BoundValues),
		BoundValues: resp.BoundValues,
		Tag:         resp.PresentationTag,
	}
}

// プレースホルダ名 → 束縛値のキー
var placeholderKeys = map[string]string{
	"user":       "user_id",
	"amount":     "amount",
	"target":     "target_id",
	"choice":     "choice",
	"bot_choice": "bot_choice",
}

// renderMessage テンプレートに束縛値を流し込んで本文を描画する
func renderMessage(templateID string, boundValues map[string]interface{}) string {
	text, ok := resolver.TemplateText(templateID)
	if !ok {
		return ""
	}
	for placeholder, key := range placeholderKeys {
		value, ok := boundValues[key]
		if !ok {
			continue
		}
		text = strings.ReplaceAll(text, "{"+placeholder+"}", fmt.Sprint(value))
	}
	return text
}
