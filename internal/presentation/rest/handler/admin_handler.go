package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	economyapp "coin-server/internal/application/economy"
)

// AdminHandler 管理APIハンドラー
type AdminHandler struct {
	economyService *economyapp.EconomyApplicationService
}

// NewAdminHandler 新しいAdminHandlerを作成
func NewAdminHandler(economyService *economyapp.EconomyApplicationService) *AdminHandler {
	return &AdminHandler{
		economyService: economyService,
	}
}

// Grant 残高付与ハンドラー（管理API用）
// @Summary 残高を付与（管理API）
// @Description 指定されたユーザーに残高を付与します
// @Tags admin
// @Accept json
// @Produce json
// @Param user_id path string true "ユーザーID" example(user123)
// @Param X-API-Key header string true "APIキー"
// @Param request body AdjustRequest true "残高調整リクエスト"
// @Success 200 {object} AdjustResponse "付与成功"
// @Failure 400 {object} middleware.ErrorResponse "不正なリクエスト"
// @Failure 401 {object} middleware.ErrorResponse "認証エラー"
// @Router /admin/users/{user_id}/grant [post]
func (h *AdminHandler) Grant(c echo.Context) error {
	return h.adjust(c, h.economyService.Grant)
}

// Deduct 残高没収ハンドラー（管理API用）
// @Summary 残高を没収（管理API）
// @Description 指定されたユーザーの残高を減らします
// @Tags admin
// @Accept json
// @Produce json
// @Param user_id path string true "ユーザーID" example(user123)
// @Param X-API-Key header string true "APIキー"
// @Param request body AdjustRequest true "残高調整リクエスト"
// @Success 200 {object} AdjustResponse "没収成功"
// @Failure 400 {object} middleware.ErrorResponse "不正なリクエスト"
// @Failure 401 {object} middleware.ErrorResponse "認証エラー"
// @Router /admin/users/{user_id}/deduct [post]
func (h *AdminHandler) Deduct(c echo.Context) error {
	return h.adjust(c, h.economyService.Deduct)
}

// adjust 残高調整の共通実装
func (h *AdminHandler) adjust(
	c echo.Context,
	apply func(ctx context.Context, req *economyapp.AdjustRequest) (*economyapp.AdjustResponse, error),
) error {
	userID := c.Param("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	var reqBody AdjustRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	// 金額をint64に変換
	amount, err := strconv.ParseInt(reqBody.Amount, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amount format")
	}

	resp, err := apply(c.Request().Context(), &economyapp.AdjustRequest{
		UserID: userID,
		Amount: amount,
		Reason: reqBody.Reason,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AdjustResponse{
		UserID:       resp.UserID,
		BalanceAfter: strconv.FormatInt(resp.BalanceAfter, 10),
	})
}
