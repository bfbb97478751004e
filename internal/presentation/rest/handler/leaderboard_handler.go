package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	leaderboardapp "coin-server/internal/application/leaderboard"
)

// LeaderboardHandler ランキングハンドラー
type LeaderboardHandler struct {
	leaderboardService *leaderboardapp.LeaderboardApplicationService
}

// NewLeaderboardHandler 新しいLeaderboardHandlerを作成
func NewLeaderboardHandler(leaderboardService *leaderboardapp.LeaderboardApplicationService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard ランキング取得ハンドラー
// @Summary 残高ランキングを取得
// @Description 名簿に含まれるユーザーの残高ランキングを取得します
// @Tags leaderboard
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body LeaderboardRequest true "ランキング取得リクエスト"
// @Success 200 {object} LeaderboardResponse "ランキング取得成功"
// @Failure 400 {object} middleware.ErrorResponse "不正なリクエスト"
// @Router /leaderboard [post]
func (h *LeaderboardHandler) GetLeaderboard(c echo.Context) error {
	var reqBody LeaderboardRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(reqBody.Roster) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "roster is required")
	}

	roster := make([]leaderboardapp.Member, len(reqBody.Roster))
	for i, m := range reqBody.Roster {
		roster[i] = leaderboardapp.Member{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
		}
	}

	resp, err := h.leaderboardService.GetLeaderboard(c.Request().Context(), &leaderboardapp.GetLeaderboardRequest{
		Roster: roster,
		Limit:  reqBody.Limit,
	})
	if err != nil {
		return err
	}

	entries := make([]LeaderboardEntry, len(resp.Entries))
	for i, e := range resp.Entries {
		entries[i] = LeaderboardEntry{
			Rank:        e.Rank,
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			Balance:     strconv.FormatInt(e.Balance, 10),
		}
	}

	return c.JSON(http.StatusOK, LeaderboardResponse{Entries: entries})
}
