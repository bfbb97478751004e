package middleware

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"coin-server/internal/domain/account"
	"coin-server/internal/domain/cooldown"
	"coin-server/internal/domain/resolver"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error             string  `json:"error"`
	Message           string  `json:"message"`
	RetryAfterSeconds float64 `json:"retry_after_seconds,omitempty"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// エラーハンドリング
			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	// クールダウン中: 残り待ち時間付きで429を返す
	var active *cooldown.ActiveError
	if errors.As(err, &active) {
		logger.Warn(ctx, "Action on cooldown", map[string]interface{}{
			"action_kind":       active.Kind.String(),
			"remaining_seconds": active.Remaining.Seconds(),
		})
		c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(active.Remaining.Seconds()))))
		return c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error:             "cooldown_active",
			Message:           err.Error(),
			RetryAfterSeconds: active.Remaining.Seconds(),
		})
	}

	if errors.Is(err, account.ErrInsufficientBalance) {
		logger.Warn(ctx, "Insufficient balance", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "insufficient_balance",
			Message: err.Error(),
		})
	}

	if errors.Is(err, resolver.ErrTargetTooPoor) {
		logger.Warn(ctx, "Target too poor", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "target_too_poor",
			Message: err.Error(),
		})
	}

	if errors.Is(err, resolver.ErrInvalidChoice) {
		logger.Warn(ctx, "Invalid choice", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_choice",
			Message: err.Error(),
		})
	}

	if errors.Is(err, resolver.ErrInvalidTarget) {
		logger.Warn(ctx, "Invalid target", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_target",
			Message: err.Error(),
		})
	}

	if errors.Is(err, resolver.ErrStakeBelowMinimum) {
		logger.Warn(ctx, "Stake below minimum", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "stake_below_minimum",
			Message: err.Error(),
		})
	}

	if errors.Is(err, account.ErrInvalidAmount) || errors.Is(err, account.ErrAmountTooLarge) {
		logger.Warn(ctx, "Invalid amount", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_amount",
			Message: err.Error(),
		})
	}

	if errors.Is(err, account.ErrInvalidUserID) {
		logger.Warn(ctx, "Invalid user id", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_user_id",
			Message: err.Error(),
		})
	}

	if errors.Is(err, account.ErrBalanceOutOfRange) {
		logger.Warn(ctx, "Balance out of range", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "balance_out_of_range",
			Message: err.Error(),
		})
	}

	if errors.Is(err, account.ErrAccountNotFound) {
		logger.Warn(ctx, "Account not found", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "account_not_found",
			Message: err.Error(),
		})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー（保存失敗を含む）
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
