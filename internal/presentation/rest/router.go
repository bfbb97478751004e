package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	economyapp "coin-server/internal/application/economy"
	leaderboardapp "coin-server/internal/application/leaderboard"
	"coin-server/internal/infrastructure/config"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
	"coin-server/internal/presentation/rest/handler"
	restmiddleware "coin-server/internal/presentation/rest/middleware"
)

// Router REST APIルーター
type Router struct {
	echo               *echo.Echo
	actionHandler      *handler.ActionHandler
	leaderboardHandler *handler.LeaderboardHandler
	adminHandler       *handler.AdminHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	economyService *economyapp.EconomyApplicationService,
	leaderboardService *leaderboardapp.LeaderboardApplicationService,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, cfg, logger, metrics)

	// ハンドラーの作成
	actionHandler := handler.NewActionHandler(economyService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	adminHandler := handler.NewAdminHandler(economyService)

	// ルーティングの設定
	setupRoutes(e, cfg, logger, actionHandler, leaderboardHandler, adminHandler)

	return &Router{
		echo:               e,
		actionHandler:      actionHandler,
		leaderboardHandler: leaderboardHandler,
		adminHandler:       adminHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, cfg *config.Config, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // 本番環境では適切に設定
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	actionHandler *handler.ActionHandler,
	leaderboardHandler *handler.LeaderboardHandler,
	adminHandler *handler.AdminHandler,
) {
	// API v1グループ
	api := e.Group("/api/v1")

	// 認証が必要なエンドポイント
	authGroup := api.Group("", restmiddleware.AuthMiddleware(&cfg.JWT, logger))

	// 経済アクションエンドポイント
	authGroup.POST("/actions/work", actionHandler.Work)
	authGroup.POST("/actions/crime", actionHandler.Crime)
	authGroup.POST("/actions/daily", actionHandler.Daily)
	authGroup.POST("/actions/gamble", actionHandler.Gamble)
	authGroup.POST("/actions/rob", actionHandler.Rob)
	authGroup.POST("/actions/rps", actionHandler.RPS)

	// 残高照会エンドポイント
	authGroup.GET("/balance", actionHandler.GetBalance)

	// ランキングエンドポイント
	authGroup.POST("/leaderboard", leaderboardHandler.GetLeaderboard)

	// 管理APIエンドポイント（APIキー認証）
	adminGroup := api.Group("/admin", restmiddleware.APIKeyMiddleware(&cfg.AdminAPI, logger))
	adminGroup.POST("/users/:user_id/grant", adminHandler.Grant)
	adminGroup.POST("/users/:user_id/deduct", adminHandler.Deduct)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
