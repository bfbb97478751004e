package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	economyapp "coin-server/internal/application/economy"
	leaderboardapp "coin-server/internal/application/leaderboard"
	"coin-server/internal/domain/account"
	"coin-server/internal/domain/action"
	"coin-server/internal/domain/cooldown"
	"coin-server/internal/domain/resolver"
	"coin-server/internal/infrastructure/config"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
	"coin-server/internal/infrastructure/persistence/file"
	"coin-server/internal/infrastructure/persistence/mysql"
	"coin-server/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("coin-server")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("coin-server")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// ストアバックエンドの初期化
	var repo account.SnapshotRepository
	switch cfg.Store.Backend {
	case config.StoreBackendMySQL:
		db, err := mysql.NewDB(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		repo = mysql.NewSnapshotRepository(db, mysql.DefaultSnapshotName)
	case config.StoreBackendFile:
		repo = file.NewSnapshotRepository(cfg.Store.FilePath)
	default:
		log.Fatalf("Unsupported store backend: %s", cfg.Store.Backend)
	}

	// テーブルの一括ロード
	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	table, err := repo.Load(loadCtx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load account table: %v", err)
	}
	log.Printf("Loaded %d accounts from %s store", len(table), cfg.Store.Backend)

	// クールダウントラッカーと乱数源の初期化
	tracker := cooldown.NewTracker(action.DefaultSettings())
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// アプリケーションサービスの初期化
	economyService := economyapp.NewEconomyApplicationService(
		repo,
		table,
		tracker,
		rng,
		resolver.Policy{AllowNegativeBalance: cfg.Economy.AllowNegativeBalance},
		cfg.Economy.CooldownOnRejected,
		logger,
		metrics,
	)

	leaderboardService := leaderboardapp.NewLeaderboardApplicationService(
		economyService,
		cfg.Economy.LeaderboardLimit,
		logger,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		cfg,
		logger,
		metrics,
		economyService,
		leaderboardService,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		log.Printf("REST API server starting on %s", address)
		if err := router.Start(address); err != nil {
			log.Printf("REST API server error: %v", err)
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	// グレースフルシャットダウン
	if err := router.Shutdown(); err != nil {
		log.Printf("Error shutting down REST API server: %v", err)
	}

	log.Println("Server stopped")
}
