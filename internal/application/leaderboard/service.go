package leaderboard

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/account"
	"coin-server/internal/domain/service"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
)

// TableSnapshotter テーブルのスナップショットを提供する
// EconomyApplicationServiceが満たす
type TableSnapshotter interface {
	Snapshot() account.Table
}

// LeaderboardApplicationService ランキングのアプリケーションサービス
type LeaderboardApplicationService struct {
	snapshotter TableSnapshotter
	limit       int
	logger      *otelinfra.Logger
	tracer      trace.Tracer
}

// NewLeaderboardApplicationService 新しいLeaderboardApplicationServiceを作成
func NewLeaderboardApplicationService(
	snapshotter TableSnapshotter,
	limit int,
	logger *otelinfra.Logger,
) *LeaderboardApplicationService {
	if limit <= 0 {
		limit = service.DefaultLeaderboardLimit
	}
	return &LeaderboardApplicationService{
		snapshotter: snapshotter,
		limit:       limit,
		logger:      logger,
		tracer:      otel.Tracer("leaderboard-service"),
	}
}

// GetLeaderboard 名簿とテーブルの共通部分から残高ランキングを取得
func (s *LeaderboardApplicationService) GetLeaderboard(ctx context.Context, req *GetLeaderboardRequest) (*GetLeaderboardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "LeaderboardApplicationService.GetLeaderboard")
	defer span.End()

	span.SetAttributes(
		attribute.Int("roster_size", len(req.Roster)),
	)

	limit := req.Limit
	if limit <= 0 {
		limit = s.limit
	}

	roster := make([]service.Member, len(req.Roster))
	for i, m := range req.Roster {
		roster[i] = service.Member{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
		}
	}

	table := s.snapshotter.Snapshot()
	ranked := service.Rank(table, roster, limit)

	entries := make([]Entry, len(ranked))
	for i, e := range ranked {
		entries[i] = Entry{
			Rank:        e.Rank,
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			Balance:     e.Balance,
		}
	}

	s.logger.Info(ctx, "Leaderboard computed", map[string]interface{}{
		"roster_size": len(req.Roster),
		"entries":     len(entries),
	})

	return &GetLeaderboardResponse{Entries: entries}, nil
}
