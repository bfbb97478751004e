package economy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/account"
	"coin-server/internal/domain/action"
	"coin-server/internal/domain/cooldown"
	"coin-server/internal/domain/resolver"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
)

// EconomyApplicationService 経済アクションのアプリケーションサービス
// 全アクションの共通フロー（クールダウン検査、解決、全体保存、失敗時の巻き戻し）を担う
type EconomyApplicationService struct {
	repo               account.SnapshotRepository
	table              account.Table
	tracker            *cooldown.Tracker
	rng                resolver.Rand
	policy             resolver.Policy
	cooldownOnRejected bool
	logger             *otelinfra.Logger
	metrics            *otelinfra.Metrics
	tracer             trace.Tracer
	mu                 sync.Mutex
}

// NewEconomyApplicationService 新しいEconomyApplicationServiceを作成
// tableは起動時にリポジトリからロードしたテーブルを渡す
func NewEconomyApplicationService(
	repo account.SnapshotRepository,
	table account.Table,
	tracker *cooldown.Tracker,
	rng resolver.Rand,
	policy resolver.Policy,
	cooldownOnRejected bool,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *EconomyApplicationService {
	return &EconomyApplicationService{
		repo:               repo,
		table:              table,
		tracker:            tracker,
		rng:                rng,
		policy:             policy,
		cooldownOnRejected: cooldownOnRejected,
		logger:             logger,
		metrics:            metrics,
		tracer:             otel.Tracer("economy-service"),
	}
}

// run 変更系アクションの共通フロー。s.muを保持した状態で呼び出すこと
// クールダウンを検査し、リゾルバを実行してテーブル全体を保存する
// リゾルバの拒否ではクールダウン枠を返却し（設定で変更可能）、
// 保存失敗では対象アカウントを巻き戻して必ず枠を返却する
func (s *EconomyApplicationService) run(
	ctx context.Context,
	kind action.Kind,
	cooldownID string,
	touched []*account.Account,
	resolve func() (*resolver.Outcome, error),
) (*resolver.Outcome, error) {
	if err := s.tracker.CheckAndMark(cooldownID, kind, time.Now()); err != nil {
		var active *cooldown.ActiveError
		if errors.As(err, &active) {
			s.metrics.RecordCooldownRejection(ctx, kind.String())
		}
		return nil, err
	}

	// 保存失敗時の巻き戻し用に、変更前の状態を控える
	backups := make([]*account.Account, len(touched))
	for i, a := range touched {
		backups[i] = a.Clone()
	}
	restore := func() {
		for _, b := range backups {
			s.table[b.UserID()] = b
		}
	}

	outcome, err := resolve()
	if err != nil {
		restore()
		if !s.cooldownOnRejected {
			s.tracker.Reset(cooldownID, kind)
		}
		return nil, err
	}

	if err := s.repo.Save(ctx, s.table); err != nil {
		restore()
		s.tracker.Reset(cooldownID, kind)
		return nil, fmt.Errorf("failed to persist action %s: %w", kind, err)
	}

	s.metrics.RecordAction(ctx, kind.String(), outcome.PresentationTag, outcome.Delta)
	return outcome, nil
}

// Work 労働アクションを実行
func (s *EconomyApplicationService) Work(ctx context.Context, req *ActionRequest) (*ActionResponse, error) {
	return s.simpleAction(ctx, action.KindWork, req, func(acct *account.Account) (*resolver.Outcome, error) {
		return resolver.Work(acct, s.rng)
	})
}

// Crime 犯罪アクションを実行
func (s *EconomyApplicationService) Crime(ctx context.Context, req *ActionRequest) (*ActionResponse, error) {
	return s.simpleAction(ctx, action.KindCrime, req, func(acct *account.Account) (*resolver.Outcome, error) {
		return resolver.Crime(acct, s.policy, s.rng)
	})
}

// Daily デイリーボーナスを実行
func (s *EconomyApplicationService) Daily(ctx context.Context, req *ActionRequest) (*ActionResponse, error) {
	return s.simpleAction(ctx, action.KindDaily, req, func(acct *account.Account) (*resolver.Outcome, error) {
		return resolver.Daily(acct, s.rng)
	})
}

// simpleAction 対象が自分のアカウントのみの変更系アクションの共通実装
func (s *EconomyApplicationService) simpleAction(
	ctx context.Context,
	kind action.Kind,
	req *ActionRequest,
	resolve func(acct *account.Account) (*resolver.Outcome, error),
) (*ActionResponse, error) {
	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("EconomyApplicationService.%s", kind))
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("action_kind", kind.String()),
	)

	s.logger.Info(ctx, "Resolving action", map[string]interface{}{
		"user_id":     req.UserID,
		"action_kind": kind.String(),
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.table.GetOrCreate(req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	outcome, err := s.run(ctx, kind, req.UserID, []*account.Account{acct}, func() (*resolver.Outcome, error) {
		return resolve(acct)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to resolve action", err, map[string]interface{}{
			"user_id":     req.UserID,
			"action_kind": kind.String(),
		})
		return nil, err
	}

	s.metrics.RecordAccountBalance(ctx, req.UserID, acct.Balance())

	s.logger.Info(ctx, "Action resolved", map[string]interface{}{
		"user_id":     req.UserID,
		"action_kind": kind.String(),
		"delta":       outcome.Delta,
		"new_balance": acct.Balance(),
	})

	return s.toActionResponse(kind, req.UserID, acct, outcome), nil
}

// GetBalance 残高を照会する
// クールダウンの対象だが、アカウントの遅延作成は永続化しない（読み取りのみ）
func (s *EconomyApplicationService) GetBalance(ctx context.Context, req *GetBalanceRequest) (*GetBalanceResponse, error) {
	ctx, span := s.tracer.Start(ctx, "EconomyApplicationService.GetBalance")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tracker.CheckAndMark(req.UserID, action.KindBalance, time.Now()); err != nil {
		var active *cooldown.ActiveError
		if errors.As(err, &active) {
			s.metrics.RecordCooldownRejection(ctx, action.KindBalance.String())
		}
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	acct, err := s.table.GetOrCreate(req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.metrics.RecordAccountBalance(ctx, req.UserID, acct.Balance())

	return &GetBalanceResponse{
		UserID:          req.UserID,
		Balance:         acct.Balance(),
		Wins:            acct.Wins(),
		Losses:          acct.Losses(),
		TemplateID:      "balance",
		PresentationTag: resolver.TagBalance,
	}, nil
}

// Snapshot 現在のテーブルの深い複製を返す
// ランキングなどの読み取り側が、変更系フローと競合せずに参照するために使う
func (s *EconomyApplicationService) Snapshot() account.Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.Clone()
}

// toActionResponse 解決結果をレスポンスDTOに変換
func (s *EconomyApplicationService) toActionResponse(kind action.Kind, userID string, acct *account.Account, outcome *resolver.Outcome) *ActionResponse {
	return &ActionResponse{
		UserID:          userID,
		ActionKind:      kind.String(),
		Success:         outcome.Success,
		Delta:           outcome.Delta,
		NewBalance:      acct.Balance(),
		TemplateID:      outcome.TemplateID,
		BoundValues:     outcome.BoundValues,
		PresentationTag: outcome.PresentationTag,
	}
}
