package economy

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"

	"coin-server/internal/domain/account"
	"coin-server/internal/domain/action"
	"coin-server/internal/domain/resolver"
)

// Gamble ギャンブルアクションを実行
// 前提条件（残高不足、最低賭け金未満）で拒否された場合はクールダウン枠を消費しない
func (s *EconomyApplicationService) Gamble(ctx context.Context, req *GambleRequest) (*ActionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "EconomyApplicationService.Gamble")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.Int("choice", req.Choice),
		attribute.Int64("stake", req.Stake),
	)

	s.logger.Info(ctx, "Resolving gamble", map[string]interface{}{
		"user_id": req.UserID,
		"choice":  req.Choice,
		"stake":   req.Stake,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.table.GetOrCreate(req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	outcome, err := s.run(ctx, action.KindGamble, req.UserID, []*account.Account{acct}, func() (*resolver.Outcome, error) {
		return resolver.Gamble(acct, req.Choice, req.Stake, s.rng)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to resolve gamble", err, map[string]interface{}{
			"user_id": req.UserID,
			"stake":   req.Stake,
		})
		return nil, err
	}

	s.metrics.RecordAccountBalance(ctx, req.UserID, acct.Balance())

	s.logger.Info(ctx, "Gamble resolved", map[string]interface{}{
		"user_id":     req.UserID,
		"success":     outcome.Success,
		"delta":       outcome.Delta,
		"new_balance": acct.Balance(),
	})

	return s.toActionResponse(action.KindGamble, req.UserID, acct, outcome), nil
}

// Rob 強盗アクションを実行
// クールダウンは実行者に対して追跡される。対象アカウントも遅延作成の対象
func (s *EconomyApplicationService) Rob(ctx context.Context, req *RobRequest) (*ActionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "EconomyApplicationService.Rob")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("target_id", req.TargetID),
	)

	s.logger.Info(ctx, "Resolving rob", map[string]interface{}{
		"user_id":   req.UserID,
		"target_id": req.TargetID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.table.GetOrCreate(req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	target, err := s.table.GetOrCreate(req.TargetID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	outcome, err := s.run(ctx, action.KindRob, req.UserID, []*account.Account{actor, target}, func() (*resolver.Outcome, error) {
		return resolver.Rob(actor, target, s.policy, s.rng)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to resolve rob", err, map[string]interface{}{
			"user_id":   req.UserID,
			"target_id": req.TargetID,
		})
		return nil, err
	}

	s.metrics.RecordAccountBalance(ctx, req.UserID, actor.Balance())
	s.metrics.RecordAccountBalance(ctx, req.TargetID, target.Balance())

	s.logger.Info(ctx, "Rob resolved", map[string]interface{}{
		"user_id":     req.UserID,
		"target_id":   req.TargetID,
		"success":     outcome.Success,
		"delta":       outcome.Delta,
		"new_balance": actor.Balance(),
	})

	return s.toActionResponse(action.KindRob, req.UserID, actor, outcome), nil
}
