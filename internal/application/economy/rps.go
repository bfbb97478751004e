package economy

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"

	"coin-server/internal/domain/account"
	"coin-server/internal/domain/action"
	"coin-server/internal/domain/resolver"
)

// PlayRPS じゃんけんアクションを実行
// クールダウンはスコープ（ギルド）単位で追跡される。スコープIDが空の場合はユーザー単位
func (s *EconomyApplicationService) PlayRPS(ctx context.Context, req *RPSRequest) (*ActionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "EconomyApplicationService.PlayRPS")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("scope_id", req.ScopeID),
		attribute.String("choice", req.Choice),
	)

	s.logger.Info(ctx, "Resolving rps", map[string]interface{}{
		"user_id":  req.UserID,
		"scope_id": req.ScopeID,
		"choice":   req.Choice,
	})

	cooldownID := req.ScopeID
	if cooldownID == "" {
		cooldownID = req.UserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.table.GetOrCreate(req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	outcome, err := s.run(ctx, action.KindRPS, cooldownID, []*account.Account{acct}, func() (*resolver.Outcome, error) {
		return resolver.RPS(acct, req.Choice, s.rng)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to resolve rps", err, map[string]interface{}{
			"user_id": req.UserID,
			"choice":  req.Choice,
		})
		return nil, err
	}

	s.logger.Info(ctx, "RPS resolved", map[string]interface{}{
		"user_id": req.UserID,
		"tag":     outcome.PresentationTag,
		"wins":    acct.Wins(),
		"losses":  acct.Losses(),
	})

	return s.toActionResponse(action.KindRPS, req.UserID, acct, outcome), nil
}
