package economy

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"

	"coin-server/internal/domain/account"
)

// Grant 管理APIによる残高付与
// クールダウンの対象外。付与後にテーブル全体を保存し、失敗時は巻き戻す
func (s *EconomyApplicationService) Grant(ctx context.Context, req *AdjustRequest) (*AdjustResponse, error) {
	return s.adjust(ctx, "Grant", req, func(acct *account.Account) error {
		return acct.Credit(req.Amount)
	})
}

// Deduct 管理APIによる残高没収
// ポリシーに関わらず台帳の下限までそのまま減算する
func (s *EconomyApplicationService) Deduct(ctx context.Context, req *AdjustRequest) (*AdjustResponse, error) {
	return s.adjust(ctx, "Deduct", req, func(acct *account.Account) error {
		return acct.Debit(req.Amount)
	})
}

// adjust 管理APIによる残高調整の共通実装
func (s *EconomyApplicationService) adjust(
	ctx context.Context,
	operation string,
	req *AdjustRequest,
	apply func(acct *account.Account) error,
) (*AdjustResponse, error) {
	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("EconomyApplicationService.%s", operation))
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.Int64("amount", req.Amount),
		attribute.String("reason", req.Reason),
	)

	s.logger.Info(ctx, "Adjusting balance", map[string]interface{}{
		"user_id":   req.UserID,
		"operation": operation,
		"amount":    req.Amount,
		"reason":    req.Reason,
	})

	if req.Amount <= 0 {
		err := account.ErrInvalidAmount
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.table.GetOrCreate(req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	backup := acct.Clone()

	if err := apply(acct); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	if err := s.repo.Save(ctx, s.table); err != nil {
		s.table[backup.UserID()] = backup
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to persist adjustment", err, map[string]interface{}{
			"user_id":   req.UserID,
			"operation": operation,
		})
		s.metrics.RecordError(ctx, "adjust_persist_failed")
		return nil, fmt.Errorf("failed to persist adjustment: %w", err)
	}

	s.metrics.RecordAccountBalance(ctx, req.UserID, acct.Balance())

	s.logger.Info(ctx, "Balance adjusted", map[string]interface{}{
		"user_id":       req.UserID,
		"operation":     operation,
		"amount":        req.Amount,
		"balance_after": acct.Balance(),
	})

	return &AdjustResponse{
		UserID:       req.UserID,
		BalanceAfter: acct.Balance(),
	}, nil
}
