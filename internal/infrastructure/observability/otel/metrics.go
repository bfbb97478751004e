package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// アクション実行数
	ActionCount metric.Int64Counter

	// アクションによる残高変動額
	ActionDelta metric.Int64Histogram

	// アカウント残高の分布
	AccountBalance metric.Int64Gauge

	// マイナス残高の発生件数
	NegativeBalanceCount metric.Int64Counter

	// クールダウンによる拒否件数
	CooldownRejectionCount metric.Int64Counter

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	actionCount, err := meter.Int64Counter(
		"actions_total",
		metric.WithDescription("Total number of resolved economy actions"),
	)
	if err != nil {
		return nil, err
	}

	actionDelta, err := meter.Int64Histogram(
		"action_delta",
		metric.WithDescription("Signed balance change per resolved action"),
	)
	if err != nil {
		return nil, err
	}

	accountBalance, err := meter.Int64Gauge(
		"account_balance",
		metric.WithDescription("Account balance"),
	)
	if err != nil {
		return nil, err
	}

	negativeBalanceCount, err := meter.Int64Counter(
		"negative_balance_total",
		metric.WithDescription("Total number of negative balance occurrences"),
	)
	if err != nil {
		return nil, err
	}

	cooldownRejectionCount, err := meter.Int64Counter(
		"cooldown_rejections_total",
		metric.WithDescription("Total number of actions rejected by cooldown"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ActionCount:            actionCount,
		ActionDelta:            actionDelta,
		AccountBalance:         accountBalance,
		NegativeBalanceCount:   negativeBalanceCount,
		CooldownRejectionCount: cooldownRejectionCount,
		RequestCount:           requestCount,
		ResponseTime:           responseTime,
		ErrorCount:             errorCount,
	}, nil
}

// RecordAction アクションの実行を記録
func (m *Metrics) RecordAction(ctx context.Context, actionKind, tag string, delta int64) {
	m.ActionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("action_kind", actionKind),
			attribute.String("presentation_tag", tag),
		),
	)
	m.ActionDelta.Record(ctx, delta,
		metric.WithAttributes(
			attribute.String("action_kind", actionKind),
		),
	)
}

// RecordAccountBalance アカウント残高を記録
func (m *Metrics) RecordAccountBalance(ctx context.Context, userID string, balance int64) {
	m.AccountBalance.Record(ctx, balance,
		metric.WithAttributes(
			attribute.String("user_id", userID),
		),
	)
	if balance < 0 {
		m.NegativeBalanceCount.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("user_id", userID),
			),
		)
	}
}

// RecordCooldownRejection クールダウンによる拒否を記録
func (m *Metrics) RecordCooldownRejection(ctx context.Context, actionKind string) {
	m.CooldownRejectionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("action_kind", actionKind),
		),
	)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
