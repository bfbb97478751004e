package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/account"
	"coin-server/internal/infrastructure/persistence/codec"
)

// DefaultSnapshotName 既定のスナップショット名
const DefaultSnapshotName = "economy"

// SnapshotRepository MySQL実装のSnapshotRepository
// テーブル全体を1つのJSONドキュメントとして名前付きの行に保存する
type SnapshotRepository struct {
	db     *DB
	name   string
	tracer trace.Tracer
}

// NewSnapshotRepository 新しいSnapshotRepositoryを作成
func NewSnapshotRepository(db *DB, name string) *SnapshotRepository {
	if name == "" {
		name = DefaultSnapshotName
	}
	return &SnapshotRepository{
		db:     db,
		name:   name,
		tracer: otel.Tracer("mysql-snapshot-repository"),
	}
}

// Load テーブル全体をロードする。行が存在しない場合は空のテーブルを返す
func (r *SnapshotRepository) Load(ctx context.Context) (account.Table, error) {
	ctx, span := r.tracer.Start(ctx, "SnapshotRepository.Load")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.snapshot_name", r.name),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "economy_snapshots"),
	)

	query := `
		SELECT document
		FROM economy_snapshots
		WHERE name = ?
	`

	var document []byte
	err := r.db.QueryRowContext(ctx, query, r.name).Scan(&document)
	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "snapshot not found, starting empty")
		return account.NewTable(), nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	table, err := codec.Decode(document)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("store.accounts", len(table)))
	span.SetStatus(otelcodes.Ok, "snapshot loaded")
	return table, nil
}

// Save テーブル全体を上書き保存する（最後の書き込みが勝つ）
func (r *SnapshotRepository) Save(ctx context.Context, table account.Table) error {
	ctx, span := r.tracer.Start(ctx, "SnapshotRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.snapshot_name", r.name),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "economy_snapshots"),
		attribute.Int("store.accounts", len(table)),
	)

	document, err := codec.Encode(table)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	query := `
		INSERT INTO economy_snapshots (name, document)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE
			document = VALUES(document),
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, r.name, document); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "snapshot saved")
	return nil
}
