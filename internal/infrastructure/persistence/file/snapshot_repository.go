package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/account"
	"coin-server/internal/infrastructure/persistence/codec"
)

// SnapshotRepository JSONファイル実装のSnapshotRepository
type SnapshotRepository struct {
	path   string
	tracer trace.Tracer
}

// NewSnapshotRepository 新しいSnapshotRepositoryを作成
func NewSnapshotRepository(path string) *SnapshotRepository {
	return &SnapshotRepository{
		path:   path,
		tracer: otel.Tracer("file-snapshot-repository"),
	}
}

// Load テーブル全体をロードする。ファイルが存在しない場合は空のテーブルを返す
func (r *SnapshotRepository) Load(ctx context.Context) (account.Table, error) {
	_, span := r.tracer.Start(ctx, "SnapshotRepository.Load")
	defer span.End()

	span.SetAttributes(
		attribute.String("store.path", r.path),
		attribute.String("store.operation", "READ"),
	)

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		span.SetStatus(otelcodes.Ok, "snapshot file not found, starting empty")
		return account.NewTable(), nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	if len(data) == 0 {
		span.SetStatus(otelcodes.Ok, "snapshot file empty, starting empty")
		return account.NewTable(), nil
	}

	table, err := codec.Decode(data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("store.accounts", len(table)))
	span.SetStatus(otelcodes.Ok, "snapshot loaded")
	return table, nil
}

// Save テーブル全体を上書き保存する
// 一時ファイルへ書いてからリネームし、書きかけのドキュメントが残らないようにする
func (r *SnapshotRepository) Save(ctx context.Context, table account.Table) error {
	_, span := r.tracer.Start(ctx, "SnapshotRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("store.path", r.path),
		attribute.String("store.operation", "WRITE"),
		attribute.Int("store.accounts", len(table)),
	)

	data, err := codec.Encode(table)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".tmp-*")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to create temp snapshot file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "snapshot saved")
	return nil
}
