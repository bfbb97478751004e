package account

import (
	"context"
)

// SnapshotRepository アカウントテーブルの永続化インターフェース
// テーブル全体を1つの単位としてロード・保存する（最後の書き込みが勝つ）
type SnapshotRepository interface {
	// Load テーブル全体をロードする。永続化先が空の場合は空のテーブルを返す
	Load(ctx context.Context) (Table, error)

	// Save テーブル全体を上書き保存する
	Save(ctx context.Context, table Table) error
}
