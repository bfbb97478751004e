package codec

import (
	"encoding/json"
	"fmt"

	"coin-server/internal/domain/account"
)

// record 永続化レイアウト上の1ユーザー分のレコード
// 古いデータとの前方互換のため、欠けたキーはゼロとして読む
type record struct {
	Money  int64 `json:"money"`
	Wins   int   `json:"wins,omitempty"`
	Losses int   `json:"losses,omitempty"`
}

// Encode テーブルをJSONドキュメントに変換する
func Encode(table account.Table) ([]byte, error) {
	records := make(map[string]record, len(table))
	for userID, acct := range table {
		records[userID] = record{
			Money:  acct.Balance(),
			Wins:   acct.Wins(),
			Losses: acct.Losses(),
		}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode JSONドキュメントからテーブルを復元する
func Decode(data []byte) (account.Table, error) {
	records := make(map[string]record)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	table := account.NewTable()
	for userID, rec := range records {
		acct, err := account.NewAccount(userID, rec.Money, rec.Wins, rec.Losses)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct account %s: %w", userID, err)
		}
		table[userID] = acct
	}
	return table, nil
}
