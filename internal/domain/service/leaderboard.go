package service

import (
	"sort"

	"coin-server/internal/domain/account"
)

// DefaultLeaderboardLimit ランキングの既定表示件数
const DefaultLeaderboardLimit = 10

// Member ランキング対象の名簿エントリ
// 名簿は呼び出し側（チャットアダプタ）が提供する
type Member struct {
	UserID      string
	DisplayName string
}

// Entry ランキングの1行
type Entry struct {
	UserID      string
	DisplayName string
	Balance     int64
	Rank        int
}

// Rank テーブルと名簿からランキングを導出する
// 名簿とテーブルの両方に存在するユーザーのみを対象とし、残高の降順に並べる
// 同額の順位は名簿の順序で安定に決まる。limit件に切り詰める
func Rank(table account.Table, roster []Member, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	entries := make([]Entry, 0, len(roster))
	for _, m := range roster {
		acct, ok := table[m.UserID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			Balance:     acct.Balance(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Balance > entries[j].Balance
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
