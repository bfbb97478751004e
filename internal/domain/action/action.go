package action

import (
	"fmt"
	"time"
)

// Kind アクション種別を表す値オブジェクト
type Kind string

const (
	KindWork    Kind = "work"    // 労働
	KindCrime   Kind = "crime"   // 犯罪
	KindBalance Kind = "balance" // 残高照会
	KindGamble  Kind = "gamble"  // ギャンブル
	KindDaily   Kind = "daily"   // デイリーボーナス
	KindRob     Kind = "rob"     // 強盗
	KindRPS     Kind = "rps"     // じゃんけん
	KindGrant   Kind = "grant"   // 管理付与
	KindDeduct  Kind = "deduct"  // 管理没収
)

// NewKind 新しいKindを作成
func NewKind(s string) (Kind, error) {
	switch s {
	case "work", "crime", "balance", "gamble", "daily", "rob", "rps", "grant", "deduct":
		return Kind(s), nil
	default:
		return "", fmt.Errorf("invalid action kind: %s", s)
	}
}

// String 文字列表現を返す
func (k Kind) String() string {
	return string(k)
}

// Valid 有効なアクション種別かどうかを返す
func (k Kind) Valid() bool {
	_, err := NewKind(string(k))
	return err == nil
}

// Scope クールダウンの追跡単位
type Scope string

const (
	// ScopeUser ユーザーごとに追跡
	ScopeUser Scope = "user"
	// ScopeGuild ギルド（サーバー）ごとに追跡
	ScopeGuild Scope = "guild"
)

// Setting アクションごとのクールダウン設定
type Setting struct {
	Cooldown time.Duration
	Scope    Scope
}

// DefaultSettings アクション種別ごとの既定クールダウンテーブルを返す
// 呼び出しごとに新しいマップを返すため、呼び出し側で上書きしてよい
func DefaultSettings() map[Kind]Setting {
	return map[Kind]Setting{
		KindWork:    {Cooldown: 900 * time.Second, Scope: ScopeUser},
		KindCrime:   {Cooldown: 1200 * time.Second, Scope: ScopeUser},
		KindBalance: {Cooldown: 60 * time.Second, Scope: ScopeUser},
		KindGamble:  {Cooldown: 300 * time.Second, Scope: ScopeUser},
		KindDaily:   {Cooldown: 86400 * time.Second, Scope: ScopeUser},
		KindRob:     {Cooldown: 18000 * time.Second, Scope: ScopeUser},
		KindRPS:     {Cooldown: 3 * time.Second, Scope: ScopeGuild},
	}
}
