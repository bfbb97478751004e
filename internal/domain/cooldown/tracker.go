package cooldown

import (
	"fmt"
	"sync"
	"time"

	"coin-server/internal/domain/action"
)

// ActiveError クールダウン中エラー
// 呼び出し側が残り待ち時間をそのままユーザー向けメッセージに使える
type ActiveError struct {
	Kind      action.Kind
	Remaining time.Duration
}

// Error エラーメッセージを返す
func (e *ActiveError) Error() string {
	return fmt.Sprintf("action %s is on cooldown: retry after %.2f seconds", e.Kind, e.Remaining.Seconds())
}

// key クールダウンの追跡キー (追跡ID, アクション種別)
type key struct {
	id   string
	kind action.Kind
}

// Tracker (キー, アクション種別) ごとの最終実行時刻レジストリ
type Tracker struct {
	mu       sync.Mutex
	settings map[action.Kind]action.Setting
	last     map[key]time.Time
}

// NewTracker 新しいTrackerを作成
func NewTracker(settings map[action.Kind]action.Setting) *Tracker {
	return &Tracker{
		settings: settings,
		last:     make(map[key]time.Time),
	}
}

// Setting アクション種別のクールダウン設定を返す
func (t *Tracker) Setting(kind action.Kind) (action.Setting, bool) {
	s, ok := t.settings[kind]
	return s, ok
}

// CheckAndMark クールダウンを検査し、通過した場合はnowを新しい最終実行時刻として記録する
// クールダウン中の場合は残り時間を持つActiveErrorを返し、記録は変更しない
// 設定のないアクション種別はクールダウンなしとして扱う
func (t *Tracker) CheckAndMark(id string, kind action.Kind, now time.Time) error {
	setting, ok := t.settings[kind]
	if !ok {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	k := key{id: id, kind: kind}
	if last, ok := t.last[k]; ok {
		elapsed := now.Sub(last)
		if elapsed < setting.Cooldown {
			return &ActiveError{Kind: kind, Remaining: setting.Cooldown - elapsed}
		}
	}

	t.last[k] = now
	return nil
}

// Reset キーの最終実行時刻を取り消す
// 拒否されたアクションや保存失敗時にクールダウン枠を消費させないために使う
func (t *Tracker) Reset(id string, kind action.Kind) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.last, key{id: id, kind: kind})
}
