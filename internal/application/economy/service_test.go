package economy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"coin-server/internal/domain/account"
	"coin-server/internal/domain/action"
	"coin-server/internal/domain/cooldown"
	"coin-server/internal/domain/resolver"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
)

// stubRand 決め打ちの値を順番に返す乱数源
type stubRand struct {
	values []int
	index  int
}

func (r *stubRand) Intn(n int) int {
	if r.index >= len(r.values) {
		return 0
	}
	v := r.values[r.index]
	r.index++
	return v % n
}

// fakeRepo テスト用のインメモリSnapshotRepository
type fakeRepo struct {
	saved     account.Table
	saveCount int
	failSave  bool
}

func (r *fakeRepo) Load(ctx context.Context) (account.Table, error) {
	return account.NewTable(), nil
}

func (r *fakeRepo) Save(ctx context.Context, table account.Table) error {
	if r.failSave {
		return errors.New("save failed")
	}
	r.saved = table.Clone()
	r.saveCount++
	return nil
}

func newTestService(t *testing.T, repo account.SnapshotRepository, table account.Table, rng resolver.Rand, cooldownOnRejected bool) *EconomyApplicationService {
	t.Helper()

	tracer := noop.NewTracerProvider().Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)

	return NewEconomyApplicationService(
		repo,
		table,
		cooldown.NewTracker(action.DefaultSettings()),
		rng,
		resolver.Policy{AllowNegativeBalance: true},
		cooldownOnRejected,
		logger,
		metrics,
	)
}

func TestEconomyApplicationService_Work(t *testing.T) {
	t.Run("正常系: 報酬が付与されて保存される", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(t, repo, account.NewTable(), &stubRand{values: []int{80, 0}}, false)

		resp, err := svc.Work(context.Background(), &ActionRequest{UserID: "user123"})

		require.NoError(t, err)
		assert.Equal(t, "work", resp.ActionKind)
		assert.True(t, resp.Success)
		assert.Equal(t, int64(200), resp.Delta)
		assert.Equal(t, int64(200), resp.NewBalance)
		assert.Equal(t, 1, repo.saveCount)
		assert.Equal(t, int64(200), repo.saved["user123"].Balance())
	})

	t.Run("異常系: クールダウン中は拒否される", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(t, repo, account.NewTable(), &stubRand{}, false)

		_, err := svc.Work(context.Background(), &ActionRequest{UserID: "user123"})
		require.NoError(t, err)

		_, err = svc.Work(context.Background(), &ActionRequest{UserID: "user123"})

		var active *cooldown.ActiveError
		require.ErrorAs(t, err, &active)
		assert.Equal(t, action.KindWork, active.Kind)
		assert.Equal(t, 1, repo.saveCount)
	})

	t.Run("異常系: 保存失敗で残高を巻き戻しクールダウン枠を返却", func(t *testing.T) {
		repo := &fakeRepo{failSave: true}
		table := account.NewTable()
		table["user123"] = account.MustNewAccount("user123", 1000, 0, 0)
		svc := newTestService(t, repo, table, &stubRand{values: []int{80, 0, 80, 0}}, false)

		_, err := svc.Work(context.Background(), &ActionRequest{UserID: "user123"})
		require.Error(t, err)
		assert.Equal(t, int64(1000), table["user123"].Balance())

		// 保存が回復すれば即座に再実行できる
		repo.failSave = false
		resp, err := svc.Work(context.Background(), &ActionRequest{UserID: "user123"})
		require.NoError(t, err)
		assert.Equal(t, int64(1200), resp.NewBalance)
	})
}

func TestEconomyApplicationService_Gamble(t *testing.T) {
	t.Run("正常系: 当たりで賭け金の2倍を獲得", func(t *testing.T) {
		repo := &fakeRepo{}
		table := account.NewTable()
		table["user123"] = account.MustNewAccount("user123", 1000, 0, 0)
		svc := newTestService(t, repo, table, &stubRand{values: []int{0}}, false)

		resp, err := svc.Gamble(context.Background(), &GambleRequest{UserID: "user123", Choice: 1, Stake: 100})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, int64(1200), resp.NewBalance)
	})

	t.Run("異常系: 拒否されたギャンブルはクールダウン枠を消費しない", func(t *testing.T) {
		repo := &fakeRepo{}
		table := account.NewTable()
		table["user123"] = account.MustNewAccount("user123", 1000, 0, 0)
		svc := newTestService(t, repo, table, &stubRand{values: []int{0}}, false)

		_, err := svc.Gamble(context.Background(), &GambleRequest{UserID: "user123", Choice: 1, Stake: 10})
		assert.ErrorIs(t, err, resolver.ErrStakeBelowMinimum)
		assert.Equal(t, 0, repo.saveCount)

		// 直後の有効なリクエストは通過する
		resp, err := svc.Gamble(context.Background(), &GambleRequest{UserID: "user123", Choice: 1, Stake: 100})
		require.NoError(t, err)
		assert.True(t, resp.Success)
	})

	t.Run("異常系: 拒否でも枠を消費する設定", func(t *testing.T) {
		repo := &fakeRepo{}
		table := account.NewTable()
		table["user123"] = account.MustNewAccount("user123", 1000, 0, 0)
		svc := newTestService(t, repo, table, &stubRand{values: []int{0}}, true)

		_, err := svc.Gamble(context.Background(), &GambleRequest{UserID: "user123", Choice: 1, Stake: 10})
		assert.ErrorIs(t, err, resolver.ErrStakeBelowMinimum)

		_, err = svc.Gamble(context.Background(), &GambleRequest{UserID: "user123", Choice: 1, Stake: 100})
		var active *cooldown.ActiveError
		assert.ErrorAs(t, err, &active)
	})
}

func TestEconomyApplicationService_Rob(t *testing.T) {
	t.Run("正常系: 成功で両方のアカウントが更新される", func(t *testing.T) {
		repo := &fakeRepo{}
		table := account.NewTable()
		table["user123"] = account.MustNewAccount("user123", 500, 0, 0)
		table["user456"] = account.MustNewAccount("user456", 1000, 0, 0)
		svc := newTestService(t, repo, table, &stubRand{values: []int{39, 5, 0}}, false)

		resp, err := svc.Rob(context.Background(), &RobRequest{UserID: "user123", TargetID: "user456"})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, int64(650), resp.NewBalance)
		assert.Equal(t, int64(850), repo.saved["user456"].Balance())
	})

	t.Run("正常系: 対象アカウントも遅延作成される", func(t *testing.T) {
		repo := &fakeRepo{}
		table := account.NewTable()
		table["user123"] = account.MustNewAccount("user123", 500, 0, 0)
		svc := newTestService(t, repo, table, &stubRand{}, false)

		// 残高ゼロで作成された対象は基準未満として拒否される
		_, err := svc.Rob(context.Background(), &RobRequest{UserID: "user123", TargetID: "user456"})

		assert.ErrorIs(t, err, resolver.ErrTargetTooPoor)
		assert.Contains(t, table, "user456")
	})

	t.Run("異常系: 保存失敗で両方のアカウントを巻き戻す", func(t *testing.T) {
		repo := &fakeRepo{failSave: true}
		table := account.NewTable()
		table["user123"] = account.MustNewAccount("user123", 500, 0, 0)
		table["user456"] = account.MustNewAccount("user456", 1000, 0, 0)
		svc := newTestService(t, repo, table, &stubRand{values: []int{39, 5, 0}}, false)

		_, err := svc.Rob(context.Background(), &RobRequest{UserID: "user123", TargetID: "user456"})

		require.Error(t, err)
		assert.Equal(t, int64(500), table["user123"].Balance())
		assert.Equal(t, int64(1000), table["user456"].Balance())
	})
}

func TestEconomyApplicationService_PlayRPS(t *testing.T) {
	t.Run("正常系: ギルド単位でクールダウンが共有される", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(t, repo, account.NewTable(), &stubRand{values: []int{2, 2}}, false)

		_, err := svc.PlayRPS(context.Background(), &RPSRequest{UserID: "user123", ScopeID: "guild1", Choice: "rock"})
		require.NoError(t, err)

		// 同じギルドの別ユーザーも拒否される
		_, err = svc.PlayRPS(context.Background(), &RPSRequest{UserID: "user456", ScopeID: "guild1", Choice: "rock"})
		var active *cooldown.ActiveError
		require.ErrorAs(t, err, &active)

		// 別のギルドは独立
		_, err = svc.PlayRPS(context.Background(), &RPSRequest{UserID: "user456", ScopeID: "guild2", Choice: "rock"})
		require.NoError(t, err)
	})

	t.Run("正常系: 勝敗が保存される", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(t, repo, account.NewTable(), &stubRand{values: []int{2}}, false)

		resp, err := svc.PlayRPS(context.Background(), &RPSRequest{UserID: "user123", Choice: "rock"})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, 1, repo.saved["user123"].Wins())
	})
}

func TestEconomyApplicationService_GetBalance(t *testing.T) {
	t.Run("正常系: 残高と戦績を返し、保存はしない", func(t *testing.T) {
		repo := &fakeRepo{}
		table := account.NewTable()
		table["user123"] = account.MustNewAccount("user123", 700, 3, 1)
		svc := newTestService(t, repo, table, &stubRand{}, false)

		resp, err := svc.GetBalance(context.Background(), &GetBalanceRequest{UserID: "user123"})

		require.NoError(t, err)
		assert.Equal(t, int64(700), resp.Balance)
		assert.Equal(t, 3, resp.Wins)
		assert.Equal(t, 1, resp.Losses)
		assert.Equal(t, 0, repo.saveCount)
	})

	t.Run("正常系: 未知のユーザーは残高ゼロ", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(t, repo, account.NewTable(), &stubRand{}, false)

		resp, err := svc.GetBalance(context.Background(), &GetBalanceRequest{UserID: "user999"})

		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.Balance)
	})

	t.Run("異常系: 照会にもクールダウンが適用される", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(t, repo, account.NewTable(), &stubRand{}, false)

		_, err := svc.GetBalance(context.Background(), &GetBalanceRequest{UserID: "user123"})
		require.NoError(t, err)

		_, err = svc.GetBalance(context.Background(), &GetBalanceRequest{UserID: "user123"})
		var active *cooldown.ActiveError
		require.ErrorAs(t, err, &active)
		assert.Equal(t, action.KindBalance, active.Kind)
	})
}

func TestEconomyApplicationService_Adjust(t *testing.T) {
	t.Run("正常系: 付与はクールダウンなしで連続実行できる", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(t, repo, account.NewTable(), &stubRand{}, false)

		_, err := svc.Grant(context.Background(), &AdjustRequest{UserID: "user123", Amount: 500, Reason: "event"})
		require.NoError(t, err)

		resp, err := svc.Grant(context.Background(), &AdjustRequest{UserID: "user123", Amount: 300, Reason: "event"})
		require.NoError(t, err)
		assert.Equal(t, int64(800), resp.BalanceAfter)
		assert.Equal(t, 2, repo.saveCount)
	})

	t.Run("正常系: 没収で残高が減る", func(t *testing.T) {
		repo := &fakeRepo{}
		table := account.NewTable()
		table["user123"] = account.MustNewAccount("user123", 500, 0, 0)
		svc := newTestService(t, repo, table, &stubRand{}, false)

		resp, err := svc.Deduct(context.Background(), &AdjustRequest{UserID: "user123", Amount: 700, Reason: "rollback"})

		require.NoError(t, err)
		assert.Equal(t, int64(-200), resp.BalanceAfter)
	})

	t.Run("異常系: ゼロ以下の金額は拒否", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(t, repo, account.NewTable(), &stubRand{}, false)

		_, err := svc.Grant(context.Background(), &AdjustRequest{UserID: "user123", Amount: 0})

		assert.ErrorIs(t, err, account.ErrInvalidAmount)
		assert.Equal(t, 0, repo.saveCount)
	})

	t.Run("異常系: 保存失敗で残高を巻き戻す", func(t *testing.T) {
		repo := &fakeRepo{failSave: true}
		table := account.NewTable()
		table["user123"] = account.MustNewAccount("user123", 500, 0, 0)
		svc := newTestService(t, repo, table, &stubRand{}, false)

		_, err := svc.Grant(context.Background(), &AdjustRequest{UserID: "user123", Amount: 100})

		require.Error(t, err)
		assert.Equal(t, int64(500), table["user123"].Balance())
	})
}

func TestEconomyApplicationService_Snapshot(t *testing.T) {
	repo := &fakeRepo{}
	table := account.NewTable()
	table["user123"] = account.MustNewAccount("user123", 500, 0, 0)
	svc := newTestService(t, repo, table, &stubRand{}, false)

	snapshot := svc.Snapshot()

	// スナップショットは以後の変更の影響を受けない
	require.NoError(t, table["user123"].Credit(100))
	assert.Equal(t, int64(500), snapshot["user123"].Balance())
}
