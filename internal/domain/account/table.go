package account

// Table 全ユーザーのアカウントテーブル
// 起動時に一括ロードされ、変更のたびに全体が保存される
type Table map[string]*Account

// NewTable 空のテーブルを作成
func NewTable() Table {
	return make(Table)
}

// GetOrCreate アカウントを取得する。存在しない場合は残高ゼロで遅延作成する
func (t Table) GetOrCreate(userID string) (*Account, error) {
	if a, ok := t[userID]; ok {
		return a, nil
	}
	a, err := NewEmptyAccount(userID)
	if err != nil {
		return nil, err
	}
	t[userID] = a
	return a, nil
}

// Get アカウントを取得する。存在しない場合はErrAccountNotFound
func (t Table) Get(userID string) (*Account, error) {
	a, ok := t[userID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

// Clone テーブルの深い複製を返す（読み取り側へのスナップショット提供用）
func (t Table) Clone() Table {
	c := make(Table, len(t))
	for id, a := range t {
		c[id] = a.Clone()
	}
	return c
}
