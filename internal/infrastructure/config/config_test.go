package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func()
		cleanupEnv  func()
		wantError   bool
		checkConfig func(*testing.T, *Config)
	}{
		{
			name: "正常系: デフォルト値で設定を読み込む",
			setupEnv: func() {
				os.Setenv("JWT_SECRET", "test-secret")
			},
			cleanupEnv: func() {
				os.Unsetenv("JWT_SECRET")
			},
			wantError: false,
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "test-secret", cfg.JWT.Secret)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, StoreBackendFile, cfg.Store.Backend)
				assert.Equal(t, "economy.json", cfg.Store.FilePath)
				assert.True(t, cfg.Economy.AllowNegativeBalance)
				assert.False(t, cfg.Economy.CooldownOnRejected)
				assert.Equal(t, 10, cfg.Economy.LeaderboardLimit)
				assert.False(t, cfg.AdminAPI.Enabled)
			},
		},
		{
			name: "正常系: 環境変数から設定を読み込む",
			setupEnv: func() {
				os.Setenv("ENVIRONMENT", "production")
				os.Setenv("SERVER_PORT", "9000")
				os.Setenv("JWT_SECRET", "prod-secret")
				os.Setenv("JWT_EXPIRATION", "12h")
				os.Setenv("STORE_FILE_PATH", "/var/lib/coin/economy.json")
				os.Setenv("ECONOMY_ALLOW_NEGATIVE_BALANCE", "false")
				os.Setenv("ECONOMY_COOLDOWN_ON_REJECTED", "true")
				os.Setenv("ECONOMY_LEADERBOARD_LIMIT", "25")
			},
			cleanupEnv: func() {
				os.Unsetenv("ENVIRONMENT")
				os.Unsetenv("SERVER_PORT")
				os.Unsetenv("JWT_SECRET")
				os.Unsetenv("JWT_EXPIRATION")
				os.Unsetenv("STORE_FILE_PATH")
				os.Unsetenv("ECONOMY_ALLOW_NEGATIVE_BALANCE")
				os.Unsetenv("ECONOMY_COOLDOWN_ON_REJECTED")
				os.Unsetenv("ECONOMY_LEADERBOARD_LIMIT")
			},
			wantError: false,
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "production", cfg.Environment)
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, 12*time.Hour, cfg.JWT.Expiration)
				assert.Equal(t, "/var/lib/coin/economy.json", cfg.Store.FilePath)
				assert.False(t, cfg.Economy.AllowNegativeBalance)
				assert.True(t, cfg.Economy.CooldownOnRejected)
				assert.Equal(t, 25, cfg.Economy.LeaderboardLimit)
			},
		},
		{
			name: "正常系: MySQLバックエンドの設定",
			setupEnv: func() {
				os.Setenv("JWT_SECRET", "test-secret")
				os.Setenv("STORE_BACKEND", "mysql")
				os.Setenv("DB_HOST", "db.example.com")
				os.Setenv("DB_PORT", "3307")
				os.Setenv("DB_NAME", "economy_prod")
			},
			cleanupEnv: func() {
				os.Unsetenv("JWT_SECRET")
				os.Unsetenv("STORE_BACKEND")
				os.Unsetenv("DB_HOST")
				os.Unsetenv("DB_PORT")
				os.Unsetenv("DB_NAME")
			},
			wantError: false,
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StoreBackendMySQL, cfg.Store.Backend)
				assert.Equal(t, "db.example.com", cfg.Database.Host)
				assert.Equal(t, 3307, cfg.Database.Port)
				assert.Equal(t, "economy_prod", cfg.Database.Database)
			},
		},
		{
			name: "正常系: 管理APIの設定",
			setupEnv: func() {
				os.Setenv("JWT_SECRET", "test-secret")
				os.Setenv("ADMIN_API_ENABLED", "true")
				os.Setenv("ADMIN_API_KEY", "admin-key")
				os.Setenv("ADMIN_API_ALLOWED_IPS", "10.0.0.1, 10.0.0.2")
			},
			cleanupEnv: func() {
				os.Unsetenv("JWT_SECRET")
				os.Unsetenv("ADMIN_API_ENABLED")
				os.Unsetenv("ADMIN_API_KEY")
				os.Unsetenv("ADMIN_API_ALLOWED_IPS")
			},
			wantError: false,
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.AdminAPI.Enabled)
				assert.Equal(t, "admin-key", cfg.AdminAPI.APIKey)
				assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.AdminAPI.AllowedIPs)
			},
		},
		{
			name:       "異常系: JWT_SECRETが未設定",
			setupEnv:   func() {},
			cleanupEnv: func() {},
			wantError:  true,
		},
		{
			name: "異常系: 未知のストアバックエンド",
			setupEnv: func() {
				os.Setenv("JWT_SECRET", "test-secret")
				os.Setenv("STORE_BACKEND", "redis")
			},
			cleanupEnv: func() {
				os.Unsetenv("JWT_SECRET")
				os.Unsetenv("STORE_BACKEND")
			},
			wantError: true,
		},
		{
			name: "異常系: 管理API有効だがAPIキーが未設定",
			setupEnv: func() {
				os.Setenv("JWT_SECRET", "test-secret")
				os.Setenv("ADMIN_API_ENABLED", "true")
			},
			cleanupEnv: func() {
				os.Unsetenv("JWT_SECRET")
				os.Unsetenv("ADMIN_API_ENABLED")
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			defer tt.cleanupEnv()

			cfg, err := Load()

			if tt.wantError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.checkConfig != nil {
				tt.checkConfig(t, cfg)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "secret",
		Database: "economy_db",
	}

	dsn := cfg.DSN()

	assert.Equal(t, "root:secret@tcp(localhost:3306)/economy_db?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}
