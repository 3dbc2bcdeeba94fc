package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("PTB_AUTH_JWT_SECRET", "test-secret-key-for-unit-testing")
	t.Setenv("PTB_SERVER_PORT", "9090")

	cfg, err := loadWithoutFile(t)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 Port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Auth.AccessTokenTTL != 15*time.Minute {
		t.Errorf("期望 AccessTokenTTL=15m，实际=%v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Mail.Provider != "log" {
		t.Errorf("期望 Mail.Provider=log，实际=%s", cfg.Mail.Provider)
	}
	if cfg.Database.Name != "parent_teacher_bridge" {
		t.Errorf("期望 db.name 默认值，实际=%s", cfg.Database.Name)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: 7000
auth:
  jwt_secret: "file-secret-key-0123456789"
  access_token_ttl: 30m
log:
  level: debug
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("期望 Port=7000，实际=%d", cfg.Server.Port)
	}
	if cfg.Auth.AccessTokenTTL != 30*time.Minute {
		t.Errorf("期望 AccessTokenTTL=30m，实际=%v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("期望 Log.Level=debug，实际=%s", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080},
			Auth:   AuthConfig{JWTSecret: "0123456789abcdef"},
			Mail:   MailConfig{Provider: "log"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"合法配置", func(c *Config) {}, false},
		{"密钥为空", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"密钥过短", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"sendgrid 缺少 key", func(c *Config) { c.Mail.Provider = "sendgrid" }, true},
		{"sendgrid 完整", func(c *Config) { c.Mail.Provider = "sendgrid"; c.Mail.SendGridAPIKey = "SG.x" }, false},
		{"未知邮件通道", func(c *Config) { c.Mail.Provider = "smtp" }, true},
	}

	for _, tt := range tests {
		c := base()
		tt.mutate(c)
		err := c.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() err=%v, wantErr=%v", tt.name, err, tt.wantErr)
		}
	}
}

// loadWithoutFile 在无配置文件的临时目录中加载，仅依赖默认值与环境变量
func loadWithoutFile(t *testing.T) (*Config, error) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("获取工作目录失败: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("切换目录失败: %v", err)
	}
	defer os.Chdir(wd)
	return Load("")
}
