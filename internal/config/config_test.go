package config

import (
	"errors"
	"testing"
	"time"
)

// allEnvVars lists every variable Load reads; they are cleared between tests.
var allEnvVars = []string{
	"UMKM_DATABASE_URL", "UMKM_AUTH_SECRET", "GOOGLE_APPLICATION_CREDENTIALS",
	"UMKM_HTTP_TIMEOUT", "UMKM_NATS_URL", "UMKM_JOURNAL_URL", "UMKM_SOFFICE_BIN",
	"UMKM_LOG_LEVEL", "UMKM_BACKUP_DIR", "UMKM_BACKUP_S3_BUCKET", "UMKM_BACKUP_S3_PREFIX",
	"UMKM_BACKUP_S3_REGION", "UMKM_BACKUP_S3_ENDPOINT", "UMKM_BACKUP_GIT_REPO",
	"UMKM_BACKUP_GIT_FILE", "UMKM_BACKUP_GIT_BRANCH", "UMKM_BACKUP_GIT_PUSH",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearAllEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.SofficeBin != "soffice" {
		t.Errorf("SofficeBin = %q", cfg.SofficeBin)
	}
	if cfg.BackupS3Prefix != "umkm/backups/" {
		t.Errorf("BackupS3Prefix = %q", cfg.BackupS3Prefix)
	}
	if cfg.BackupS3Region != "us-east-1" {
		t.Errorf("BackupS3Region = %q", cfg.BackupS3Region)
	}
	if cfg.BackupGitFile != "rtdb.json" || cfg.BackupGitBranch != "main" || !cfg.BackupGitPush {
		t.Errorf("git defaults = %q %q %v", cfg.BackupGitFile, cfg.BackupGitBranch, cfg.BackupGitPush)
	}
	if cfg.BackupEnabled() {
		t.Error("BackupEnabled() = true with no destinations")
	}
	if !errors.Is(cfg.RequireDatabase(), ErrNoDatabase) {
		t.Errorf("RequireDatabase() = %v, want ErrNoDatabase", cfg.RequireDatabase())
	}
}

func TestLoadCustom(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("UMKM_DATABASE_URL", "https://final-ca080-default-rtdb.firebaseio.com")
	t.Setenv("UMKM_AUTH_SECRET", "secret")
	t.Setenv("UMKM_HTTP_TIMEOUT", "5s")
	t.Setenv("UMKM_NATS_URL", "nats://localhost:4222")
	t.Setenv("UMKM_BACKUP_S3_BUCKET", "bucket")
	t.Setenv("UMKM_BACKUP_S3_ENDPOINT", "http://minio:9000")
	t.Setenv("UMKM_BACKUP_GIT_PUSH", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.RequireDatabase(); err != nil {
		t.Errorf("RequireDatabase() = %v", err)
	}
	if cfg.AuthSecret != "secret" {
		t.Errorf("AuthSecret = %q", cfg.AuthSecret)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.NATSURL != "nats://localhost:4222" {
		t.Errorf("NATSURL = %q", cfg.NATSURL)
	}
	if !cfg.BackupEnabled() {
		t.Error("BackupEnabled() = false with S3 bucket set")
	}
	if cfg.BackupGitPush {
		t.Error("BackupGitPush = true, want false")
	}
}

func TestLoadInvalid(t *testing.T) {
	for _, tc := range []struct {
		name, key, val string
	}{
		{"Timeout", "UMKM_HTTP_TIMEOUT", "soon"},
		{"GitPush", "UMKM_BACKUP_GIT_PUSH", "maybe"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.val)
			}
		})
	}
}

func TestRequireDatabase_Scheme(t *testing.T) {
	cfg := &Config{DatabaseURL: "final-ca080-default-rtdb.firebaseio.com"}
	if err := cfg.RequireDatabase(); err == nil {
		t.Fatal("expected error for URL without scheme")
	}
}

func TestEnvOrDefault(t *testing.T) {
	for _, tc := range []struct {
		name     string
		key      string
		envVal   string
		fallback string
		want     string
	}{
		{"EmptyUsesDefault", "TEST_ENVDEFAULT_EMPTY", "", "default-val", "default-val"},
		{"SetUsesEnv", "TEST_ENVDEFAULT_SET", "custom", "default-val", "custom"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envVal)
			got := envOrDefault(tc.key, tc.fallback)
			if got != tc.want {
				t.Errorf("envOrDefault(%q, %q) = %q, want %q", tc.key, tc.fallback, got, tc.want)
			}
		})
	}
}
