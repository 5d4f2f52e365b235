// Package config reads umkmctl settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoDatabase is returned by RequireDatabase when no database URL is set.
var ErrNoDatabase = errors.New("no database URL: set UMKM_DATABASE_URL, pass --url, or run 'umkmctl remote use <name>'")

type Config struct {
	DatabaseURL     string        // UMKM_DATABASE_URL
	AuthSecret      string        // UMKM_AUTH_SECRET (legacy database secret or ID token)
	CredentialsFile string        // GOOGLE_APPLICATION_CREDENTIALS (service account JSON)
	HTTPTimeout     time.Duration // UMKM_HTTP_TIMEOUT (default 30s; 0 = none)
	NATSURL         string        // UMKM_NATS_URL (optional, empty = no events)
	JournalURL      string        // UMKM_JOURNAL_URL (optional postgres DSN, empty = no journal)
	SofficeBin      string        // UMKM_SOFFICE_BIN (default "soffice")
	LogLevel        string        // UMKM_LOG_LEVEL (default "info")

	// Backup settings; each destination is enabled by its first field.
	BackupDir        string // UMKM_BACKUP_DIR
	BackupS3Bucket   string // UMKM_BACKUP_S3_BUCKET
	BackupS3Prefix   string // UMKM_BACKUP_S3_PREFIX (default "umkm/backups/")
	BackupS3Region   string // UMKM_BACKUP_S3_REGION (default "us-east-1")
	BackupS3Endpoint string // UMKM_BACKUP_S3_ENDPOINT (custom endpoint for MinIO)
	BackupGitRepo    string // UMKM_BACKUP_GIT_REPO (path to an existing clone)
	BackupGitFile    string // UMKM_BACKUP_GIT_FILE (default "rtdb.json")
	BackupGitBranch  string // UMKM_BACKUP_GIT_BRANCH (default "main")
	BackupGitPush    bool   // UMKM_BACKUP_GIT_PUSH (default true)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:      os.Getenv("UMKM_DATABASE_URL"),
		AuthSecret:       os.Getenv("UMKM_AUTH_SECRET"),
		CredentialsFile:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		NATSURL:          os.Getenv("UMKM_NATS_URL"),
		JournalURL:       os.Getenv("UMKM_JOURNAL_URL"),
		SofficeBin:       envOrDefault("UMKM_SOFFICE_BIN", "soffice"),
		LogLevel:         envOrDefault("UMKM_LOG_LEVEL", "info"),
		BackupDir:        os.Getenv("UMKM_BACKUP_DIR"),
		BackupS3Bucket:   os.Getenv("UMKM_BACKUP_S3_BUCKET"),
		BackupS3Prefix:   envOrDefault("UMKM_BACKUP_S3_PREFIX", "umkm/backups/"),
		BackupS3Region:   envOrDefault("UMKM_BACKUP_S3_REGION", "us-east-1"),
		BackupS3Endpoint: os.Getenv("UMKM_BACKUP_S3_ENDPOINT"),
		BackupGitRepo:    os.Getenv("UMKM_BACKUP_GIT_REPO"),
		BackupGitFile:    envOrDefault("UMKM_BACKUP_GIT_FILE", "rtdb.json"),
		BackupGitBranch:  envOrDefault("UMKM_BACKUP_GIT_BRANCH", "main"),
	}

	timeout, err := time.ParseDuration(envOrDefault("UMKM_HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("UMKM_HTTP_TIMEOUT: %w", err)
	}
	c.HTTPTimeout = timeout

	push, err := strconv.ParseBool(envOrDefault("UMKM_BACKUP_GIT_PUSH", "true"))
	if err != nil {
		return nil, fmt.Errorf("UMKM_BACKUP_GIT_PUSH: %w", err)
	}
	c.BackupGitPush = push

	return c, nil
}

// RequireDatabase checks that a database URL is set and well formed.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return ErrNoDatabase
	}
	if !strings.HasPrefix(c.DatabaseURL, "https://") && !strings.HasPrefix(c.DatabaseURL, "http://") {
		return fmt.Errorf("database URL %q must start with https://", c.DatabaseURL)
	}
	return nil
}

// BackupEnabled reports whether any backup destination is configured.
func (c *Config) BackupEnabled() bool {
	return c.BackupDir != "" || c.BackupS3Bucket != "" || c.BackupGitRepo != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
