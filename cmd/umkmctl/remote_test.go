package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alfredjeanlab/umkmctl/internal/config"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	in := RemotesConfig{
		Active: "prod",
		Remotes: map[string]Remote{
			"prod":    {URL: "https://final-ca080-default-rtdb.firebaseio.com", Secret: "sec_abc", NATSURL: "nats://prod:4222"},
			"staging": {URL: "https://staging-rtdb.firebaseio.com"},
		},
	}
	if err := saveRemotesConfig(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := loadRemotesConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Active != "prod" {
		t.Errorf("Active = %q, want %q", got.Active, "prod")
	}
	prod := got.Remotes["prod"]
	if prod.URL != "https://final-ca080-default-rtdb.firebaseio.com" || prod.Secret != "sec_abc" || prod.NATSURL != "nats://prod:4222" {
		t.Errorf("prod remote = %+v, wrong values", prod)
	}
}

func TestLoadRemotesConfig_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	rc, err := loadRemotesConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rc.Active != "" || len(rc.Remotes) != 0 || rc.Remotes == nil {
		t.Errorf("expected empty config, got %+v", rc)
	}
}

func TestSaveRemotesConfig_Permissions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := saveRemotesConfig(RemotesConfig{Remotes: map[string]Remote{}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	path, _ := remoteConfigPath()
	check := func(p string, want os.FileMode) {
		t.Helper()
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if got := info.Mode().Perm(); got != want {
			t.Errorf("%s permissions = %04o, want %04o", p, got, want)
		}
	}
	check(path, 0o600)
	check(filepath.Dir(path), 0o700)
}

func TestRemoteLifecycle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	mustRun := func(fn func() error) {
		t.Helper()
		if err := fn(); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	remoteAddCmd.SetOut(&buf)
	remoteUseCmd.SetOut(&buf)
	remoteRemoveCmd.SetOut(&buf)

	url := "https://final-ca080-default-rtdb.firebaseio.com/"
	mustRun(func() error { return remoteAddCmd.RunE(remoteAddCmd, []string{"prod", url}) })
	mustRun(func() error { return remoteAddCmd.RunE(remoteAddCmd, []string{"prod", url}) }) // upsert
	mustRun(func() error { return remoteUseCmd.RunE(remoteUseCmd, []string{"prod"}) })

	rc, _ := loadRemotesConfig()
	if rc.Active != "prod" {
		t.Fatalf("Active = %q, want %q", rc.Active, "prod")
	}
	if got := rc.Remotes["prod"].URL; got != strings.TrimSuffix(url, "/") {
		t.Errorf("URL = %q, trailing slash not trimmed", got)
	}

	buf.Reset()
	remoteListCmd.SetOut(&buf)
	mustRun(func() error { return remoteListCmd.RunE(remoteListCmd, nil) })
	if !strings.Contains(buf.String(), "* prod") {
		t.Errorf("list missing active marker; got:\n%s", buf.String())
	}

	buf.Reset()
	remoteShowCmd.SetOut(&buf)
	mustRun(func() error { return remoteShowCmd.RunE(remoteShowCmd, nil) })
	if out := buf.String(); !strings.Contains(out, "prod") || !strings.Contains(out, "firebaseio.com") || !strings.Contains(out, "(active)") {
		t.Errorf("show missing expected content; got:\n%s", out)
	}

	mustRun(func() error { return remoteRemoveCmd.RunE(remoteRemoveCmd, []string{"prod"}) })
	rc, _ = loadRemotesConfig()
	if _, ok := rc.Remotes["prod"]; ok {
		t.Error("remote 'prod' should be gone")
	}
	if rc.Active != "" {
		t.Errorf("Active should be cleared, got %q", rc.Active)
	}
}

func TestRemoteSecretHandling(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := remoteAddCmd.Flags().Set("secret", "sec_verylongsecret"); err != nil {
		t.Fatalf("set secret flag: %v", err)
	}
	t.Cleanup(func() { _ = remoteAddCmd.Flags().Set("secret", "") })

	var buf bytes.Buffer
	remoteAddCmd.SetOut(&buf)
	remoteUseCmd.SetOut(&buf)
	if err := remoteAddCmd.RunE(remoteAddCmd, []string{"prod", "https://x.firebaseio.com"}); err != nil {
		t.Fatal(err)
	}
	if err := remoteUseCmd.RunE(remoteUseCmd, []string{"prod"}); err != nil {
		t.Fatal(err)
	}

	buf.Reset()
	remoteListCmd.SetOut(&buf)
	if err := remoteListCmd.RunE(remoteListCmd, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "sec_verylongsecret") {
		t.Error("full secret must not appear in list output")
	}
	if !strings.Contains(buf.String(), "sec_...") || strings.Contains(buf.String(), "sec_v") {
		t.Errorf("expected truncated secret in list; got:\n%s", buf.String())
	}

	buf.Reset()
	remoteShowCmd.SetOut(&buf)
	if err := remoteShowCmd.RunE(remoteShowCmd, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "sec_verylongsecret") {
		t.Error("full secret must not appear in show output")
	}
	if !strings.Contains(buf.String(), "sec_**************") {
		t.Errorf("expected masked secret in show; got:\n%s", buf.String())
	}
}

func TestSecretMasking(t *testing.T) {
	tests := []struct {
		secret, truncated, masked string
	}{
		{"", "", "********"},
		{"abc", "********", "********"},
		{"12345678", "********", "********"},
		{"0123456789abcde", "********", "********"},
		{"0123456789abcdef", "0123...", "0123************"},
	}
	for _, tc := range tests {
		if got := truncateSecret(tc.secret); got != tc.truncated {
			t.Errorf("truncateSecret(%q) = %q, want %q", tc.secret, got, tc.truncated)
		}
		if got := maskSecret(tc.secret); got != tc.masked {
			t.Errorf("maskSecret(%q) = %q, want %q", tc.secret, got, tc.masked)
		}
	}
}

func TestRemoteErrorCases(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"add without scheme", func() error { return remoteAddCmd.RunE(remoteAddCmd, []string{"bad", "x.firebaseio.com"}) }},
		{"use unknown", func() error { return remoteUseCmd.RunE(remoteUseCmd, []string{"ghost"}) }},
		{"remove unknown", func() error { return remoteRemoveCmd.RunE(remoteRemoveCmd, []string{"ghost"}) }},
		{"show no active", func() error { return remoteShowCmd.RunE(remoteShowCmd, nil) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			if err := tc.fn(); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestApplyRemoteDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	resetRemoteCache := func() {
		remoteOnce = sync.Once{}
		cachedRemote = Remote{}
	}
	t.Cleanup(resetRemoteCache)

	err := saveRemotesConfig(RemotesConfig{
		Active:  "prod",
		Remotes: map[string]Remote{"prod": {URL: "https://remote.firebaseio.com", Secret: "remote-secret", NATSURL: "nats://remote:4222"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	resetRemoteCache()

	c := &config.Config{AuthSecret: "env-secret"}
	applyRemoteDefaults(c)
	if c.DatabaseURL != "https://remote.firebaseio.com" {
		t.Errorf("DatabaseURL = %q, want remote URL", c.DatabaseURL)
	}
	if c.AuthSecret != "env-secret" {
		t.Errorf("AuthSecret = %q, env value should win", c.AuthSecret)
	}
	if c.NATSURL != "nats://remote:4222" {
		t.Errorf("NATSURL = %q", c.NATSURL)
	}
}
