package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// RemotesConfig holds all named databases and tracks which one is active.
type RemotesConfig struct {
	Active  string            `toml:"active"`
	Remotes map[string]Remote `toml:"remotes"`
}

// Remote is a named database profile.
type Remote struct {
	URL     string `toml:"url"`
	Secret  string `toml:"secret,omitempty"`
	NATSURL string `toml:"nats_url,omitempty"`
}

func remoteConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "umkmctl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "remotes.toml"), nil
}

func loadRemotesConfig() (RemotesConfig, error) {
	path, err := remoteConfigPath()
	if err != nil {
		return RemotesConfig{}, err
	}
	var rc RemotesConfig
	if _, err := toml.DecodeFile(path, &rc); err != nil {
		if os.IsNotExist(err) {
			return RemotesConfig{Remotes: map[string]Remote{}}, nil
		}
		return RemotesConfig{}, err
	}
	if rc.Remotes == nil {
		rc.Remotes = map[string]Remote{}
	}
	return rc, nil
}

func saveRemotesConfig(rc RemotesConfig) error {
	path, err := remoteConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(rc)
}

// Cached active remote, loaded once per process.
var (
	remoteOnce   sync.Once
	cachedRemote Remote
)

func activeRemote() Remote {
	remoteOnce.Do(func() {
		rc, err := loadRemotesConfig()
		if err != nil || rc.Active == "" {
			return
		}
		cachedRemote = rc.Remotes[rc.Active]
	})
	return cachedRemote
}

func activeRemoteURL() string     { return activeRemote().URL }
func activeRemoteSecret() string  { return activeRemote().Secret }
func activeRemoteNATSURL() string { return activeRemote().NATSURL }
