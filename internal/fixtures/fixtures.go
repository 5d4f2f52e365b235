// Package fixtures embeds the datasets used by the restore and reseed
// commands.
package fixtures

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alfredjeanlab/umkmctl/internal/model"
)

//go:embed data/*.json
var dataFS embed.FS

// Built-in dataset names.
const (
	Restore = "restore"
	Reseed  = "reseed"
)

// ReseedIDs are the businesses replaced by the reseed dataset.
var ReseedIDs = []string{"umkm5", "umkm9"}

// ErrUnknown is returned by Load for a name with no embedded dataset.
var ErrUnknown = errors.New("unknown dataset")

// Names lists the embedded datasets.
func Names() []string {
	entries, _ := dataFS.ReadDir("data")
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Raw returns the embedded JSON for name.
func Raw(name string) ([]byte, error) {
	data, err := dataFS.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknown, name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Load parses the embedded dataset called name.
func Load(name string) (model.Dataset, error) {
	data, err := Raw(name)
	if err != nil {
		return nil, err
	}
	return model.ParseDataset(data)
}

// LoadFile parses a dataset from a JSON file on disk.
func LoadFile(path string) (model.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return model.ParseDataset(data)
}

// Resolve loads from path when set, else the embedded dataset name.
func Resolve(name, path string) (model.Dataset, error) {
	if path != "" {
		return LoadFile(path)
	}
	return Load(name)
}
