// Package snapshot edits exported database snapshots in place. Edits go
// through gjson/sjson so key order and untouched values survive unchanged.
package snapshot

import (
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/alfredjeanlab/umkmctl/internal/model"
)

// Default file names used by the balance command.
const (
	DefaultExportFile  = "final-ca080-default-rtdb-export (2).json"
	DefaultBalanceFile = "database_with_balance.json"
)

var (
	ErrInvalidJSON   = errors.New("not a valid JSON file")
	ErrInputNotFound = errors.New("file not found")
)

// BalanceField is the field added to user records lacking it.
const BalanceField = "balance"

// zeroBalance is written as a float literal so readers keep decoding it as
// a double.
var zeroBalance = []byte("0.0")

// Options controls output formatting. A zero Width puts every array
// element on its own line.
var Options = &pretty.Options{Width: 0, Prefix: "", Indent: "    ", SortKeys: false}

// BalanceResult describes what AddBalance changed.
type BalanceResult struct {
	// Node is the users node that was processed ("users" or "user"); empty
	// when the snapshot has neither as an object.
	Node  string
	Added []string
}

// AddBalance sets balance to 0.0 on every user record that has no balance.
// The users node is looked up as "users" first, then "user".
func AddBalance(data []byte) ([]byte, *BalanceResult, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, ErrInvalidJSON
	}
	res := &BalanceResult{}
	for _, node := range []string{model.NodeUsers, model.NodeUser} {
		if gjson.GetBytes(data, node).IsObject() {
			res.Node = node
			break
		}
	}
	if res.Node == "" {
		return pretty.PrettyOptions(data, Options), res, nil
	}

	gjson.GetBytes(data, res.Node).ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() && !value.Get(BalanceField).Exists() {
			res.Added = append(res.Added, key.String())
		}
		return true
	})

	out := data
	for _, uid := range res.Added {
		path := res.Node + "." + gjson.Escape(uid) + "." + BalanceField
		var err error
		out, err = sjson.SetRawBytes(out, path, zeroBalance)
		if err != nil {
			return nil, nil, fmt.Errorf("setting balance for %s: %w", uid, err)
		}
	}
	return pretty.PrettyOptions(out, Options), res, nil
}

// AddBalanceFile applies AddBalance to the file at in and writes the result
// to out. The output is written even when no users node was found.
func AddBalanceFile(in, out string) (*BalanceResult, error) {
	data, err := os.ReadFile(in)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, in)
		}
		return nil, fmt.Errorf("reading %s: %w", in, err)
	}
	updated, res, err := AddBalance(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in, err)
	}
	if err := os.WriteFile(out, updated, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", out, err)
	}
	return res, nil
}

// Fingerprint hashes the compacted form of a JSON document, so formatting
// differences do not change the result.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(pretty.Ugly(data))
}

// Pretty re-indents a JSON document with the package Options.
func Pretty(data []byte) []byte {
	return pretty.PrettyOptions(data, Options)
}
