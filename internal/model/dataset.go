package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Dataset is a partial database tree: node -> id -> value. It can be sent
// as a single root PATCH or written entry by entry with PUT.
type Dataset map[string]map[string]json.RawMessage

// Entry addresses one value of a Dataset.
type Entry struct {
	Node  string
	ID    string
	Value json.RawMessage
}

// Path returns the database path of the entry ("<node>/<id>").
func (e Entry) Path() string { return e.Node + "/" + e.ID }

// Entries returns every value in deterministic order: nodes follow Nodes
// first, then any other node alphabetically; ids are sorted within a node.
func (d Dataset) Entries() []Entry {
	var out []Entry
	for _, node := range d.nodeOrder() {
		ids := make([]string, 0, len(d[node]))
		for id := range d[node] {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			out = append(out, Entry{Node: node, ID: id, Value: d[node][id]})
		}
	}
	return out
}

// UpdatePaths flattens d into a multi-path update body keyed by
// "<node>/<id>". A root PATCH with this body replaces only those entries;
// a nested {node: {id: value}} body would replace each node whole.
func (d Dataset) UpdatePaths() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, d.Len())
	for node, entries := range d {
		for id, v := range entries {
			out[node+"/"+id] = v
		}
	}
	return out
}

// IDs returns the distinct ids across all nodes, sorted.
func (d Dataset) IDs() []string {
	seen := map[string]bool{}
	for _, entries := range d {
		for id := range entries {
			seen[id] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of values.
func (d Dataset) Len() int {
	n := 0
	for _, entries := range d {
		n += len(entries)
	}
	return n
}

func (d Dataset) nodeOrder() []string {
	known := map[string]bool{}
	var order []string
	for _, n := range Nodes {
		known[n] = true
		if _, ok := d[n]; ok {
			order = append(order, n)
		}
	}
	var rest []string
	for n := range d {
		if !known[n] {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// ParseDataset decodes a JSON object of the form {node: {id: value}}.
func ParseDataset(data []byte) (Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if ds == nil {
		return nil, fmt.Errorf("parsing dataset: empty document")
	}
	return ds, nil
}
