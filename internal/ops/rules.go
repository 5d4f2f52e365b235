package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/alfredjeanlab/umkmctl/internal/events"
)

// rulesPath is how rules writes appear in logs, events and the journal.
const rulesPath = ".settings/rules"

// DefaultRulesFile is read by `rules push` when no file is given.
const DefaultRulesFile = "database.rules.json"

// ErrInvalidRules is returned when a rules document has no "rules" object.
var ErrInvalidRules = errors.New(`rules document must be a JSON object with a "rules" object`)

type authChecker interface {
	HasAuth() bool
}

func (r *Runner) requireAuth() error {
	if a, ok := r.Client.(authChecker); ok && !a.HasAuth() {
		return ErrNoAuth
	}
	return nil
}

// PushRules replaces the database security rules. It needs credentials.
func (r *Runner) PushRules(ctx context.Context, rules json.RawMessage) error {
	if !json.Valid(rules) || !gjson.GetBytes(rules, "rules").IsObject() {
		return ErrInvalidRules
	}
	if err := r.requireAuth(); err != nil {
		return err
	}

	err := r.Client.PutRules(ctx, rules)
	r.recordTo(ctx, events.TopicRules, "PUT", rulesPath, len(rules), err)
	if err != nil {
		return fmt.Errorf("push rules: %w", err)
	}
	r.printf("database rules updated\n")
	return nil
}

// PullRules returns the current security rules. It needs credentials.
func (r *Runner) PullRules(ctx context.Context) (json.RawMessage, error) {
	if err := r.requireAuth(); err != nil {
		return nil, err
	}
	rules, err := r.Client.GetRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("pull rules: %w", err)
	}
	return rules, nil
}
