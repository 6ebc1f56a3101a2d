package cli

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/epic-events/epic-crm/internal/contracts"
	"github.com/epic-events/epic-crm/internal/shared"
)

var errPasswordMismatch = &shared.ValidationError{Field: "password", Message: "entries do not match"}

// timeLayouts are tried in order when parsing dates typed at the prompt.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// assignments holds key=value arguments of update commands.
type assignments map[string]string

// parseAssignments reads key=value tokens. A token without '=' continues the value of the
// preceding key, so `notes=bring the cake` yields notes="bring the cake".
func parseAssignments(tokens []string) (assignments, error) {
	out := assignments{}
	current := ""
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			if current == "" {
				return nil, shared.NewValidationError("", "expected key=value, got %q", tok)
			}
			out[current] += " " + tok
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, shared.NewValidationError("", "missing key before '=' in %q", tok)
		}
		if _, dup := out[key]; dup {
			return nil, shared.NewValidationError(key, "given more than once")
		}
		out[key] = value
		current = key
	}
	if len(out) == 0 {
		return nil, shared.NewValidationError("", "nothing to update, pass key=value pairs")
	}
	return out, nil
}

// only rejects keys outside allowed.
func (a assignments) only(allowed ...string) error {
	permitted := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		permitted[k] = true
	}
	var unknown []string
	for k := range a {
		if !permitted[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return shared.NewValidationError(unknown[0], "unknown field, expected one of %s", strings.Join(allowed, ", "))
}

func (a assignments) str(key string) *string {
	v, ok := a[key]
	if !ok {
		return nil
	}
	return &v
}

func (a assignments) id(key string) (*int64, error) {
	v, ok := a[key]
	if !ok {
		return nil, nil
	}
	id, err := parseID(v, key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (a assignments) integer(key string) (*int, error) {
	v, ok := a[key]
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, shared.NewValidationError(key, "must be a whole number")
	}
	return &n, nil
}

func (a assignments) money(key string) (*contracts.Money, error) {
	v, ok := a[key]
	if !ok {
		return nil, nil
	}
	m, err := parseMoney(v, key)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (a assignments) date(key string) (*time.Time, error) {
	v, ok := a[key]
	if !ok {
		return nil, nil
	}
	t, err := parseTime(v, key)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseID(s, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.NewValidationError(field, "must be a positive integer, got %q", s)
	}
	return id, nil
}

func parseMoney(s, field string) (contracts.Money, error) {
	m, err := contracts.ParseMoney(s)
	if err != nil {
		return 0, shared.NewValidationError(field, "%v", err)
	}
	return m, nil
}

func parseTime(s, field string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, shared.NewValidationError(field, "expected a date like 2026-06-01 or 2026-06-01T18:00, got %q", s)
}
