// Package rename computes and applies batch rename plans: a prefix, an
// optional zero-padded index, and the object's cleaned base name, joined
// with underscores.
package rename

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/skirila/fbxbatch/internal/errdefs"
	"github.com/skirila/fbxbatch/internal/host"
)

const sep = "_"

// Rename is one planned rename.
type Rename struct {
	ID      host.ObjectID
	OldName string
	NewName string
}

// Plan is an ordered rename plan, one entry per selected object.
type Plan []Rename

// NewPlan derives the plan from the objects in selection order. With
// addIndex, indices start at 1 and are zero-padded to three digits. The
// plan never deduplicates: name collisions are the host's concern.
func NewPlan(objects []host.Object, prefix string, addIndex bool) (Plan, error) {
	prefix = strings.TrimRight(prefix, sep)
	if prefix == "" {
		return nil, fmt.Errorf("%w: prefix must not be empty", errdefs.ErrInvalidInput)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: no objects selected", errdefs.ErrInvalidInput)
	}

	plan := make(Plan, 0, len(objects))
	for i, obj := range objects {
		parts := []string{prefix}
		if addIndex {
			parts = append(parts, fmt.Sprintf("%03d", i+1))
		}
		if base := baseName(obj.Name); base != "" {
			parts = append(parts, base)
		}
		plan = append(plan, Rename{
			ID:      obj.ID,
			OldName: obj.Name,
			NewName: strings.Join(parts, sep),
		})
	}
	return plan, nil
}

// Apply performs the plan against the scene, in order. The returned plan
// carries the names the host actually applied, which may differ from the
// requested ones when the host resolves a collision. On error the renames
// already applied are kept; the returned plan covers exactly those.
func Apply(s host.Scene, plan Plan) (Plan, error) {
	applied := make(Plan, 0, len(plan))
	for _, r := range plan {
		got, err := s.SetName(r.ID, r.NewName)
		if err != nil {
			return applied, fmt.Errorf("rename %q: %w", r.OldName, err)
		}
		applied = append(applied, Rename{ID: r.ID, OldName: r.OldName, NewName: got})
	}
	return applied, nil
}

// baseName strips a leading all-caps token and a following all-digit token,
// so renaming an already prefixed object does not stack prefixes:
// "SM_001_Cube" cleans to "Cube". The result may be empty.
func baseName(name string) string {
	tokens := strings.Split(name, sep)
	if len(tokens) > 0 && isCapsToken(tokens[0]) {
		tokens = tokens[1:]
	}
	if len(tokens) > 0 && isDigitToken(tokens[0]) {
		tokens = tokens[1:]
	}
	return strings.Join(tokens, sep)
}

// isCapsToken reports whether s contains at least one letter and no
// lowercase letters.
func isCapsToken(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func isDigitToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
