// File: internal/resolver/constraints.go
// Brief: Advisory constraint evaluation over declared option/positional keys.

package resolver

import (
	"fmt"
	"strings"

	"github.com/example/clispec/internal/document"
)

// ConstraintSet is the declared rule set of an object or action.
type ConstraintSet struct {
	Requires     []string
	Conflicts    [][]string
	ExactlyOneOf [][]string
	AtLeastOneOf [][]string
}

// constraintSetFrom reads the recognized rule fields out of a constraints
// mapping, skipping anything of an unexpected shape; the schema validator is
// the layer that complains about malformed rules.
func constraintSetFrom(m *document.Mapping) ConstraintSet {
	var cs ConstraintSet
	cs.Requires = stringList(m, "requires")
	cs.Conflicts = stringGroups(m, "conflicts")
	cs.ExactlyOneOf = stringGroups(m, "exactly_one_of")
	cs.AtLeastOneOf = stringGroups(m, "at_least_one_of")
	return cs
}

func stringList(m *document.Mapping, key string) []string {
	val, ok := m.Get(key)
	if !ok || val.Kind() != document.KindList {
		return nil
	}
	var out []string
	for _, item := range val.Items() {
		if item.Kind() == document.KindString {
			out = append(out, item.Str())
		}
	}
	return out
}

func stringGroups(m *document.Mapping, key string) [][]string {
	val, ok := m.Get(key)
	if !ok || val.Kind() != document.KindList {
		return nil
	}
	var out [][]string
	for _, group := range val.Items() {
		if group.Kind() != document.KindList {
			continue
		}
		var keys []string
		for _, item := range group.Items() {
			if item.Kind() == document.KindString {
				keys = append(keys, item.Str())
			}
		}
		out = append(out, keys)
	}
	return out
}

// EvaluateConstraints checks the declared key set against every rule and
// returns one issue string per violation. All rules are evaluated
// independently; evaluation itself never fails.
func EvaluateConstraints(selected []string, cs ConstraintSet) []string {
	present := make(map[string]bool, len(selected))
	for _, key := range selected {
		present[key] = true
	}

	var issues []string
	for _, name := range cs.Requires {
		if !present[name] {
			issues = append(issues, fmt.Sprintf("requires: missing %s", name))
		}
	}
	for _, pair := range cs.Conflicts {
		if len(pair) < 2 {
			continue
		}
		if present[pair[0]] && present[pair[1]] {
			issues = append(issues, fmt.Sprintf("conflicts: %s vs %s", pair[0], pair[1]))
		}
	}
	for _, group := range cs.ExactlyOneOf {
		n := countPresent(group, present)
		if n != 1 {
			issues = append(issues, fmt.Sprintf("exactly_one_of violation: %s present=%d", formatGroup(group), n))
		}
	}
	for _, group := range cs.AtLeastOneOf {
		if countPresent(group, present) < 1 {
			issues = append(issues, fmt.Sprintf("at_least_one_of violation: %s", formatGroup(group)))
		}
	}
	return issues
}

func countPresent(group []string, present map[string]bool) int {
	n := 0
	for _, key := range group {
		if present[key] {
			n++
		}
	}
	return n
}

// formatGroup renders a key group as ['a', 'b'], the format downstream
// tooling greps for in issue strings.
func formatGroup(group []string) string {
	quoted := make([]string, len(group))
	for i, key := range group {
		quoted[i] = "'" + key + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// selectedKeys collects the option and positional identifiers declared under
// an object or action spec: the key set constraint rules are evaluated
// against.
func selectedKeys(spec *document.Mapping) []string {
	var out []string
	seen := make(map[string]bool)
	for _, section := range []string{"options", "positionals"} {
		m, ok := mappingEntry(spec, section)
		if !ok {
			continue
		}
		for _, key := range m.Keys() {
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	return out
}
