// File: internal/resolver/resolver.go
// Brief: Resolution orchestrator: validate, expand, render, evaluate.

// Package resolver turns a raw clispec configuration document into a fully
// dereferenced, variable-substituted one and collects advisory constraint
// issues along the way. Fatal failures (schema violations, bad $ref
// pointers) abort with an error; constraint violations never do — callers
// always get a usable resolved document plus the issue list.
package resolver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/example/clispec/internal/document"
	"github.com/example/clispec/internal/schema"
)

// Result carries the resolved document and the advisory issues found in it.
// Issues are ordered deterministically: objects in declaration order (each
// object's own constraints before its actions'), then top-level actions.
type Result struct {
	Resolved *document.Value
	Issues   []string
}

// Options configures a resolution pass.
type Options struct {
	// Validator checks the raw document before expansion. Nil selects the
	// embedded core schema.
	Validator func(*document.Value) error
	// Env is accepted for forward compatibility; nothing reads it yet.
	Env map[string]string
	// Logger receives debug tracing. Nil disables it.
	Logger *zap.Logger
	// RenderEntityIDs enables the experimental per-entity render pass that
	// substitutes {{id}} inside each object and action with its own key.
	RenderEntityIDs bool
}

// Resolver resolves raw configuration documents. It holds no mutable state;
// a single Resolver is safe for concurrent use.
type Resolver struct {
	opts Options
}

// New returns a Resolver with the given options.
func New(opts Options) *Resolver {
	if opts.Validator == nil {
		opts.Validator = schema.ValidateConfig
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Resolver{opts: opts}
}

// Resolve validates raw against the core schema, expands $ref entries,
// renders {{vars.*}} placeholders from shared_defs.vars, and evaluates the
// declared constraints of every object and action. The input is never
// mutated; each call allocates a fresh output tree.
func Resolve(raw *document.Value) (*Result, error) {
	return New(Options{}).Resolve(raw)
}

// Resolve implements the resolution pipeline for the configured options.
func (r *Resolver) Resolve(raw *document.Value) (*Result, error) {
	log := r.opts.Logger
	if err := r.opts.Validator(raw); err != nil {
		return nil, err
	}

	expanded, err := Expand(raw)
	if err != nil {
		return nil, err
	}
	log.Debug("references expanded")

	vars := sharedVars(expanded)
	rendered := Render(expanded, vars)
	if r.opts.RenderEntityIDs {
		rendered = renderEntityIDs(rendered, vars)
	}
	log.Debug("variables rendered", zap.Int("vars", varsLen(vars)))

	result := &Result{Resolved: rendered}
	root, ok := rendered.AsMapping()
	if !ok {
		return result, nil
	}

	if objects, ok := mappingEntry(root, "objects"); ok {
		for _, objectID := range objects.Keys() {
			object, _ := objects.Get(objectID)
			objectMap, ok := object.AsMapping()
			if !ok {
				continue
			}
			scope := fmt.Sprintf("object %s", objectID)
			result.Issues = append(result.Issues, scopedIssues(scope, objectMap)...)
			actions, ok := mappingEntry(objectMap, "actions")
			if !ok {
				continue
			}
			for _, actionID := range actions.Keys() {
				action, _ := actions.Get(actionID)
				actionMap, ok := action.AsMapping()
				if !ok {
					continue
				}
				actionScope := fmt.Sprintf("object %s action %s", objectID, actionID)
				result.Issues = append(result.Issues, scopedIssues(actionScope, actionMap)...)
			}
		}
	}

	if actions, ok := mappingEntry(root, "actions"); ok {
		for _, actionID := range actions.Keys() {
			action, _ := actions.Get(actionID)
			actionMap, ok := action.AsMapping()
			if !ok {
				continue
			}
			scope := fmt.Sprintf("action %s", actionID)
			result.Issues = append(result.Issues, scopedIssues(scope, actionMap)...)
		}
	}

	log.Debug("constraints evaluated", zap.Int("issues", len(result.Issues)))
	return result, nil
}

// scopedIssues evaluates the constraints declared on one object or action
// spec and prefixes each issue with its scope for traceability.
func scopedIssues(scope string, spec *document.Mapping) []string {
	constraints, ok := mappingEntry(spec, "constraints")
	if !ok {
		return nil
	}
	raw := EvaluateConstraints(selectedKeys(spec), constraintSetFrom(constraints))
	issues := make([]string, len(raw))
	for i, issue := range raw {
		issues[i] = fmt.Sprintf("%s: %s", scope, issue)
	}
	return issues
}

// sharedVars extracts shared_defs.vars, or nil when absent.
func sharedVars(doc *document.Value) *document.Mapping {
	root, ok := doc.AsMapping()
	if !ok {
		return nil
	}
	defs, ok := mappingEntry(root, "shared_defs")
	if !ok {
		return nil
	}
	vars, ok := mappingEntry(defs, "vars")
	if !ok {
		return nil
	}
	return vars
}

func varsLen(vars *document.Mapping) int {
	if vars == nil {
		return 0
	}
	return vars.Len()
}

// renderEntityIDs runs a second render pass over each object and action,
// substituting {{id}} with the entry's own identifier.
func renderEntityIDs(doc *document.Value, vars *document.Mapping) *document.Value {
	root, ok := doc.AsMapping()
	if !ok {
		return doc
	}
	out := root.Clone()
	for _, section := range []string{"objects", "actions"} {
		entries, ok := mappingEntry(out, section)
		if !ok {
			continue
		}
		for _, id := range entries.Keys() {
			entry, _ := entries.Get(id)
			entries.Set(id, RenderWithID(entry, vars, id))
		}
		out.Set(section, document.FromMapping(entries))
	}
	return document.FromMapping(out)
}
