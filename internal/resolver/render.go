// File: internal/resolver/render.go
// Brief: Placeholder substitution for {{vars.KEY}} and {{id}} across a document.

package resolver

import (
	"regexp"
	"strings"

	"github.com/example/clispec/internal/document"
)

// varPattern matches {{vars.KEY}} placeholders, tolerating interior
// whitespace: {{ vars.tool }} and {{vars.tool}} are equivalent.
var varPattern = regexp.MustCompile(`\{\{\s*vars\.([a-zA-Z0-9_\-]+)\s*\}\}`)

const idPlaceholder = "{{id}}"

// Render substitutes {{vars.KEY}} placeholders in every string reachable from
// val, recursing through lists and mapping values and leaving other scalars
// untouched. A placeholder naming an unknown or null variable stays verbatim;
// rendering never fails. The input is not mutated.
func Render(val *document.Value, vars *document.Mapping) *document.Value {
	return render(val, vars, "", false)
}

// RenderWithID is Render plus literal {{id}} substitution with the given
// per-entity identifier. The orchestrator renders the document globally and
// does not supply an id; this entry point exists for per-entity render
// passes (see the render-id feature flag).
func RenderWithID(val *document.Value, vars *document.Mapping, id string) *document.Value {
	return render(val, vars, id, true)
}

func render(val *document.Value, vars *document.Mapping, id string, withID bool) *document.Value {
	switch val.Kind() {
	case document.KindString:
		return document.String(renderString(val.Str(), vars, id, withID))
	case document.KindList:
		items := make([]*document.Value, len(val.Items()))
		for i, item := range val.Items() {
			items[i] = render(item, vars, id, withID)
		}
		return document.List(items...)
	case document.KindMapping:
		out := document.NewMapping()
		for _, key := range val.Map().Keys() {
			item, _ := val.Map().Get(key)
			out.Set(key, render(item, vars, id, withID))
		}
		return document.FromMapping(out)
	case document.KindReference:
		// An unexpanded marker is still plain data: its pointer string and
		// override values render like any other strings.
		ref := val.Ref()
		overrides := document.NewMapping()
		for _, key := range ref.Overrides.Keys() {
			item, _ := ref.Overrides.Get(key)
			overrides.Set(key, render(item, vars, id, withID))
		}
		m := document.NewMapping()
		m.Set(document.RefKey, document.String(renderString(ref.Pointer, vars, id, withID)))
		for _, key := range overrides.Keys() {
			item, _ := overrides.Get(key)
			m.Set(key, item)
		}
		return document.FromMapping(m)
	default:
		return val.Clone()
	}
}

func renderString(s string, vars *document.Mapping, id string, withID bool) string {
	out := varPattern.ReplaceAllStringFunc(s, func(match string) string {
		key := varPattern.FindStringSubmatch(match)[1]
		if vars == nil {
			return match
		}
		val, ok := vars.Get(key)
		if !ok {
			return match
		}
		rendered, ok := val.ScalarString()
		if !ok {
			// Null or container-valued vars leave the placeholder intact.
			return match
		}
		return rendered
	})
	if withID {
		out = strings.ReplaceAll(out, idPlaceholder, id)
	}
	return out
}
