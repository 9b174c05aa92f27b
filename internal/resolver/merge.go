// File: internal/resolver/merge.go
// Brief: Pure deep merge of mapping values with override-wins semantics.

package resolver

import "github.com/example/clispec/internal/document"

// Merge combines base and override into a new mapping. Keys only in base are
// kept, keys only in override are appended in their declared order, and when
// both sides hold mappings the merge recurses. Any other collision is won
// wholesale by the override value. Neither input is mutated; every value in
// the result is a deep copy.
func Merge(base, override *document.Mapping) *document.Mapping {
	out := base.Clone()
	for _, key := range override.Keys() {
		overrideVal, _ := override.Get(key)
		baseVal, exists := out.Get(key)
		if exists {
			baseMap, baseOK := baseVal.AsMapping()
			overrideMap, overrideOK := overrideVal.AsMapping()
			if baseOK && overrideOK {
				out.Set(key, document.FromMapping(Merge(baseMap, overrideMap)))
				continue
			}
		}
		out.Set(key, overrideVal.Clone())
	}
	return out
}
