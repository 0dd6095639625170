// Package resource shapes models into API JSON.
//
// A transformer turns one value into a Map:
//
//	func Category(c models.Category) resource.Map {
//	    return resource.Map{"id": c.ID, "name": c.Name}
//	}
//
// and One / Many apply it:
//
//	c.Success(resource.Many(categories, resources.Category))
package resource

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Map is the output of a transformer.
type Map = map[string]any

// Transformer converts one value into its API representation.
type Transformer[T any] func(T) Map

// One applies t to v.
func One[T any](v T, t Transformer[T]) Map {
	return t(v)
}

// Many applies t to every element of vs. A nil slice yields an empty list,
// never null.
func Many[T any](vs []T, t Transformer[T]) []Map {
	out := make([]Map, len(vs))
	for i, v := range vs {
		out[i] = t(v)
	}
	return out
}

// Money renders d as a JSON number with exactly two decimals, written from
// its decimal string rather than through float64.
func Money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
