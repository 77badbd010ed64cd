// Package models defines the data contracts shared by the inventory store,
// the recipe catalog and the matching engine.
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// PresentQuantity is the quantity recorded for an item that is known to be
// in the fridge but was never counted.
const PresentQuantity Quantity = 1

// Quantity is an amount of an ingredient on hand. It is always a finite,
// non-negative number; anything else collapses to zero.
type Quantity float64

// ParseQuantity converts a raw stored or inbound value into a Quantity.
// Numbers and numeric strings are accepted. Malformed, negative, NaN and
// infinite values yield zero and never an error.
func ParseQuantity(raw any) Quantity {
	var f float64
	switch v := raw.(type) {
	case nil:
		return 0
	case Quantity:
		f = float64(v)
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case []byte:
		return ParseQuantity(string(v))
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	return clamp(f)
}

func clamp(f float64) Quantity {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return Quantity(f)
}

// Float64 returns the quantity as a float64.
func (q Quantity) Float64() float64 {
	return float64(q)
}

// UnmarshalJSON decodes numbers and numeric strings. Any other JSON value
// (including malformed strings, booleans and objects) decodes to zero.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*q = 0
			return nil
		}
		*q = ParseQuantity(s)
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*q = 0
		return nil
	}
	*q = clamp(f)
	return nil
}

// NormalizeName case-folds and trims an ingredient name so that inventory
// keys and recipe requirements compare equal.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Items maps normalized ingredient names to the quantity on hand.
type Items map[string]Quantity

// Get returns the quantity stored for name, or zero when it is not tracked.
func (it Items) Get(name string) Quantity {
	if it == nil {
		return 0
	}
	return it[NormalizeName(name)]
}

// Has reports whether name is tracked with a positive quantity.
func (it Items) Has(name string) bool {
	return it.Get(name) > 0
}

// Clone returns an independent copy. A nil receiver yields an empty map.
func (it Items) Clone() Items {
	out := make(Items, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}

// Names returns the tracked item names in alphabetical order.
func (it Items) Names() []string {
	names := make([]string, 0, len(it))
	for k := range it {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Normalized returns a copy whose keys are normalized. Entries whose keys
// collide after normalization keep the larger quantity; empty names are
// dropped.
func (it Items) Normalized() Items {
	out := make(Items, len(it))
	for k, v := range it {
		name := NormalizeName(k)
		if name == "" {
			continue
		}
		if cur, ok := out[name]; !ok || v > cur {
			out[name] = v
		}
	}
	return out
}

// Inventory is the item mapping of one fridge.
type Inventory struct {
	FridgeID string
	Items    Items
}

// Len returns the number of tracked items.
func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.Items)
}
