package list

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Built-in field names addressable as sort keys.
const (
	FieldKey      = "key"
	FieldCaption  = "caption"
	FieldSelected = "selected"
)

// Item is one row of the collection.
type Item struct {
	Key      string
	Caption  string
	Selected bool
	Fields   map[string]any
}

// Field looks up a built-in or extra field by name.
func (it Item) Field(name string) (any, bool) {
	switch name {
	case FieldKey:
		return it.Key, true
	case FieldCaption:
		return it.Caption, true
	case FieldSelected:
		return it.Selected, true
	}
	v, ok := it.Fields[name]
	return v, ok
}

func (it Item) clone() Item {
	if it.Fields != nil {
		it.Fields = maps.Clone(it.Fields)
	}
	return it
}

// ItemFromMap builds an Item from a decoded record. The record must carry a key;
// caption falls back to the key when absent.
func ItemFromMap(raw map[string]any) (Item, error) {
	keyVal, ok := raw[FieldKey]
	if !ok || keyVal == nil {
		return Item{}, fmt.Errorf("item missing %q", FieldKey)
	}
	key := scalarString(keyVal)
	if strings.TrimSpace(key) == "" {
		return Item{}, fmt.Errorf("item has empty %q", FieldKey)
	}

	item := Item{Key: key, Caption: key}
	if c, ok := raw[FieldCaption]; ok && c != nil {
		item.Caption = scalarString(c)
	}
	if s, ok := raw[FieldSelected].(bool); ok {
		item.Selected = s
	}
	for k, v := range raw {
		switch k {
		case FieldKey, FieldCaption, FieldSelected:
			continue
		}
		if item.Fields == nil {
			item.Fields = make(map[string]any, len(raw))
		}
		item.Fields[k] = v
	}
	return item, nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.clone()
	}
	return out
}
