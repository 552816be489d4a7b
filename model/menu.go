package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// CategorizedMenu keeps the menu document as raw BSON so category order survives
// JSON and Mongo round trips.
type CategorizedMenu bson.Raw

func NewCategorizedMenu(doc bson.D) (CategorizedMenu, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("cannot encode categorized menu: %v", err)
	}
	return CategorizedMenu(raw), nil
}

func (m CategorizedMenu) Document() bson.Raw {
	return bson.Raw(m)
}

func (m CategorizedMenu) IsZero() bool {
	return len(m) == 0
}

// Len returns the number of top-level keys, reserved ones included.
func (m CategorizedMenu) Len() int {
	if len(m) == 0 {
		return 0
	}
	elems, err := bson.Raw(m).Elements()
	if err != nil {
		return 0
	}
	return len(elems)
}

func (m CategorizedMenu) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return bson.MarshalExtJSON(bson.Raw(m), false, false)
}

func (m *CategorizedMenu) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	// anything but an object is treated as an absent menu
	if len(data) == 0 || data[0] != '{' {
		*m = nil
		return nil
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return fmt.Errorf("invalid categorizedMenu: %v", err)
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("invalid categorizedMenu: %v", err)
	}
	*m = CategorizedMenu(raw)
	return nil
}

func (m CategorizedMenu) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if len(m) == 0 {
		return bsontype.Null, nil, nil
	}
	return bsontype.EmbeddedDocument, []byte(m), nil
}

func (m *CategorizedMenu) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t != bsontype.EmbeddedDocument {
		*m = nil
		return nil
	}
	*m = CategorizedMenu(append([]byte(nil), data...))
	return nil
}

// MenuItems is either an ordered list of item names or a single descriptive text.
type MenuItems struct {
	List []string
	Text string
}

func ItemList(items ...string) MenuItems {
	return MenuItems{List: items}
}

func ItemText(text string) MenuItems {
	return MenuItems{Text: text}
}

func (mi MenuItems) IsZero() bool {
	return len(mi.List) == 0 && mi.Text == ""
}

func (mi MenuItems) MarshalJSON() ([]byte, error) {
	if mi.List != nil {
		return json.Marshal(mi.List)
	}
	if mi.Text != "" {
		return json.Marshal(mi.Text)
	}
	return []byte("null"), nil
}

func (mi *MenuItems) UnmarshalJSON(data []byte) error {
	*mi = MenuItems{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &mi.Text)
	case '[':
		var values []any
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		mi.List = []string{}
		for _, value := range values {
			if s, ok := value.(string); ok {
				mi.List = append(mi.List, s)
			}
		}
	}
	return nil
}

func (mi MenuItems) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if mi.List != nil {
		return bson.MarshalValue(mi.List)
	}
	if mi.Text != "" {
		return bson.MarshalValue(mi.Text)
	}
	return bsontype.Null, nil, nil
}

func (mi *MenuItems) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*mi = MenuItems{}
	value := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.String:
		mi.Text = value.StringValue()
	case bsontype.Array:
		mi.List, _ = Strings(value)
	}
	return nil
}

// Strings collects the string elements of an array value. The second result
// reports whether the value was an array at all.
func Strings(value bson.RawValue) ([]string, bool) {
	arr, ok := value.ArrayOK()
	if !ok {
		return nil, false
	}
	values, err := arr.Values()
	if err != nil {
		return nil, true
	}

	items := []string{}
	for _, v := range values {
		if s, ok := v.StringValueOK(); ok {
			items = append(items, s)
		}
	}
	return items, true
}

type MenuKind string

const (
	MenuCategorized MenuKind = "categorized"
	MenuFlatList    MenuKind = "flat_list"
	MenuFlatText    MenuKind = "flat_text"
	MenuEmpty       MenuKind = "empty"
)

type Category struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type ResolvedMenu struct {
	Kind       MenuKind   `json:"kind"`
	Categories []Category `json:"categories,omitempty"`
	Items      []string   `json:"items,omitempty"`
	Text       string     `json:"text,omitempty"`
	Source     string     `json:"source"`
}
