package menu

import (
	"banquet-admin/model"

	"go.mongodb.org/mongo-driver/bson"
)

// SelectedItemsCategory names the synthetic category built from a fetched
// booking's flat menuItems array.
const SelectedItemsCategory = "Selected Menu Items"

var reservedKeys = map[string]bool{
	"_id":         true,
	"createdAt":   true,
	"updatedAt":   true,
	"__v":         true,
	"bookingRef":  true,
	"customerRef": true,
}

func IsReservedKey(key string) bool {
	return reservedKeys[key]
}

// ValidCategories returns, in document order, every non-reserved key whose value
// is a non-empty array of strings. The document itself is left untouched.
func ValidCategories(doc bson.Raw) []model.Category {
	if len(doc) == 0 {
		return nil
	}
	elems, err := doc.Elements()
	if err != nil {
		return nil
	}

	var categories []model.Category
	for _, elem := range elems {
		key, err := elem.KeyErr()
		if err != nil || IsReservedKey(key) {
			continue
		}
		items, isArray := model.Strings(elem.Value())
		if !isArray || len(items) == 0 {
			continue
		}
		categories = append(categories, model.Category{Name: key, Items: items})
	}
	return categories
}
