package menu

import (
	"banquet-admin/model"

	"go.mongodb.org/mongo-driver/bson"
)

// Shape pulls categories out of one known response layout.
type Shape struct {
	Name    string
	Extract func(payload bson.Raw) []model.Category
}

// Shapes lists the accepted response layouts in priority order.
var Shapes = []Shape{
	{Name: "menu.categories", Extract: documentAt("menu", "categories")},
	{Name: "data.categories", Extract: documentAt("data", "categories")},
	{Name: "categories", Extract: documentAt("categories")},
	{Name: "data", Extract: documentAt("data")},
	{Name: "booking.categorizedMenu", Extract: fromBooking(categorizedMenu)},
	{Name: "booking.menuItems", Extract: fromBooking(selectedMenuItems)},
}

// Categories returns the categories of the first shape that yields at least one
// valid category, along with that shape's name.
func Categories(payload bson.Raw) (string, []model.Category) {
	if len(payload) == 0 {
		return "", nil
	}
	for _, shape := range Shapes {
		if categories := shape.Extract(payload); len(categories) > 0 {
			return shape.Name, categories
		}
	}
	return "", nil
}

func documentAt(path ...string) func(bson.Raw) []model.Category {
	return func(payload bson.Raw) []model.Category {
		value, err := payload.LookupErr(path...)
		if err != nil {
			return nil
		}
		doc, ok := value.DocumentOK()
		if !ok {
			return nil
		}
		return ValidCategories(doc)
	}
}

// fromBooking applies extract to the fetched booking object, which is either the
// payload itself or nested under "booking" or "data".
func fromBooking(extract func(bson.Raw) []model.Category) func(bson.Raw) []model.Category {
	return func(payload bson.Raw) []model.Category {
		if categories := extract(payload); len(categories) > 0 {
			return categories
		}
		for _, key := range []string{"booking", "data"} {
			value, err := payload.LookupErr(key)
			if err != nil {
				continue
			}
			if doc, ok := value.DocumentOK(); ok {
				if categories := extract(doc); len(categories) > 0 {
					return categories
				}
			}
		}
		return nil
	}
}

func categorizedMenu(booking bson.Raw) []model.Category {
	value, err := booking.LookupErr("categorizedMenu")
	if err != nil {
		return nil
	}
	doc, ok := value.DocumentOK()
	if !ok {
		return nil
	}
	return ValidCategories(doc)
}

func selectedMenuItems(booking bson.Raw) []model.Category {
	value, err := booking.LookupErr("menuItems")
	if err != nil {
		return nil
	}
	items, _ := model.Strings(value)
	if len(items) == 0 {
		return nil
	}
	return []model.Category{{Name: SelectedItemsCategory, Items: items}}
}
