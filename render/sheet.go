package render

import (
	"fmt"
	"strings"
	"time"

	"banquet-admin/model"
)

const (
	Heading       = "BUDDHA - CHEF INSTRUCTIONS"
	DetailsTitle  = "BOOKING DETAILS"
	MenuTitle     = "MENU ITEMS TO PREPARE"
	EmptyMessage  = "No menu items selected"
	EmptyGuidance = "Add menu selections to this booking before sending instructions to the kitchen."
	NotAvailable  = "N/A"

	columns = 2
)

type Detail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Section struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// Sheet is the print-ready chef instructions for one booking.
type Sheet struct {
	Title     string         `json:"title"`
	Heading   string         `json:"heading"`
	Details   []Detail       `json:"details"`
	Kind      model.MenuKind `json:"kind"`
	Rows      [][]Section    `json:"rows,omitempty"`
	Items     []string       `json:"items,omitempty"`
	Paragraph string         `json:"paragraph,omitempty"`
	Message   string         `json:"message,omitempty"`
	Guidance  string         `json:"guidance,omitempty"`
}

func BuildSheet(booking model.Booking, menu model.ResolvedMenu, now time.Time) Sheet {
	sheet := Sheet{
		Title:   DocumentTitle(booking, now),
		Heading: Heading,
		Details: details(booking),
		Kind:    menu.Kind,
	}

	switch menu.Kind {
	case model.MenuCategorized:
		var row []Section
		for _, category := range menu.Categories {
			row = append(row, Section{Heading: CategoryHeading(category.Name), Items: category.Items})
			if len(row) == columns {
				sheet.Rows = append(sheet.Rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			sheet.Rows = append(sheet.Rows, row)
		}
	case model.MenuFlatList:
		sheet.Items = menu.Items
	case model.MenuFlatText:
		sheet.Paragraph = menu.Text
	default:
		sheet.Kind = model.MenuEmpty
		sheet.Message = EmptyMessage
		sheet.Guidance = EmptyGuidance
	}

	return sheet
}

func CategoryHeading(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}

// DocumentTitle names the exported document after the customer reference (or
// booking name) and the export date.
func DocumentTitle(booking model.Booking, now time.Time) string {
	ref := booking.CustomerRef
	if ref == "" {
		ref = booking.Name
	}
	if ref == "" {
		ref = booking.Id.Hex()
	}
	ref = strings.Join(strings.Fields(ref), "_")
	return fmt.Sprintf("Chef_Instructions_%s_%s", ref, now.Format("2006-01-02"))
}

func details(booking model.Booking) []Detail {
	date := NotAvailable
	if !booking.StartDate.IsZero() {
		date = booking.StartDate.Format("1/2/2006")
	}
	pax := NotAvailable
	if booking.Pax > 0 {
		pax = fmt.Sprint(booking.Pax)
	}

	return []Detail{
		{Label: "Customer", Value: orNA(booking.Name)},
		{Label: "Date", Value: date},
		{Label: "Time", Value: orNA(booking.Time)},
		{Label: "Pax", Value: pax},
		{Label: "Food Type", Value: orNA(booking.FoodType)},
		{Label: "Rate Plan", Value: orNA(booking.RatePlan)},
		{Label: "Hall", Value: orNA(booking.Hall)},
		{Label: "Ref", Value: orNA(booking.CustomerRef)},
	}
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return NotAvailable
	}
	return value
}
