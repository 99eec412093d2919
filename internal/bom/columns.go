package bom

import "strings"

// QuantityPreference selects which quantity column wins when a table carries
// both an on-hand and an authorized quantity.
type QuantityPreference string

const (
	// PreferOnHand uses the on-hand quantity column when present. This is
	// the default: the packing list reflects what is physically packed.
	PreferOnHand QuantityPreference = "onhand"

	// PreferAuthorized uses the authorized quantity column when present.
	PreferAuthorized QuantityPreference = "authorized"
)

// columnRoles holds the index of each recognized column within a header
// row, or -1 when the table has no such column.
type columnRoles struct {
	level         int
	description   int
	material      int
	onHandQty     int
	authorizedQty int
}

// detectColumns matches header cell text against the keyword sets that
// identify each column role. Matching is case-insensitive substring; a later
// matching cell overrides an earlier one.
func detectColumns(header []string) columnRoles {
	roles := columnRoles{level: -1, description: -1, material: -1, onHandQty: -1, authorizedQty: -1}
	for i, cell := range header {
		text := strings.ToUpper(cell)
		switch {
		case text == "":
		case strings.Contains(text, "LV") || strings.Contains(text, "LEVEL"):
			roles.level = i
		case strings.Contains(text, "DESC") || strings.Contains(text, "NOMENCLATURE"):
			roles.description = i
		case strings.Contains(text, "MATERIAL"):
			roles.material = i
		case strings.Contains(text, "QTY") && strings.Contains(text, "AUTH"):
			roles.authorizedQty = i
		case strings.Contains(text, "QTY") || strings.Contains(text, "O/H"):
			roles.onHandQty = i
		}
	}
	return roles
}

// quantityColumn resolves the quantity column for a table given the
// configured preference, returning -1 when the table has neither.
func (r columnRoles) quantityColumn(pref QuantityPreference) int {
	first, second := r.onHandQty, r.authorizedQty
	if pref == PreferAuthorized {
		first, second = r.authorizedQty, r.onHandQty
	}
	if first >= 0 {
		return first
	}
	return second
}

// relevant reports whether the table has the columns a BOM item table must
// carry; tables without both a level and a description column are skipped.
func (r columnRoles) relevant() bool {
	return r.level >= 0 && r.description >= 0
}
