package bom

import "testing"

func TestDetectColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   columnRoles
	}{
		{
			name:   "standard header",
			header: []string{"LV", "Description", "Material", "Qty O/H", "Qty Auth"},
			want:   columnRoles{level: 0, description: 1, material: 2, onHandQty: 3, authorizedQty: 4},
		},
		{
			name:   "alternate keywords",
			header: []string{"Level", "Nomenclature", "Material Number", "Qty"},
			want:   columnRoles{level: 0, description: 1, material: 2, onHandQty: 3, authorizedQty: -1},
		},
		{
			name:   "authorized only",
			header: []string{"LV", "Desc", "Auth Qty"},
			want:   columnRoles{level: 0, description: 1, material: -1, onHandQty: -1, authorizedQty: 2},
		},
		{
			name:   "unrelated header",
			header: []string{"Name", "Address", "Phone"},
			want:   columnRoles{level: -1, description: -1, material: -1, onHandQty: -1, authorizedQty: -1},
		},
		{
			name:   "later cell overrides earlier",
			header: []string{"Desc", "Long Description"},
			want:   columnRoles{level: -1, description: 1, material: -1, onHandQty: -1, authorizedQty: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectColumns(tt.header); got != tt.want {
				t.Errorf("detectColumns(%v) = %+v, want %+v", tt.header, got, tt.want)
			}
		})
	}
}

func TestQuantityColumn(t *testing.T) {
	both := columnRoles{onHandQty: 3, authorizedQty: 4}
	onHandOnly := columnRoles{onHandQty: 3, authorizedQty: -1}
	authOnly := columnRoles{onHandQty: -1, authorizedQty: 4}
	neither := columnRoles{onHandQty: -1, authorizedQty: -1}

	tests := []struct {
		name  string
		roles columnRoles
		pref  QuantityPreference
		want  int
	}{
		{name: "on-hand preferred and present", roles: both, pref: PreferOnHand, want: 3},
		{name: "authorized preferred and present", roles: both, pref: PreferAuthorized, want: 4},
		{name: "on-hand preferred, only authorized", roles: authOnly, pref: PreferOnHand, want: 4},
		{name: "authorized preferred, only on-hand", roles: onHandOnly, pref: PreferAuthorized, want: 3},
		{name: "no quantity column", roles: neither, pref: PreferOnHand, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.roles.quantityColumn(tt.pref); got != tt.want {
				t.Errorf("quantityColumn(%v) = %v, want %v", tt.pref, got, tt.want)
			}
		})
	}
}

func TestRelevant(t *testing.T) {
	if !(columnRoles{level: 0, description: 1, material: -1, onHandQty: -1, authorizedQty: -1}).relevant() {
		t.Error("roles with level and description should be relevant")
	}
	if (columnRoles{level: -1, description: 1}).relevant() {
		t.Error("roles without a level column should not be relevant")
	}
	if (columnRoles{level: 0, description: -1}).relevant() {
		t.Error("roles without a description column should not be relevant")
	}
}
