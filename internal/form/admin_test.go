package form

import "testing"

func TestDrawAdmin(t *testing.T) {
	o := NewOverlay()
	drawAdmin(o, AdminData{
		AdminUnit:     "B CO 1-502 IN",
		AdminDate:     "2026-08-29",
		AdminPackedBy: "",          // empty values are skipped
		"warehouse":   "BLDG 4022", // unknown keys are ignored
	})

	if len(o.ops) != 2 {
		t.Fatalf("drawAdmin recorded %d ops, want 2", len(o.ops))
	}

	byText := map[string]drawOp{}
	for _, op := range o.ops {
		byText[op.text] = op
	}

	unit, ok := byText["B CO 1-502 IN"]
	if !ok {
		t.Fatal("unit field not drawn")
	}
	if unit.x != adminSlots[AdminUnit].x || unit.y != adminSlots[AdminUnit].y {
		t.Errorf("unit drawn at (%v, %v), want (%v, %v)",
			unit.x, unit.y, adminSlots[AdminUnit].x, adminSlots[AdminUnit].y)
	}

	if _, ok := byText["2026-08-29"]; !ok {
		t.Error("date field not drawn")
	}
	if _, ok := byText["BLDG 4022"]; ok {
		t.Error("unknown key should not be drawn")
	}
}
