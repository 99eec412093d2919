package form

// AdminData carries the administrative header fields supplied by the caller,
// keyed by the recognized field names below. Unknown keys are ignored and
// missing keys simply are not drawn.
type AdminData map[string]string

// Recognized AdminData keys.
const (
	AdminUnit          = "unit"
	AdminDate          = "date"
	AdminRequisitionNo = "requisition_no"
	AdminOrderNo       = "order_no"
	AdminNumBoxes      = "num_boxes"
	AdminPackedBy      = "packed_by"
)

// adminSlot fixes where one admin field renders on the form header.
type adminSlot struct {
	x, y float64
	size float64
}

// Fixed coordinates in the header band above the item table, measured off
// the blank template.
var adminSlots = map[string]adminSlot{
	AdminUnit:          {x: 46, y: 742, size: 8},
	AdminRequisitionNo: {x: 230, y: 742, size: 8},
	AdminOrderNo:       {x: 360, y: 742, size: 8},
	AdminDate:          {x: 480, y: 742, size: 8},
	AdminNumBoxes:      {x: 46, y: 700, size: 8},
	AdminPackedBy:      {x: 230, y: 700, size: 8},
}

// drawAdmin renders each recognized, non-empty admin field at its slot.
func drawAdmin(o *Overlay, data AdminData) {
	for key, value := range data {
		slot, ok := adminSlots[key]
		if !ok || value == "" {
			continue
		}
		o.DrawString(slot.x, slot.y, value, TextStyle{Size: slot.size})
	}
}
