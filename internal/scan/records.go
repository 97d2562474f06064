package scan

import "time"

// Purchase is one recovered purchase-item row, attached to the invoice
// header most recently seen above it. Fields absent from a given export
// layout stay zero (the multi-sheet export has no supplier/buyer block,
// the detailed export has no product line column).
type Purchase struct {
	Agency      string
	Invoice     string
	InvoiceDate time.Time
	Supplier    string
	Buyer       string
	Part        string
	Description string
	ProductLine string
	Quantity    float64
	UnitCost    float64
	Total       float64
}

// Transfer is one recovered outbound-movement row. Quantity is always
// non-negative: BPro records outflows as negative quantities and the
// sign is normalized at scan time.
type Transfer struct {
	Agency       string
	Destination  string
	Reference    string
	MovementDate time.Time
	User         string
	Part         string
	Description  string
	Quantity     float64
	UnitCost     float64
	TotalCost    float64
}

// Sale is one recovered sale row, from either the general sales export
// or a per-warehouse manual sales file (both share the layout).
type Sale struct {
	Part     string
	Quantity float64
	Total    float64
	Date     time.Time
}

// OutcomeKind classifies what the scanner did with a recognized row.
type OutcomeKind int

const (
	// Accepted rows produced a record.
	Accepted OutcomeKind = iota
	// Rejected rows matched an item rule but failed a clean guard.
	Rejected
	// Marker rows updated scanner state instead of producing a record.
	Marker
	// Skipped rows matched a marker rule but could not be parsed;
	// prior state is left untouched.
	Skipped
)

// Outcome records the fate of one recognized row so rejection reasons
// stay inspectable instead of being silently swallowed.
type Outcome struct {
	Sheet  string
	Row    int
	Kind   OutcomeKind
	Reason string
}
