package shared

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Well-known sequence names. Stores bump the named counter row inside
// the transaction of the insert that consumes the value; two bumps of
// the same name never yield the same value.
const (
	SequencePayment           = "payment"
	SequencePaymentPreference = "order_payment_preference"
	SequenceQuoteAdjustment   = "quote_adjustment"
)
