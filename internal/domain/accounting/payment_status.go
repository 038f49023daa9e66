package accounting

// PaymentStatus is the lifecycle status of a payment
type PaymentStatus string

// Payment status codes
const (
	PaymentStatusNotPaid   PaymentStatus = "PMNT_NOT_PAID"
	PaymentStatusReceived  PaymentStatus = "PMNT_RECEIVED"
	PaymentStatusSent      PaymentStatus = "PMNT_SENT"
	PaymentStatusConfirmed PaymentStatus = "PMNT_CONFIRMED"
	PaymentStatusCancelled PaymentStatus = "PMNT_CANCELLED"
	PaymentStatusVoid      PaymentStatus = "PMNT_VOID"
	PaymentStatusRefunded  PaymentStatus = "PMNT_REFUNDED"
)

// paymentStatusTransitions is the fixed status graph. A missing source
// key means the status is terminal.
var paymentStatusTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusNotPaid:   {PaymentStatusReceived, PaymentStatusSent, PaymentStatusCancelled, PaymentStatusVoid},
	PaymentStatusReceived:  {PaymentStatusConfirmed, PaymentStatusVoid},
	PaymentStatusSent:      {PaymentStatusConfirmed, PaymentStatusVoid},
	PaymentStatusConfirmed: {PaymentStatusRefunded},
}

// IsValid reports whether the status is a known payment status code
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusNotPaid, PaymentStatusReceived, PaymentStatusSent,
		PaymentStatusConfirmed, PaymentStatusCancelled, PaymentStatusVoid,
		PaymentStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status graph allows moving from s
// to target
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, next := range paymentStatusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
