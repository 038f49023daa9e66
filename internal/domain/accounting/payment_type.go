package accounting

// PaymentType identifies the business reason for a payment
type PaymentType string

// Payment type codes
const (
	PaymentTypeCustomerPayment PaymentType = "CUSTOMER_PAYMENT"
	PaymentTypeCustomerDeposit PaymentType = "CUSTOMER_DEPOSIT"
	PaymentTypeInterestReceipt PaymentType = "INTEREST_RECEIPT"
	PaymentTypeGcDeposit       PaymentType = "GC_DEPOSIT"
	PaymentTypePosPaidIn       PaymentType = "POS_PAID_IN"

	PaymentTypeDisbursement   PaymentType = "DISBURSEMENT"
	PaymentTypeCustomerRefund PaymentType = "CUSTOMER_REFUND"
	PaymentTypePayCheck       PaymentType = "PAY_CHECK"
	PaymentTypeVendorPayment  PaymentType = "VENDOR_PAYMENT"
	PaymentTypeVendorPrepay   PaymentType = "VENDOR_PREPAY"
	PaymentTypeTaxPayment     PaymentType = "TAX_PAYMENT"
	PaymentTypeGcWithdrawal   PaymentType = "GC_WITHDRAWAL"
	PaymentTypePosPaidOut     PaymentType = "POS_PAID_OUT"
)

// TranDirection is the direction of money movement against a financial
// account implied by a payment type
type TranDirection string

// Transaction directions
const (
	DirectionIncoming TranDirection = "INCOMING"
	DirectionOutgoing TranDirection = "OUTGOING"
)

// incomingPaymentTypes and outgoingPaymentTypes are closed membership
// lists; they are not configurable at runtime. Both the create and the
// update posting paths classify through ClassifyPaymentType so the two
// lists cannot drift apart per call site.
var incomingPaymentTypes = map[PaymentType]struct{}{
	PaymentTypeCustomerPayment: {},
	PaymentTypeCustomerDeposit: {},
	PaymentTypeInterestReceipt: {},
	PaymentTypeGcDeposit:       {},
	PaymentTypePosPaidIn:       {},
}

var outgoingPaymentTypes = map[PaymentType]struct{}{
	PaymentTypeDisbursement:   {},
	PaymentTypeCustomerRefund: {},
	PaymentTypePayCheck:       {},
	PaymentTypeVendorPayment:  {},
	PaymentTypeVendorPrepay:   {},
	PaymentTypeTaxPayment:     {},
	PaymentTypeGcWithdrawal:   {},
	PaymentTypePosPaidOut:     {},
}

// ClassifyPaymentType maps a payment type to the direction of the
// financial-account transaction it implies. The second return value is
// false for types outside both membership lists; such payments post
// without a financial-account transaction.
func ClassifyPaymentType(t PaymentType) (TranDirection, bool) {
	if _, ok := incomingPaymentTypes[t]; ok {
		return DirectionIncoming, true
	}
	if _, ok := outgoingPaymentTypes[t]; ok {
		return DirectionOutgoing, true
	}
	return "", false
}
