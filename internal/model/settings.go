package model

// DineInMode: "prePay" | "postPay"
type DineInMode string

const (
	DineInPrePay  DineInMode = "prePay"
	DineInPostPay DineInMode = "postPay"
)

func (m DineInMode) Valid() bool {
	return m == DineInPrePay || m == DineInPostPay
}

// Settings is the admin-editable POS configuration. It only changes how
// checkout branches; it is persisted as its own bundle.
type Settings struct {
	DineInMode          DineInMode `json:"dineInMode"`
	StoreName           string     `json:"storeName"`
	EnableCreditCard    bool       `json:"enableCreditCard"`
	EnableMobilePayment bool       `json:"enableMobilePayment"`
}

// DefaultSettings is used when no settings bundle has been saved yet.
func DefaultSettings() Settings {
	return Settings{
		DineInMode:          DineInPrePay,
		StoreName:           "POS",
		EnableCreditCard:    true,
		EnableMobilePayment: true,
	}
}

// MethodEnabled reports whether checkout may accept the given payment method.
func (s Settings) MethodEnabled(m PaymentMethod) bool {
	switch m {
	case PaymentCash:
		return true
	case PaymentCredit:
		return s.EnableCreditCard
	case PaymentMobile:
		return s.EnableMobilePayment
	default:
		return false
	}
}
