package dto

import "encoding/json"

type SettingsResponse struct {
	DineInMode          string `json:"dine_in_mode"`
	StoreName           string `json:"store_name"`
	EnableCreditCard    bool   `json:"enable_credit_card"`
	EnableMobilePayment bool   `json:"enable_mobile_payment"`
}

// UpdateSettingsRequest is a partial update; nil fields are kept.
type UpdateSettingsRequest struct {
	DineInMode          *string `json:"dine_in_mode"          validate:"omitempty,oneof=prePay postPay"`
	StoreName           *string `json:"store_name"            validate:"omitempty,min=1,max=80"`
	EnableCreditCard    *bool   `json:"enable_credit_card"`
	EnableMobilePayment *bool   `json:"enable_mobile_payment"`
}

// InspectorResponse shows every bundle exactly as the backend holds it.
// Absent bundles are null.
type InspectorResponse struct {
	SchemaVersion int                        `json:"schema_version"`
	Storage       string                     `json:"storage"`
	Bundles       map[string]json.RawMessage `json:"bundles"`
}
