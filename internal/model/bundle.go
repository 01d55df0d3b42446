package model

import "time"

// Bundle is one persisted state collection stored as an opaque JSON document.
// Name: "menu" | "orders" | "daily_summaries" | "discounts" | "settings" | "schema_version"
type Bundle struct {
	Name      string `gorm:"type:varchar(64);primaryKey"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name used by every SQL backend.
func (Bundle) TableName() string { return "bundles" }
