package models

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/cashflow/internal/calendar"
)

// VendorStatusPaid marks a vendor with nothing left to pay.
const VendorStatusPaid = "paid"

// Vendor is a supplier with an outstanding purchase order.
type Vendor struct {
	// ID is the unique identifier for the vendor (UUID format when generated here).
	ID string

	// Name is the display name of the vendor.
	Name string

	// TotalOwed is the full outstanding balance across payments.
	TotalOwed decimal.Decimal

	// NextPaymentDate and NextPaymentAmount describe the next scheduled instalment.
	NextPaymentDate   calendar.Date
	NextPaymentAmount decimal.Decimal

	// Status is free-form upstream state; only "paid" is interpreted.
	Status string

	// POName is the optional purchase order label.
	POName string
}
