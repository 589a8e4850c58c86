// Package models defines the domain records the forecast engine consumes.
//
// # Records
//
// Everything here is produced by the sync collaborators (bank, card and
// marketplace adapters) and handed to the engine as an immutable snapshot:
//   - CashFlowEvent: a dated movement of money (inflow, outflow, card payment, purchase order)
//   - IncomeItem: expected or received income
//   - Vendor: a supplier with an outstanding purchase order
//   - SettlementRecord: a marketplace settlement period and its payout
//   - Account / CreditCard: the sources of today's balance and available credit
//
// # Design Principles
//
// 1. **Money is decimal**: amounts use shopspring/decimal, never float64
// 2. **Dates are calendar days**: calendar.Date, no time-of-day component
// 3. **Avoid circular references**: use ID strings instead of pointers for relationships
// 4. **No behaviour beyond validation**: projection logic lives in package forecast
package models
