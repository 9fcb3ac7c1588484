package report

import (
	"github.com/shopspring/decimal"
)

// Field identifies one of the seven collected report fields.
type Field string

const (
	FieldTotalIncome         Field = "total_income"
	FieldCash                Field = "cash"
	FieldCashless            Field = "cashless"
	FieldCashBalance         Field = "cash_balance"
	FieldClientsCount        Field = "clients_count"
	FieldCashToSuppliers     Field = "cash_to_suppliers"
	FieldCashlessToSuppliers Field = "cashless_to_suppliers"
)

// Order is the fixed collection sequence of the wizard.
var Order = []Field{
	FieldTotalIncome,
	FieldCash,
	FieldCashless,
	FieldCashBalance,
	FieldClientsCount,
	FieldCashToSuppliers,
	FieldCashlessToSuppliers,
}

// Draft is the partially-populated report being collected by the wizard.
// Every field is nil until the user has supplied it; only ValidateDraft
// decides that the set is complete and coherent.
type Draft struct {
	TotalIncome         *decimal.Decimal
	Cash                *decimal.Decimal
	Cashless            *decimal.Decimal
	CashBalance         *decimal.Decimal
	ClientsCount        *int
	CashToSuppliers     *decimal.Decimal
	CashlessToSuppliers *decimal.Decimal
}

// SetAmount stores a validated monetary value under field.
// FieldClientsCount is not an amount; use SetCount for it.
func (d *Draft) SetAmount(field Field, value decimal.Decimal) {
	switch field {
	case FieldTotalIncome:
		d.TotalIncome = &value
	case FieldCash:
		d.Cash = &value
	case FieldCashless:
		d.Cashless = &value
	case FieldCashBalance:
		d.CashBalance = &value
	case FieldCashToSuppliers:
		d.CashToSuppliers = &value
	case FieldCashlessToSuppliers:
		d.CashlessToSuppliers = &value
	}
}

func (d *Draft) SetCount(count int) {
	d.ClientsCount = &count
}

// Amount returns the stored monetary value for field, or nil.
func (d *Draft) Amount(field Field) *decimal.Decimal {
	switch field {
	case FieldTotalIncome:
		return d.TotalIncome
	case FieldCash:
		return d.Cash
	case FieldCashless:
		return d.Cashless
	case FieldCashBalance:
		return d.CashBalance
	case FieldCashToSuppliers:
		return d.CashToSuppliers
	case FieldCashlessToSuppliers:
		return d.CashlessToSuppliers
	}
	return nil
}

// IsSet reports whether the field has been collected.
func (d *Draft) IsSet(field Field) bool {
	if field == FieldClientsCount {
		return d.ClientsCount != nil
	}
	return d.Amount(field) != nil
}
