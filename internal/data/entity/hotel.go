package entity

type Hotel struct {
	Base
	Name string `db:"name"`
	City string `db:"city"`

	// Billing profile printed on invoices.
	BillingName    string `db:"billing_name"`
	BillingAddress string `db:"billing_address"`
	BillingTaxID   string `db:"billing_tax_id"`
}
