package entity

// RelatedType names the kind of record a ledger entry or stock movement
// traces back to. Traceability only, not enforced as a foreign key.
type RelatedType string

const (
	RelatedTransaction RelatedType = "transaction"
	RelatedService     RelatedType = "service"
	RelatedManual      RelatedType = "manual"
)

// Valid reports whether the value is one of the closed set.
func (r RelatedType) Valid() bool {
	switch r {
	case RelatedTransaction, RelatedService, RelatedManual:
		return true
	}
	return false
}
