package application

// Decision is the outcome of an ownership check that did not fail.
type Decision int

const (
	// DecisionProceed means the caller asked for their own records.
	DecisionProceed Decision = iota
	// DecisionEmpty means no owner was supplied; the caller gets an empty result set
	// instead of every record in the collection.
	DecisionEmpty
)

// CheckOwner compares a caller-supplied owner email against the verified token email.
// On DecisionProceed the query must be filtered by authenticated, never by supplied.
func CheckOwner(supplied, authenticated string) (Decision, error) {
	if supplied == "" {
		return DecisionEmpty, nil
	}
	if supplied != authenticated {
		return DecisionProceed, ErrOwnerMismatch
	}
	return DecisionProceed, nil
}
