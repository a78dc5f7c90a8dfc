package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNoProduction   = newSemanticError("a grammar needs at least one production")
	semErrNoLHS          = newSemanticError("a production needs a non-empty left-hand side")
	semErrDupProduction  = newSemanticError("duplicate production")
	semErrReservedEndSym = newSemanticError("the symbol $ is reserved as the end-of-input marker")
	semErrReservedAugSym = newSemanticError("the symbol S' is reserved as the augmented start symbol")
)
