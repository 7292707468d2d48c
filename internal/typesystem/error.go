package typesystem

import "fmt"

// CastError indicates that narrowing or removing a type would leave an
// expression with no possible type at all.
type CastError struct {
	Want Type
	Have Type
}

func (e *CastError) Error() string {
	return fmt.Sprintf("expected (%s) but found (%s)", e.Want.Name(), e.Have.Name())
}
