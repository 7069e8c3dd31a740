package world

import (
	"fmt"
)

// UnitError is returned for a unit that cannot be placed on the board.
type UnitError struct {
	ID    string
	Msg   string
	Index int
}

func (err UnitError) Error() string {
	if err.ID == "" {
		return fmt.Sprintf("unit #%d: %s", err.Index+1, err.Msg)
	}

	return fmt.Sprintf("unit %q: %s", err.ID, err.Msg)
}

// SchemaError is returned when a scenario document does not validate.
type SchemaError struct {
	Path  string
	Cause error
}

func (err SchemaError) Error() string {
	return fmt.Sprintf("scenario %s does not validate: %v", err.Path, err.Cause)
}

func (err SchemaError) Unwrap() error {
	return err.Cause
}
