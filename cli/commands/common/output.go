package common

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/options"
)

// UnitResult is a matched unit as written in JSON output. Units on a recall list have no x and y.
type UnitResult struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Side int    `json:"side"`
	X    int    `json:"x,omitempty"`
	Y    int    `json:"y,omitempty"`
}

// Result is the outcome of one filter.
type Result struct {
	Filter string       `json:"filter"`
	Error  string       `json:"error,omitempty"`
	Units  []UnitResult `json:"units"`
}

// NewResult returns the result of filter matching units.
func NewResult(filter string, units ...*unit.Unit) Result {
	result := Result{Filter: filter, Units: make([]UnitResult, 0, len(units))}

	for _, u := range units {
		res := UnitResult{ID: u.ID, Type: u.TypeID, Side: u.Side}
		if u.Location.Valid() {
			res.X, res.Y = u.Location.X+1, u.Location.Y+1
		}

		result.Units = append(result.Units, res)
	}

	return result
}

// WriteResults writes results in the output format of opts. Text output lists the unit ids, one
// per line, under a `filter:` header when there is more than one result.
func WriteResults(w io.Writer, format string, results ...Result) error {
	if format == options.OutputFormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		for _, result := range results {
			if err := encoder.Encode(result); err != nil {
				return errors.New(err)
			}
		}

		return nil
	}

	for _, result := range results {
		if len(results) > 1 {
			if _, err := fmt.Fprintf(w, "%s:\n", result.Filter); err != nil {
				return errors.New(err)
			}
		}

		if result.Error != "" {
			if _, err := fmt.Fprintf(w, "  error: %s\n", result.Error); err != nil {
				return errors.New(err)
			}

			continue
		}

		for _, u := range result.Units {
			line := u.ID
			if len(results) > 1 {
				line = "  " + line
			}

			if _, err := fmt.Fprintln(w, line); err != nil {
				return errors.New(err)
			}
		}
	}

	return nil
}
