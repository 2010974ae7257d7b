package timesplit

import "github.com/curtisnewbie/timesplit/util/errs"

var (
	// Returned when string input to the date, time, hour or integer field setters can't be parsed.
	//
	// Use errors.Is(err, ErrParse) to check.
	ErrParse = errs.ErrParseError

	// Returned on invalid setup or out-of-range field values.
	ErrIllegalArgument = errs.ErrIllegalArgument
)
