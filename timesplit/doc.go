/*
Package timesplit builds split date/time accessors for a timestamp attribute of a model.

A form that submits date and time as separate fields, e.g., "starts_at_date" and "starts_at_time",
can be assembled into the single StartsAt timestamp without writing the accessors by hand:

	type Appointment struct {
		StartsAt *time.Time
	}

	var startsAt = timesplit.MustSplitField[*Appointment]("StartsAt", timesplit.Options{
		DateFormat:         "%d/%m/%Y",
		InputTimeUtcOffset: "+08:00",
	})

	func (a *Appointment) SetStartsAtDate(v any) error { return startsAt.SetDate(a, v) }
	func (a *Appointment) StartsAtDate() any           { return startsAt.DateValue(a) }

Formats are strftime patterns.
*/
package timesplit
