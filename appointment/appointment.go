package appointment

import (
	"net/url"
	"time"

	"github.com/curtisnewbie/timesplit/timesplit"
	"github.com/curtisnewbie/timesplit/util"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Config key of the split accessor options, e.g., "timesplit.starts_at.date-format".
const PropTimesplit = "timesplit"

// Appointment with split date/time accessors for StartsAt and EndsAt.
//
// CreatedAt is set on creation and only exposes the read accessors.
type Appointment struct {
	Id        int64      `gorm:"primaryKey" json:"id"`
	Title     string     `json:"title"`
	StartsAt  *time.Time `json:"startsAt"`
	EndsAt    time.Time  `json:"endsAt"`
	CreatedAt util.ETime `gorm:"autoCreateTime:false" json:"createdAt"`
}

func (Appointment) TableName() string {
	return "appointment"
}

var (
	startsAt  = timesplit.MustSplitField[*Appointment]("StartsAt", timesplit.Options{})
	endsAt    = timesplit.MustSplitField[*Appointment]("EndsAt", timesplit.Options{})
	createdAt = timesplit.MustSplitField[*Appointment]("CreatedAt", timesplit.Options{})
)

// Rebuild the split accessors with options loaded from vp, e.g.,
//
//	timesplit:
//	  starts_at:
//	    date-format: "%d/%m/%Y"
//	    input-time-utc-offset: "+08:00"
//
// Should only be called during startup.
func Configure(vp *viper.Viper) error {
	splitters := map[string]**timesplit.Splitter[*Appointment]{
		"StartsAt":  &startsAt,
		"EndsAt":    &endsAt,
		"CreatedAt": &createdAt,
	}
	configured := make(map[string]*timesplit.Splitter[*Appointment], len(splitters))
	for field, sp := range splitters {
		opts, err := timesplit.LoadOptions(vp, PropTimesplit+"."+(*sp).Attr())
		if err != nil {
			return err
		}
		s, err := timesplit.SplitField[*Appointment](field, opts)
		if err != nil {
			return err
		}
		configured[field] = s
	}
	for field, sp := range splitters {
		*sp = configured[field]
	}
	return nil
}

func (a *Appointment) StartsAtYear() (int, bool) { return startsAt.Year(a) }
func (a *Appointment) StartsAtMonth() (int, bool) { return startsAt.Month(a) }
func (a *Appointment) StartsAtDay() (int, bool) { return startsAt.Day(a) }
func (a *Appointment) StartsAtHour() (int, bool) { return startsAt.Hour(a) }
func (a *Appointment) StartsAtMin() (int, bool) { return startsAt.Minute(a) }
func (a *Appointment) StartsAtDate() any { return startsAt.DateValue(a) }
func (a *Appointment) StartsAtTime() any { return startsAt.TimeValue(a) }
func (a *Appointment) StartsAtOrNew() time.Time { return startsAt.OrNew(a) }
func (a *Appointment) SetStartsAtYear(v any) error { return startsAt.SetYear(a, v) }
func (a *Appointment) SetStartsAtMonth(v any) error { return startsAt.SetMonth(a, v) }
func (a *Appointment) SetStartsAtDay(v any) error { return startsAt.SetDay(a, v) }
func (a *Appointment) SetStartsAtHour(v any) error { return startsAt.SetHour(a, v) }
func (a *Appointment) SetStartsAtMin(v any) error { return startsAt.SetMinute(a, v) }
func (a *Appointment) SetStartsAtDate(v any) error { return startsAt.SetDate(a, v) }
func (a *Appointment) SetStartsAtTime(v any) error { return startsAt.SetTime(a, v) }

func (a *Appointment) EndsAtDate() any { return endsAt.DateValue(a) }
func (a *Appointment) EndsAtTime() any { return endsAt.TimeValue(a) }
func (a *Appointment) SetEndsAtDate(v any) error { return endsAt.SetDate(a, v) }
func (a *Appointment) SetEndsAtTime(v any) error { return endsAt.SetTime(a, v) }

func (a *Appointment) CreatedAtDate() any { return createdAt.DateValue(a) }
func (a *Appointment) CreatedAtTime() any { return createdAt.TimeValue(a) }

// Apply form values, e.g., "title", "starts_at_date", "starts_at_time", "ends_at_time(4i)".
func (a *Appointment) Assign(values url.Values) error {
	if values.Has("title") {
		a.Title = values.Get("title")
	}
	if err := startsAt.Assign(a, values); err != nil {
		return err
	}
	return endsAt.Assign(a, values)
}

// Apply the request form of c, same as Assign.
func (a *Appointment) BindForm(c *gin.Context) error {
	for _, s := range []*timesplit.Splitter[*Appointment]{startsAt, endsAt} {
		if err := timesplit.AssignForm(c, s, a); err != nil {
			return err
		}
	}
	if c.Request.Form.Has("title") {
		a.Title = c.Request.Form.Get("title")
	}
	return nil
}

// Derived values keyed by accessor name, absent values are omitted.
func (a *Appointment) Derived() map[string]any {
	m := map[string]any{}
	for _, s := range []*timesplit.Splitter[*Appointment]{startsAt, endsAt, createdAt} {
		for _, n := range s.Names() {
			if n == s.Attr()+timesplit.SuffixOrNew {
				continue
			}
			if v, ok := s.Get(a, n); ok {
				m[n] = v
			}
		}
	}
	return m
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Appointment{})
}

// Create or update the appointment, CreatedAt is set if it's zero.
func Save(db *gorm.DB, a *Appointment) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = util.ToETime(time.Now().UTC().Truncate(time.Millisecond))
	}
	return db.Save(a).Error
}

func FindById(db *gorm.DB, id int64) (*Appointment, error) {
	var a Appointment
	if err := db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
