package i18n

import (
	"time"

	"github.com/goodsign/monday"
)

// DateStyle names one of the date layouts used by templates.
type DateStyle string

const (
	DateYearMonth    DateStyle = "year+month"
	DateMonthDay     DateStyle = "month+day"
	DateYearMonthDay DateStyle = "year+month+day"
)

type dateLocale struct {
	locale  monday.Locale
	layouts map[DateStyle]string
}

var dateLocales = map[string]dateLocale{
	"en": {
		locale: monday.LocaleEnUS,
		layouts: map[DateStyle]string{
			DateYearMonth:    "Jan 2006",
			DateMonthDay:     "January 2",
			DateYearMonthDay: "January 2, 2006",
		},
	},
	"pl": {
		locale: monday.LocalePlPL,
		layouts: map[DateStyle]string{
			DateYearMonth:    "Jan 2006",
			DateMonthDay:     "2 January",
			DateYearMonthDay: "2 January 2006",
		},
	},
}

// FormatDate renders when in the language specific layout for style. Unknown
// languages use the English layouts, unknown styles an ISO date.
func FormatDate(lang string, when time.Time, style DateStyle) string {
	loc, ok := dateLocales[lang]
	if !ok {
		loc = dateLocales["en"]
	}
	layout, ok := loc.layouts[style]
	if !ok {
		return when.Format("2006-01-02")
	}
	return monday.Format(when, layout, loc.locale)
}
