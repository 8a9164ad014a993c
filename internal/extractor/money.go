package extractor

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var moneyCleaner = strings.NewReplacer("$", "", "£", "", "€", "", ",", "", " ", "")

// MoneyValue tries each money-shaped pattern in order against s and returns
// the first match that parses as a decimal after stripping currency symbols
// and thousands separators. The second return is false when no pattern
// matches or none of the matches parse.
func (r *Registry) MoneyValue(s string) (decimal.Decimal, bool) {
	for _, re := range r.patterns[FieldMoney] {
		m := re.FindString(s)
		if m == "" {
			continue
		}
		d, err := decimal.NewFromString(moneyCleaner.Replace(m))
		if err != nil {
			continue
		}
		return d, true
	}
	return decimal.Decimal{}, false
}

// DateValue tries each date-shaped pattern in order against s. On a
// structural match it parses the matched text with the pattern's layouts and
// returns the date in UTC plus the pattern label. Dates carry no timezone in
// invoice text; they are taken as UTC so extraction is deterministic across
// host timezones.
func (r *Registry) DateValue(s string) (time.Time, string, bool) {
	for _, dp := range r.dates {
		m := dp.re.FindString(s)
		if m == "" {
			continue
		}
		for _, layout := range dp.layouts {
			t, err := time.Parse(layout, m)
			if err != nil {
				continue
			}
			return t.UTC(), dp.label, true
		}
	}
	return time.Time{}, "", false
}
