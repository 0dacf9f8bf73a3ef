package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount that accepts either a JSON number or a string
// containing currency noise ("$ 1,234.56"). String values are cleaned by
// stripping "$" and spaces, turning every "," into ".", and keeping only the
// last "." as the decimal separator. The cleaning rule is deliberate and
// locale-naive: "1.234" parses as one-point-two-three-four, not one thousand.
//
// Parse failures are not reported by UnmarshalJSON; they are recorded on the
// value so that CampaignRequest.Normalize can reject them while naming the
// offending field.
type Money struct {
	dec decimal.Decimal
	bad string
}

// MoneyFromInt returns a Money holding n whole currency units.
func MoneyFromInt(n int64) Money {
	return Money{dec: decimal.NewFromInt(n)}
}

func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Money{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		d, err := decimal.NewFromString(cleanMoneyString(raw))
		if err != nil {
			*m = Money{bad: raw}
			return nil
		}
		*m = Money{dec: d}
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		*m = Money{bad: string(b)}
		return nil
	}
	*m = Money{dec: d}
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	if m.bad != "" {
		return json.Marshal(m.bad)
	}
	return []byte(m.dec.String()), nil
}

// Invalid reports whether the value came from an input that could not be
// parsed as a monetary amount.
func (m Money) Invalid() bool {
	return m.bad != ""
}

func (m Money) IsZero() bool {
	return m.bad == "" && m.dec.IsZero()
}

// Cents returns the amount in minor currency units, truncated.
func (m Money) Cents() int64 {
	return m.dec.Shift(2).IntPart()
}

func (m Money) Decimal() decimal.Decimal {
	return m.dec
}

func (m Money) String() string {
	if m.bad != "" {
		return m.bad
	}
	return m.dec.String()
}

func cleanMoneyString(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if strings.Count(s, ".") > 1 {
		i := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:i], ".", "") + s[i:]
	}
	return s
}
