// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package value

import (
	"fmt"
	"regexp"
	"time"
)

// Date/time/period literals (§6) are plain strings that pass these
// ISO-8601-ish sub-format tests. They aren't a distinct Value tag; they
// are Strings that ExtendedTypeOf and the arithmetic operators recognize
// by shape.
var (
	dateRE     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRE     = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2}(\.\d+)?)?$`)
	dateTimeRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:?\d{2})?$`)
	periodRE   = regexp.MustCompile(`^-?P(\d+Y)?(\d+M)?(\d+D)?(T(\d+H)?(\d+M)?(\d+S)?)?$`)
)

func IsDate(s string) bool     { return dateRE.MatchString(s) }
func IsTime(s string) bool     { return timeRE.MatchString(s) }
func IsDateTime(s string) bool { return dateTimeRE.MatchString(s) }
func IsPeriod(s string) bool   { return s != "P" && periodRE.MatchString(s) }

type period struct {
	neg           bool
	years, months, days, hours, minutes int
	seconds       float64
}

func parsePeriod(s string) (period, bool) {
	m := periodRE.FindStringSubmatch(s)
	if m == nil || s == "P" {
		return period{}, false
	}
	p := period{neg: s[0] == '-'}
	fmt.Sscanf(firstDigits(m[1]), "%d", &p.years)
	fmt.Sscanf(firstDigits(m[2]), "%d", &p.months)
	fmt.Sscanf(firstDigits(m[3]), "%d", &p.days)
	fmt.Sscanf(firstDigits(m[5]), "%d", &p.hours)
	fmt.Sscanf(firstDigits(m[6]), "%d", &p.minutes)
	var secs float64
	fmt.Sscanf(firstDigits(m[7]), "%f", &secs)
	p.seconds = secs
	return p, true
}

func firstDigits(s string) string {
	n := len(s)
	for n > 0 && !isDigitOrDot(s[n-1]) {
		n--
	}
	return s[:n]
}

func isDigitOrDot(b byte) bool { return (b >= '0' && b <= '9') || b == '.' }

func (p period) apply(t time.Time) time.Time {
	sign := 1
	if p.neg {
		sign = -1
	}
	t = t.AddDate(sign*p.years, sign*p.months, sign*p.days)
	d := time.Duration(p.hours)*time.Hour + time.Duration(p.minutes)*time.Minute + time.Duration(p.seconds*float64(time.Second))
	if p.neg {
		d = -d
	}
	return t.Add(d)
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// AddDatePeriod implements date+period -> date (§4.F.5).
func AddDatePeriod(date, per string) (string, bool) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", false
	}
	p, ok := parsePeriod(per)
	if !ok {
		return "", false
	}
	return p.apply(t).Format(dateLayout), true
}

// AddDateTimePeriod implements datetime+period -> datetime.
func AddDateTimePeriod(dt, per string) (string, bool) {
	t, err := time.Parse(dateTimeLayout, normalizeDateTime(dt))
	if err != nil {
		return "", false
	}
	p, ok := parsePeriod(per)
	if !ok {
		return "", false
	}
	return p.apply(t).Format(dateTimeLayout), true
}

func normalizeDateTime(s string) string {
	out := []byte(s)
	if len(out) > 10 && out[10] == ' ' {
		out[10] = 'T'
	}
	return string(out)
}

// SubDates implements date-date -> period.
func SubDates(a, b string) (string, bool) {
	ta, erra := time.Parse(dateLayout, a)
	tb, errb := time.Parse(dateLayout, b)
	if erra != nil || errb != nil {
		return "", false
	}
	days := int(ta.Sub(tb).Hours() / 24)
	neg := ""
	if days < 0 {
		neg = "-"
		days = -days
	}
	return fmt.Sprintf("%sP%dD", neg, days), true
}

// SubDateTimes implements datetime-datetime -> period.
func SubDateTimes(a, b string) (string, bool) {
	ta, erra := time.Parse(dateTimeLayout, normalizeDateTime(a))
	tb, errb := time.Parse(dateTimeLayout, normalizeDateTime(b))
	if erra != nil || errb != nil {
		return "", false
	}
	d := ta.Sub(tb)
	neg := ""
	if d < 0 {
		neg = "-"
		d = -d
	}
	return fmt.Sprintf("%sPT%dS", neg, int(d.Seconds())), true
}
