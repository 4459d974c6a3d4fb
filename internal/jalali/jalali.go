// Package jalali converts between the Persian (Jalali) calendar used for
// display and input, and the Gregorian dates stored internally.
//
// The conversion is the classic day-count algorithm: a Jalali date is turned
// into a day number relative to the Jalali epoch year 979, shifted by 79 days
// into the Gregorian frame anchored at 1600-01-01, and decomposed with the
// 400/100/4/1-year leap corrections. The Persian leap rule is the arithmetic
// 33-year cycle (8 leap years per cycle).
package jalali

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Months are the Persian month names, indexed by month-1.
var Months = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// gDaysBefore[i] is the number of days before Gregorian month i+1 in a
// non-leap year.
var gDaysBefore = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

var jMonthDays = [12]int{31, 31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 29}

// Fallback date returned for malformed input (Farvardin 1, 1402).
const (
	fallbackYear  = 1402
	fallbackMonth = 1
	fallbackDay   = 1
)

var rial = message.NewPrinter(language.Persian)

// MonthName returns the Persian name of month m (1-12), or "" when m is out
// of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return Months[m-1]
}

// IsLeapYear reports whether Jalali year jy is a leap year under the 33-year
// cycle rule.
func IsLeapYear(jy int) bool {
	r := (jy - 979) % 33
	if r < 0 {
		r += 33
	}
	// 8 leap years per cycle: every 4th year except the cycle's last slot.
	return r%4 == 0 && r != 32
}

// MonthLength returns the number of days in month jm of Jalali year jy.
func MonthLength(jy, jm int) int {
	if jm < 1 || jm > 12 {
		return 0
	}
	if jm == 12 && IsLeapYear(jy) {
		return 30
	}
	return jMonthDays[jm-1]
}

// ToGregorian converts a Jalali year, month and day to the Gregorian calendar
// instant used for storage and comparison (midnight UTC). Day-of-month bounds
// are not validated beyond the arithmetic; callers clamp input with
// MonthLength.
func ToGregorian(jy, jm, jd int) time.Time {
	jy2 := jy - 979
	jm2 := jm - 1
	jd2 := jd - 1

	dayNo := 365*jy2 + (jy2/33)*8 + (jy2%33+3)/4
	for i := 0; i < jm2; i++ {
		if i < 6 {
			dayNo += 31
		} else {
			dayNo += 30
		}
	}
	dayNo += jd2

	// Shift into the Gregorian frame (day 0 = 1600-01-01).
	gDayNo := dayNo + 79

	gy := 1600 + 400*(gDayNo/146097)
	gDayNo %= 146097

	leap := true
	if gDayNo >= 36525 {
		gDayNo--
		gy += 100 * (gDayNo / 36524)
		gDayNo %= 36524
		if gDayNo >= 365 {
			gDayNo++
		} else {
			leap = false
		}
	}

	gy += 4 * (gDayNo / 1461)
	gDayNo %= 1461
	if gDayNo >= 366 {
		leap = false
		gDayNo--
		gy += gDayNo / 365
		gDayNo %= 365
	}

	var i int
	for i = 0; i < 12 && gDayNo >= gDaysBefore[i]+leapShift(i, leap); i++ {
	}
	gm := i
	gd := gDayNo - gDaysBefore[i-1] - gregLeapDay(i, leap) + 1

	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC)
}

func leapShift(i int, leap bool) int {
	if i == 1 && leap {
		return 1
	}
	return 0
}

func gregLeapDay(i int, leap bool) int {
	if i > 2 && leap {
		return 1
	}
	return 0
}

// ToJalali decomposes a Gregorian instant into its Jalali year, month and day.
// A zero time yields the documented fallback date.
func ToJalali(t time.Time) (jy, jm, jd int) {
	if t.IsZero() {
		return fallbackYear, fallbackMonth, fallbackDay
	}
	gy, gmm, gd := t.Date()
	gm := int(gmm)

	gy2 := gy - 1600
	gDayNo := 365*gy2 + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400
	gDayNo += gDaysBefore[gm-1]
	if gm > 2 && isGregorianLeap(gy) {
		gDayNo++
	}
	gDayNo += gd - 1

	jDayNo := gDayNo - 79
	if jDayNo < 0 {
		return fallbackYear, fallbackMonth, fallbackDay
	}

	// 12053 days per 33-year cycle (25*365 + 8*366).
	jy = 979 + 33*(jDayNo/12053)
	jDayNo %= 12053

	jy += 4 * (jDayNo / 1461)
	jDayNo %= 1461
	if jDayNo >= 366 {
		jy += (jDayNo - 1) / 365
		jDayNo = (jDayNo - 1) % 365
	}

	var i int
	for i = 0; i < 11 && jDayNo >= jMonthDays[i]; i++ {
		jDayNo -= jMonthDays[i]
	}
	return jy, i + 1, jDayNo + 1
}

func isGregorianLeap(gy int) bool {
	return gy%4 == 0 && (gy%100 != 0 || gy%400 == 0)
}

// Format renders a Gregorian instant as a localized Persian calendar string,
// e.g. "۲۰ فروردین ۱۴۰۳".
func Format(t time.Time) string {
	jy, jm, jd := ToJalali(t)
	return localizeDigits(itoa(jd)) + " " + MonthName(jm) + " " + localizeDigits(itoa(jy))
}

// FormatRial renders an amount with fa-IR digit grouping and the rial suffix.
func FormatRial(amount int64) string {
	return rial.Sprintf("%d ریال", amount)
}

// DaysUntil returns the signed number of whole days from today until t,
// both truncated to midnight. Positive when t is in the future.
func DaysUntil(t time.Time) int {
	return DaysUntilAt(time.Now(), t)
}

// DaysUntilAt is DaysUntil with an explicit "now", for deterministic tests
// and the reminder sweep.
func DaysUntilAt(now, t time.Time) int {
	return int(midnight(t).Sub(midnight(now)) / (24 * time.Hour))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var persianDigits = [10]rune{'۰', '۱', '۲', '۳', '۴', '۵', '۶', '۷', '۸', '۹'}

func localizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return persianDigits[r-'0']
		}
		return r
	}, s)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [8]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}
