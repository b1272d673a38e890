package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DisplayValue renders a cell's content as its formatted display string,
// implementing the Formatter contract in §4.3. Empty -> "", Text -> as is,
// an errored Formula -> its fixed error token, a string-result Formula ->
// its cached string, otherwise the numeric value is rendered per Format.
func DisplayValue(c *Cell) string {
	if c == nil {
		return ""
	}
	switch c.Type {
	case ContentEmpty:
		return ""
	case ContentText:
		return c.Text
	case ContentError:
		return c.Err.Token()
	case ContentFormula:
		if c.Cache.Err != ErrNone {
			return c.Cache.Err.Token()
		}
		if c.Cache.IsStringResult {
			return c.Cache.String
		}
		return formatNumber(c.Cache.Number, c)
	case ContentNumber:
		return formatNumber(c.Number, c)
	default:
		return ""
	}
}

func formatNumber(v float64, c *Cell) string {
	switch c.Format {
	case FormatPercentage:
		return formatFixed(v*100, c.Precision) + "%"
	case FormatCurrency:
		return formatCurrency(v)
	case FormatDate:
		return formatDate(v, c.FormatStyle.Date)
	case FormatTime:
		return formatTime(v, c.FormatStyle.Time)
	case FormatDateTime:
		return formatDateTime(v, c.FormatStyle.DateTime)
	default: // FormatGeneral, FormatNumber
		return formatFixed(v, c.Precision)
	}
}

// formatFixed renders v at the given precision, stripping trailing zeros
// and a trailing '.' for general/number format (§4.3).
func formatFixed(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// formatCurrency renders v at exactly two decimals with negatives as
// "-$|v|" rather than "$-v" (§4.3).
func formatCurrency(v float64) string {
	if v < 0 {
		return "-$" + strconv.FormatFloat(-v, 'f', 2, 64)
	}
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

// excelEpochTime converts an Excel-style serial date into a time.Time,
// deferring to excelize's implementation — which includes the 1900
// leap-year compatibility bug — rather than a hand-rolled Gregorian
// routine. This resolves §4.3's open "which epoch" question by matching
// whatever epoch a real xlsx toolchain in this pack already uses.
func excelEpochTime(serial float64) time.Time {
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t.UTC()
}

func formatDate(serial float64, style DateStyle) string {
	t := excelEpochTime(serial)
	y, m, d := t.Year(), int(t.Month()), t.Day()
	switch style {
	case DateDMY:
		return fmt.Sprintf("%02d/%02d/%04d", d, m, y)
	case DateISO:
		return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
	case DateMDYShortYear:
		return fmt.Sprintf("%02d/%02d/%02d", m, d, y%100)
	case DateMonDDYYYY:
		return fmt.Sprintf("%s %02d, %04d", monthAbbrev(t.Month()), d, y)
	case DateDDMonYYYY:
		return fmt.Sprintf("%02d %s %04d", d, monthAbbrev(t.Month()), y)
	case DateYYYYMonDD:
		return fmt.Sprintf("%04d %s %02d", y, monthAbbrev(t.Month()), d)
	default: // DateMDY
		return fmt.Sprintf("%02d/%02d/%04d", m, d, y)
	}
}

func monthAbbrev(m time.Month) string {
	return m.String()[:3]
}

// fracOfDaySeconds returns the whole-second count within the day encoded
// by the fractional part of serial.
func fracOfDaySeconds(serial float64) int {
	frac := serial - float64(int64(serial))
	if frac < 0 {
		frac += 1
	}
	secs := int(frac*86400 + 0.5)
	if secs >= 86400 {
		secs = 86399
	}
	return secs
}

func formatTime(serial float64, style TimeStyle) string {
	secs := fracOfDaySeconds(serial)
	h, m, s := secs/3600, (secs/60)%60, secs%60
	switch style {
	case Time24Hr:
		return fmt.Sprintf("%02d:%02d", h, m)
	case Time24HrWithSeconds:
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	case Time12HrWithSeconds:
		hh, ampm := to12Hour(h)
		return fmt.Sprintf("%d:%02d:%02d %s", hh, m, s, ampm)
	default: // Time12Hr
		hh, ampm := to12Hour(h)
		return fmt.Sprintf("%d:%02d %s", hh, m, ampm)
	}
}

func to12Hour(h int) (int, string) {
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	hh := h % 12
	if hh == 0 {
		hh = 12
	}
	return hh, ampm
}

func formatDateTime(serial float64, style DateTimeStyle) string {
	t := excelEpochTime(serial)
	secs := fracOfDaySeconds(serial)
	h, m, s := secs/3600, (secs/60)%60, secs%60
	switch style {
	case DateTimeISO:
		return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", t.Year(), int(t.Month()), t.Day(), h, m, s)
	case DateTimeLong:
		hh, ampm := to12Hour(h)
		return fmt.Sprintf("%s %02d, %04d %d:%02d:%02d %s", monthAbbrev(t.Month()), t.Day(), t.Year(), hh, m, s, ampm)
	default: // DateTimeShort
		hh, ampm := to12Hour(h)
		return fmt.Sprintf("%d/%d/%02d %d:%02d %s", int(t.Month()), t.Day(), t.Year()%100, hh, m, ampm)
	}
}

// CycleDateTimeFormat advances a cell's format/style to the next one in a
// fixed cycle: general -> number -> percentage -> currency -> each date
// style -> each time style -> each datetime style -> back to general
// (§4.3's "convenience cycle").
func CycleDateTimeFormat(c *Cell) {
	switch c.Format {
	case FormatGeneral:
		c.Format = FormatNumber
	case FormatNumber:
		c.Format = FormatPercentage
	case FormatPercentage:
		c.Format = FormatCurrency
	case FormatCurrency:
		c.Format = FormatDate
		c.FormatStyle.Date = DateMDY
	case FormatDate:
		if int(c.FormatStyle.Date)+1 < int(dateStyleCount) {
			c.FormatStyle.Date++
		} else {
			c.Format = FormatTime
			c.FormatStyle.Time = Time12Hr
		}
	case FormatTime:
		if int(c.FormatStyle.Time)+1 < int(timeStyleCount) {
			c.FormatStyle.Time++
		} else {
			c.Format = FormatDateTime
			c.FormatStyle.DateTime = DateTimeShort
		}
	case FormatDateTime:
		if int(c.FormatStyle.DateTime)+1 < int(dateTimeStyleCount) {
			c.FormatStyle.DateTime++
		} else {
			c.Format = FormatGeneral
		}
	}
}
