package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var datePattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)

var spaces = regexp.MustCompile(`\s+`)

var weekdays = []string{
	"lunes", "martes", "miércoles", "miercoles", "jueves",
	"viernes", "sábado", "sabado", "domingo",
}

var monthNumbers = map[string]string{
	"enero": "01", "febrero": "02", "marzo": "03", "abril": "04",
	"mayo": "05", "junio": "06", "julio": "07", "agosto": "08",
	"septiembre": "09", "octubre": "10", "noviembre": "11", "diciembre": "12",
}

var monthNames = [13]string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo",
	"Junio", "Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// Number is the tolerant numeric coercion used on grid cells. The false
// return is the missing-value sentinel: a cell that cannot be read as a
// number rejects the row, it never aborts the scan.
func Number(cell string) (float64, bool) {
	value := strings.TrimSpace(cell)
	if value == "" || strings.EqualFold(value, "nan") {
		return 0, false
	}
	value = strings.ReplaceAll(value, "$", "")
	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimSpace(value)
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// ExtractDate pulls the first dd/mm/yyyy occurrence out of free text,
// e.g. "FECHA FACT: 03/02/2026 HORA: 12:01".
func ExtractDate(cell string) (time.Time, bool) {
	match := datePattern.FindString(cell)
	if match == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("02/01/2006", match)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MessyDate normalizes the long-form Spanish dates found in sales-request
// sheets ("Lunes 2 de Febrero del 2026", "3-feb-26") by token substitution
// before parsing. dayFirst selects the day/month order of the source.
func MessyDate(cell string, dayFirst bool) (time.Time, bool) {
	value := strings.ToLower(strings.TrimSpace(cell))
	if value == "" || value == "nan" {
		return time.Time{}, false
	}

	for _, day := range weekdays {
		value = strings.ReplaceAll(value, day, "")
	}
	for name, num := range monthNumbers {
		value = strings.ReplaceAll(value, name, num)
	}
	value = strings.ReplaceAll(value, " de ", "/")
	value = strings.ReplaceAll(value, " del ", "/")
	value = strings.ReplaceAll(value, ",", "")
	value = strings.ReplaceAll(value, "-", "/")
	value = spaces.ReplaceAllString(value, " ")
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, " ", "/")

	parts := strings.Split(value, "/")
	fields := make([]int, 0, 3)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}
		fields = append(fields, n)
		if len(fields) == 3 {
			break
		}
	}
	if len(fields) != 3 {
		return time.Time{}, false
	}

	day, month, year := fields[0], fields[1], fields[2]
	if !dayFirst {
		day, month = month, day
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}

// ValidPart reports whether a cell holds a usable part identifier:
// numeric, not the nan sentinel, not the zero placeholder.
func ValidPart(cell string) bool {
	n, ok := Number(cell)
	return ok && n != 0
}

// MissingText reports whether a description cell is blank or the string
// form of a missing value. Subtotal and spacer rows fail this check.
func MissingText(cell string) bool {
	value := strings.TrimSpace(cell)
	return value == "" || strings.EqualFold(value, "nan")
}

// MonthName returns the Spanish month name used in report sheet titles.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m]
}
