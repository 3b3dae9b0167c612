package reporting

import "strings"

// polishHolidays lists the fixed-date public holidays observed in Poland,
// keyed by "MM-DD". Movable feasts (Easter and its derivatives) are not
// tracked; session columns on those dates carry no holiday flag.
var polishHolidays = map[string]struct{}{
	"01-01": {}, // Nowy Rok
	"01-06": {}, // Trzech Króli
	"05-01": {}, // Święto Pracy
	"05-03": {}, // Święto Konstytucji 3 Maja
	"08-15": {}, // Wniebowzięcie NMP
	"11-01": {}, // Wszystkich Świętych
	"11-11": {}, // Święto Niepodległości
	"12-25": {}, // Boże Narodzenie
	"12-26": {}, // Drugi dzień Świąt
}

// IsPolishHoliday reports whether the "YYYY-MM-DD" date falls on a fixed-date
// Polish public holiday.
func IsPolishHoliday(date string) bool {
	idx := strings.Index(date, "-")
	if idx < 0 || idx+1 >= len(date) {
		return false
	}
	_, ok := polishHolidays[date[idx+1:]]
	return ok
}
