package enums

// Weekday numbering matches Postgres EXTRACT(DOW): 0=Sunday .. 6=Saturday.
// Names follow the locale of the POS data.
var weekdayNames = [7]string{
	"Domingo",
	"Segunda",
	"Terça",
	"Quarta",
	"Quinta",
	"Sexta",
	"Sábado",
}

// WeekdayName returns the display name for day, or "" when out of range.
func WeekdayName(day int) string {
	if day < 0 || day >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[day]
}
