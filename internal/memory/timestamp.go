package memory

import "fmt"

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

var daysPerMonth = [12]int64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int64) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// FormatTimestamp renders a Unix timestamp (seconds) as
// "YYYY-MM-DD HH:MM UTC". Pure integer arithmetic, no time package, so
// entry headers are reproducible byte-for-byte on any platform.
func FormatTimestamp(unixSecs int64) string {
	days := unixSecs / secondsPerDay
	secondsToday := unixSecs % secondsPerDay

	hours := secondsToday / secondsPerHour
	minutes := (secondsToday % secondsPerHour) / secondsPerMinute

	year := int64(1970)
	for {
		daysThisYear := int64(365)
		if isLeapYear(year) {
			daysThisYear = 366
		}
		if days < daysThisYear {
			break
		}
		days -= daysThisYear
		year++
	}

	month := int64(1)
	day := days + 1
	for i, monthDays := range daysPerMonth {
		if i == 1 && isLeapYear(year) {
			monthDays = 29
		}
		if day <= monthDays {
			break
		}
		day -= monthDays
		month++
	}

	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d UTC", year, month, day, hours, minutes)
}
