package services

import (
	"time"

	"github.com/estuardoo/api-transacciones-full/models"
)

const (
	dateLayout     = "2006-01-02"
	dayStartSuffix = "00:00:00"
	dayEndSuffix   = "23:59:59"
)

// DayWindow returns the inclusive range-key bounds covering one calendar
// day, formatted with the separator of the index generation being queried.
func DayWindow(fecha, sep string) models.QueryWindow {
	return models.QueryWindow{
		Start: fecha + sep + dayStartSuffix,
		End:   fecha + sep + dayEndSuffix,
	}
}

// MonthWindow returns the inclusive range-key bounds covering the whole
// calendar month containing fecha. The end bound is computed as the first
// day of the following month minus one second, which lands on the month's
// true last day without any month-length or leap-year table.
func MonthWindow(fecha, sep string) (models.QueryWindow, error) {
	t, err := time.Parse(dateLayout, fecha)
	if err != nil {
		return models.QueryWindow{}, models.Invalid("Fecha inválida: " + fecha)
	}

	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	var next time.Time
	if start.Month() == time.December {
		next = time.Date(start.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	} else {
		next = time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	}
	end := next.Add(-time.Second)

	return models.QueryWindow{
		Start: start.Format(dateLayout) + sep + dayStartSuffix,
		End:   end.Format(dateLayout) + sep + end.Format("15:04:05"),
	}, nil
}

// validDate reports whether a date filter parameter is a well-formed
// YYYY-MM-DD value.
func validDate(fecha string) bool {
	_, err := time.Parse(dateLayout, fecha)
	return err == nil
}

// validMonth reports whether a date filter parameter is a well-formed
// YYYY-MM value.
func validMonth(fecha string) bool {
	_, err := time.Parse("2006-01", fecha)
	return err == nil
}
