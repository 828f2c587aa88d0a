package core

import "strconv"

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril",
	"Maio", "Junho", "Julho", "Agosto",
	"Setembro", "Outubro", "Novembro", "Dezembro",
}

// Label renders the cursor as a human-readable month, e.g. "Janeiro 2025".
func (ym YearMonth) Label() string {
	m := ym.Month
	if m < 1 || m > 12 {
		m = 1
	}
	return monthNames[m-1] + " " + strconv.Itoa(ym.Year)
}

// FormatShort renders the date as DD/MM.
func (d Date) FormatShort() string {
	return d.Format("02/01")
}

// FormatFull renders the date as DD/MM/YYYY.
func (d Date) FormatFull() string {
	return d.Format("02/01/2006")
}
