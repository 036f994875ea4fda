package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// Yesterday retorna a data de ontem, truncada para o início do dia em UTC.
func Yesterday(now time.Time) time.Time {
	y := now.UTC().AddDate(0, 0, -1)
	return time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, time.UTC)
}

// WindowEndingYesterday calcula a janela de periodDays dias que termina
// ontem, inclusiva nas duas pontas. Uma janela de 7 dias cobre de 7 dias
// atrás até ontem.
func WindowEndingYesterday(now time.Time, periodDays int) (start, end time.Time) {
	end = Yesterday(now)
	start = end.AddDate(0, 0, -(periodDays - 1))
	return start, end
}
