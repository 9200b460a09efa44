package healthevents

import (
	"strings"
	"time"
)

// Recurrence es el código de intervalo de una serie.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceYearly  Recurrence = "1y"
	RecurrenceHalf    Recurrence = "6m"
	RecurrenceQuarter Recurrence = "3m"
	RecurrenceMonthly Recurrence = "1m"
)

// SeriesLength: cantidad fija de ocurrencias por serie.
const SeriesLength = 4

var monthSteps = map[Recurrence]int{
	RecurrenceYearly:  12,
	RecurrenceHalf:    6,
	RecurrenceQuarter: 3,
	RecurrenceMonthly: 1,
}

// ParseRecurrence: "" y "none" son RecurrenceNone; cualquier otro código
// fuera de la lista es ErrInvalidRecurrence (no hay fallback silencioso).
func ParseRecurrence(s string) (Recurrence, error) {
	r := Recurrence(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return RecurrenceNone, nil
	}
	if !r.Valid() {
		return "", ErrInvalidRecurrence
	}
	return r, nil
}

func (r Recurrence) Valid() bool {
	if r == RecurrenceNone {
		return true
	}
	_, ok := monthSteps[r]
	return ok
}

// MonthStep devuelve 0 para none.
func (r Recurrence) MonthStep() int {
	return monthSteps[r]
}

func (r Recurrence) IsSeries() bool {
	return r.MonthStep() > 0
}

// AddMonthsClamped suma meses calendario; si el día no existe en el mes
// destino se usa el último día de ese mes (31-ene + 1m = 29-feb en bisiesto).
func AddMonthsClamped(d time.Time, months int) time.Time {
	y, m, day := d.Date()

	total := int(m) - 1 + months
	y += floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)

	if last := daysIn(y, month); day > last {
		day = last
	}

	hh, mm, ss := d.Clock()
	return time.Date(y, month, day, hh, mm, ss, d.Nanosecond(), d.Location())
}

// SeriesDates calcula las fechas siempre desde el ancla (start + i*step),
// así un clamp en una ocurrencia no arrastra a las siguientes.
func SeriesDates(start time.Time, r Recurrence) []time.Time {
	step := r.MonthStep()
	if step == 0 {
		return []time.Time{start}
	}
	out := make([]time.Time, SeriesLength)
	for i := 0; i < SeriesLength; i++ {
		out[i] = AddMonthsClamped(start, i*step)
	}
	return out
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
