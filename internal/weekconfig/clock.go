package weekconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// ErrInvalidClock время не в формате HH:mm
var ErrInvalidClock = errors.New("invalid time of day, expected HH:mm")

// Clock время суток в минутах от полуночи (0..1439)
type Clock int

// ZeroClock значение по умолчанию для нераспознанного времени
const ZeroClock Clock = 0

// NewClock собирает время из часов и минут
func NewClock(hour, minute int) Clock {
	return AddMinutes(ZeroClock, hour*60+minute)
}

// ParseClock разбирает "HH:mm".
// Некорректная строка не считается ошибкой и даёт ZeroClock (00:00).
func ParseClock(s string) Clock {
	c, err := ParseClockStrict(s)
	if err != nil {
		return ZeroClock
	}
	return c
}

// ParseClockStrict разбирает "HH:mm" и возвращает ErrInvalidClock при ошибке
func ParseClockStrict(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return ZeroClock, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return ZeroClock, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return ZeroClock, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return Clock(hour*60 + minute), nil
}

// Hour возвращает час (0-23)
func (c Clock) Hour() int {
	return int(c) / 60
}

// Minute возвращает минуту (0-59)
func (c Clock) Minute() int {
	return int(c) % 60
}

// String форматирует время как "HH:mm"
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// AddMinutes сдвигает время по кругу: 23:50 + 20 мин = 00:10.
// Отрицательный сдвиг тоже заворачивается через полночь.
func AddMinutes(t Clock, minutes int) Clock {
	v := (int(t) + minutes) % MinutesPerDay
	if v < 0 {
		v += MinutesPerDay
	}
	return Clock(v)
}
