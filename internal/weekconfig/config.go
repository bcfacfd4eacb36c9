package weekconfig

import (
	"errors"
	"fmt"
)

const (
	// MinClassDuration минимальная длительность занятия в минутах
	MinClassDuration = 15
	// MaxClassDuration максимальная длительность занятия в минутах (8 часов)
	MaxClassDuration = 480
	// DaysInWeek количество дней недели
	DaysInWeek = 7
)

// Смена по умолчанию для нового дня
var (
	DefaultShiftStart = NewClock(9, 0)
	DefaultShiftEnd   = NewClock(18, 0)
)

var (
	ErrInvalidWeekday = errors.New("weekday must be in range 0..6")
	ErrInvalidShift   = errors.New("shift start must be before shift end")
)

// Entry одно регулярное занятие для сохранения
type Entry struct {
	Weekday         int
	SeriesName      string
	Start           Clock
	DurationMinutes int
}

// Config настройка недели тренера: семь дней и общая длительность занятия
type Config struct {
	ClassDuration int
	rows          [DaysInWeek]Row
}

// New создаёт конфигурацию с выключенными днями
func New(classDuration int) *Config {
	c := &Config{}
	c.SetClassDuration(classDuration)
	for wd := 0; wd < DaysInWeek; wd++ {
		c.rows[wd] = NewRow(wd)
	}
	return c
}

// Clone глубокая копия конфигурации
func (c *Config) Clone() *Config {
	out := &Config{ClassDuration: c.ClassDuration}
	for wd := 0; wd < DaysInWeek; wd++ {
		out.rows[wd] = c.rows[wd].Clone()
	}
	return out
}

// SetClassDuration задаёт длительность в пределах MinClassDuration..MaxClassDuration
func (c *Config) SetClassDuration(minutes int) {
	if minutes < MinClassDuration {
		minutes = MinClassDuration
	}
	if minutes > MaxClassDuration {
		minutes = MaxClassDuration
	}
	c.ClassDuration = minutes
}

// Row возвращает копию строки дня
func (c *Config) Row(weekday int) (Row, error) {
	if weekday < 0 || weekday >= DaysInWeek {
		return Row{}, ErrInvalidWeekday
	}
	return c.rows[weekday].Clone(), nil
}

// Rows копии всех строк, индекс = день недели
func (c *Config) Rows() []Row {
	out := make([]Row, 0, DaysInWeek)
	for wd := 0; wd < DaysInWeek; wd++ {
		out = append(out, c.rows[wd].Clone())
	}
	return out
}

// UpdateRow заменяет строку дня целиком
func (c *Config) UpdateRow(row Row) error {
	if row.Weekday < 0 || row.Weekday >= DaysInWeek {
		return ErrInvalidWeekday
	}
	row = row.Clone()
	c.rows[row.Weekday] = row
	return nil
}

func (c *Config) row(weekday int) (*Row, error) {
	if weekday < 0 || weekday >= DaysInWeek {
		return nil, ErrInvalidWeekday
	}
	return &c.rows[weekday], nil
}

// ToggleSlot переключает выбор слота в дне
func (c *Config) ToggleSlot(weekday int, start string) error {
	r, err := c.row(weekday)
	if err != nil {
		return err
	}
	*r = ToggleSlot(*r, start)
	return nil
}

// SetEnabled включает или выключает день
func (c *Config) SetEnabled(weekday int, enabled bool) error {
	r, err := c.row(weekday)
	if err != nil {
		return err
	}
	r.Enabled = enabled
	return nil
}

// SetShiftStart меняет начало смены
func (c *Config) SetShiftStart(weekday int, start Clock) error {
	r, err := c.row(weekday)
	if err != nil {
		return err
	}
	r.SetShift(start, r.ShiftEnd)
	return nil
}

// SetShiftEnd меняет конец смены
func (c *Config) SetShiftEnd(weekday int, end Clock) error {
	r, err := c.row(weekday)
	if err != nil {
		return err
	}
	r.SetShift(r.ShiftStart, end)
	return nil
}

// SetSeriesName задаёт название серии занятий дня
func (c *Config) SetSeriesName(weekday int, name string) error {
	r, err := c.row(weekday)
	if err != nil {
		return err
	}
	r.SeriesName = name
	return nil
}

// SelectAll выбирает все слоты дня
func (c *Config) SelectAll(weekday int) error {
	r, err := c.row(weekday)
	if err != nil {
		return err
	}
	r.SelectAll(c.ClassDuration)
	return nil
}

// ClearSelection снимает выбор всех слотов дня
func (c *Config) ClearSelection(weekday int) error {
	r, err := c.row(weekday)
	if err != nil {
		return err
	}
	r.ClearSelection()
	return nil
}

// PruneDay убирает выбранные слоты вне сетки одного дня
func (c *Config) PruneDay(weekday int) (int, error) {
	r, err := c.row(weekday)
	if err != nil {
		return 0, err
	}
	return r.Prune(c.ClassDuration), nil
}

// Prune убирает выбранные слоты вне сетки во всех днях
func (c *Config) Prune() int {
	total := 0
	for wd := range c.rows {
		total += c.rows[wd].Prune(c.ClassDuration)
	}
	return total
}

// Validate проверяет что у включённых дней корректная смена
func (c *Config) Validate() error {
	for _, r := range c.rows {
		if r.Enabled && !r.ValidShift() {
			return fmt.Errorf("weekday %d: %w", r.Weekday, ErrInvalidShift)
		}
	}
	return nil
}

// Entries регулярные занятия включённых дней в порядке дней и времени
func (c *Config) Entries() []Entry {
	var entries []Entry
	for _, r := range c.rows {
		if !r.Enabled {
			continue
		}
		for _, s := range r.Selected() {
			entries = append(entries, Entry{
				Weekday:         r.Weekday,
				SeriesName:      r.SeriesName,
				Start:           ParseClock(s),
				DurationMinutes: c.ClassDuration,
			})
		}
	}
	return entries
}

// EnabledDays количество включённых дней
func (c *Config) EnabledDays() int {
	n := 0
	for _, r := range c.rows {
		if r.Enabled {
			n++
		}
	}
	return n
}
