package weekconfig

import "sort"

// Row настройка одного дня недели
type Row struct {
	Weekday        int    // 0 = Sunday, 6 = Saturday
	Enabled        bool
	SeriesName     string
	ShiftStart     Clock
	ShiftEnd       Clock
	SelectedStarts map[string]struct{} // "HH:mm"
}

// NewRow создаёт выключенный день со сменой по умолчанию
func NewRow(weekday int) Row {
	return Row{
		Weekday:        weekday,
		ShiftStart:     DefaultShiftStart,
		ShiftEnd:       DefaultShiftEnd,
		SelectedStarts: make(map[string]struct{}),
	}
}

// Clone возвращает копию строки с отдельным набором выбранных слотов
func (r Row) Clone() Row {
	selected := make(map[string]struct{}, len(r.SelectedStarts))
	for k := range r.SelectedStarts {
		selected[k] = struct{}{}
	}
	r.SelectedStarts = selected
	return r
}

// ToggleSlot переключает выбор слота. Исходная строка не изменяется.
// Принадлежность start к сетке смены не проверяется.
func ToggleSlot(row Row, start string) Row {
	next := row.Clone()
	if _, ok := next.SelectedStarts[start]; ok {
		delete(next.SelectedStarts, start)
	} else {
		next.SelectedStarts[start] = struct{}{}
	}
	return next
}

// Candidates сетка возможных начал занятий для смены
func (r Row) Candidates(duration int) []string {
	return ComputeSlotLabels(r.ShiftStart, r.ShiftEnd, duration)
}

// ValidShift true если начало смены раньше конца
func (r Row) ValidShift() bool {
	return r.ShiftStart < r.ShiftEnd
}

// IsSelected выбран ли слот
func (r Row) IsSelected(start string) bool {
	_, ok := r.SelectedStarts[start]
	return ok
}

// Selected выбранные слоты по возрастанию
func (r Row) Selected() []string {
	out := make([]string, 0, len(r.SelectedStarts))
	for k := range r.SelectedStarts {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		return ParseClock(out[i]) < ParseClock(out[j])
	})
	return out
}

// Orphans выбранные слоты, которых нет в текущей сетке смены
func (r Row) Orphans(duration int) []string {
	candidates := make(map[string]struct{})
	for _, c := range r.Candidates(duration) {
		candidates[c] = struct{}{}
	}

	var out []string
	for _, s := range r.Selected() {
		if _, ok := candidates[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// SetShift меняет границы смены. Выбранные слоты не трогает.
func (r *Row) SetShift(start, end Clock) {
	r.ShiftStart = start
	r.ShiftEnd = end
}

// Prune убирает выбранные слоты вне сетки смены и возвращает их количество
func (r *Row) Prune(duration int) int {
	orphans := r.Orphans(duration)
	for _, s := range orphans {
		delete(r.SelectedStarts, s)
	}
	return len(orphans)
}

// SelectAll выбирает всю сетку смены
func (r *Row) SelectAll(duration int) {
	if r.SelectedStarts == nil {
		r.SelectedStarts = make(map[string]struct{})
	}
	for _, c := range r.Candidates(duration) {
		r.SelectedStarts[c] = struct{}{}
	}
}

// ClearSelection снимает выбор со всех слотов
func (r *Row) ClearSelection() {
	r.SelectedStarts = make(map[string]struct{})
}
