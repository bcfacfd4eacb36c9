package weekdialog

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/gym_scheduler/internal/service"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
	"github.com/go-telegram/bot/models"
)

// RenderOverview экран всей недели: дни, длительность, сохранение
func RenderOverview(cfg *weekconfig.Config) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("🗓 <b>Настройка недели</b>\n")
	fmt.Fprintf(&sb, "⏱ Длительность занятия: %s\n\n", formatting.FormatDuration(cfg.ClassDuration))

	total := 0
	hasOrphans := false
	var dayButtons []models.InlineKeyboardButton

	for _, wd := range formatting.WeekdaysMondayFirst {
		row, _ := cfg.Row(wd)
		short := formatting.GetWeekdayShortName(wd)

		if !row.Enabled {
			fmt.Fprintf(&sb, "⚪️ %s · выходной\n", short)
			dayButtons = append(dayButtons, keyboard.Button(short, dayData(wd, 0)))
			continue
		}

		selected := len(row.Selected())
		orphans := len(row.Orphans(cfg.ClassDuration))
		total += selected - orphans

		fmt.Fprintf(&sb, "🟢 %s · %s · %s-%s · %d %s",
			short,
			seriesLabel(row.SeriesName),
			row.ShiftStart, row.ShiftEnd,
			selected, formatting.PluralizeClasses(selected))
		if !row.ValidShift() {
			sb.WriteString(" ❗")
		}
		if orphans > 0 {
			hasOrphans = true
			sb.WriteString(" ⚠️")
		}
		sb.WriteString("\n")

		dayButtons = append(dayButtons, keyboard.Button("🟢 "+short, dayData(wd, 0)))
	}

	fmt.Fprintf(&sb, "\nВсего: %d %s в неделю\n", total, formatting.PluralizeClasses(total))
	if hasOrphans {
		sb.WriteString("⚠️ Есть занятия вне сетки смены, при сохранении они будут удалены\n")
	}
	if err := cfg.Validate(); err != nil {
		sb.WriteString("❗ Начало смены должно быть раньше конца\n")
	}

	kb := keyboard.NewBuilder().
		AddRow(dayButtons[:4]).
		AddRow(dayButtons[4:]).
		Row(keyboard.Button("⏱ Длительность: "+formatting.FormatDuration(cfg.ClassDuration), DurationMenu)).
		Row(
			keyboard.Button("💾 Сохранить", Save),
			keyboard.Button("❌ Отмена", Cancel),
		).
		Build()

	return sb.String(), kb
}

// RenderDay экран одного дня: статус, смена, сетка слотов
func RenderDay(cfg *weekconfig.Config, weekday, page int) (string, *models.InlineKeyboardMarkup, error) {
	row, err := cfg.Row(weekday)
	if err != nil {
		return "", nil, err
	}

	candidates := row.Candidates(cfg.ClassDuration)
	orphans := row.Orphans(cfg.ClassDuration)
	selected := len(row.Selected())

	pages := PageCount(len(candidates))
	page = clampPage(page, pages)

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>%s</b>\n\n", formatting.GetWeekdayName(weekday))
	if row.Enabled {
		sb.WriteString("Статус: 🟢 рабочий день\n")
	} else {
		sb.WriteString("Статус: ⚪️ выходной\n")
	}
	fmt.Fprintf(&sb, "Занятие: %s\n", seriesLabel(row.SeriesName))
	fmt.Fprintf(&sb, "Смена: %s-%s\n", row.ShiftStart, row.ShiftEnd)
	fmt.Fprintf(&sb, "Длительность: %s\n", formatting.FormatDuration(cfg.ClassDuration))
	fmt.Fprintf(&sb, "Выбрано: %d %s\n", selected, formatting.PluralizeClasses(selected))

	switch {
	case !row.ValidShift():
		sb.WriteString("\n❗ Начало смены должно быть раньше конца\n")
	case len(candidates) == 0:
		sb.WriteString("\nВ смену не помещается ни одного занятия\n")
	}

	if len(orphans) > 0 {
		fmt.Fprintf(&sb, "\n⚠️ Вне сетки смены: %s\nПри сохранении они будут удалены.\n", strings.Join(orphans, ", "))
	}
	if pages > 1 {
		fmt.Fprintf(&sb, "\nСтраница %d/%d\n", page+1, pages)
	}
	if len(candidates) > 0 {
		sb.WriteString("\nНажмите на время, чтобы выбрать или снять занятие.")
	}

	kb := keyboard.NewBuilder()

	if row.Enabled {
		kb.Row(keyboard.Button("🟢 Рабочий день", fmt.Sprintf("%s%d", ToggleDay, weekday)))
	} else {
		kb.Row(keyboard.Button("⚪️ Выходной", fmt.Sprintf("%s%d", ToggleDay, weekday)))
	}
	kb.Row(
		keyboard.Button("🕐 Начало "+row.ShiftStart.String(), fmt.Sprintf("%s%d", StartMenu, weekday)),
		keyboard.Button("🕕 Конец "+row.ShiftEnd.String(), fmt.Sprintf("%s%d", EndMenu, weekday)),
	)
	kb.Row(keyboard.Button("✏️ Название занятия", fmt.Sprintf("%s%d", EnterName, weekday)))

	from := page * slotsPerPage
	to := from + slotsPerPage
	if to > len(candidates) {
		to = len(candidates)
	}

	var slotButtons []models.InlineKeyboardButton
	for _, label := range candidates[from:to] {
		text := label
		if row.IsSelected(label) {
			text = "✅ " + label
		}
		slotButtons = append(slotButtons, keyboard.Button(text, slotData(weekday, label)))
	}
	kb.Grid(slotButtons, slotsPerRow)

	var orphanButtons []models.InlineKeyboardButton
	for i, label := range orphans {
		if i == maxOrphanButtons {
			break
		}
		orphanButtons = append(orphanButtons, keyboard.Button("⚠️ "+label, slotData(weekday, label)))
	}
	kb.Grid(orphanButtons, slotsPerRow)

	if pages > 1 {
		kb.Row(
			keyboard.Button("◀️", dayData(weekday, (page+pages-1)%pages)),
			keyboard.Button(fmt.Sprintf("%d/%d", page+1, pages), Noop),
			keyboard.Button("▶️", dayData(weekday, (page+1)%pages)),
		)
	}

	if len(candidates) > 0 {
		kb.Row(
			keyboard.Button("☑️ Все", fmt.Sprintf("%s%d", SelectAll, weekday)),
			keyboard.Button("🧹 Снять все", fmt.Sprintf("%s%d", ClearSlots, weekday)),
		)
	}
	if len(orphans) > 0 {
		kb.Row(keyboard.Button("🗑 Убрать вне сетки", fmt.Sprintf("%s%d", PruneDay, weekday)))
	}
	kb.Row(keyboard.Button("⬅️ К неделе", Back))

	return sb.String(), kb.Build(), nil
}

// RenderShiftPicker выбор начала (end=false) или конца (end=true) смены
func RenderShiftPicker(cfg *weekconfig.Config, weekday int, end bool) (string, *models.InlineKeyboardMarkup, error) {
	row, err := cfg.Row(weekday)
	if err != nil {
		return "", nil, err
	}

	prefix := SetStart
	current := row.ShiftStart
	title := "начала"
	if end {
		prefix = SetEnd
		current = row.ShiftEnd
		title = "окончания"
	}

	var buttons []models.InlineKeyboardButton
	for _, c := range PickerTimes() {
		// Конец смены только после начала
		if end && c <= row.ShiftStart {
			continue
		}
		text := c.String()
		if c == current {
			text = "• " + text + " •"
		}
		buttons = append(buttons, keyboard.Button(text, fmt.Sprintf("%s%d:%d", prefix, weekday, int(c))))
	}

	text := fmt.Sprintf("📅 <b>%s</b>\nСмена: %s-%s\n\nВыберите время <b>%s</b> смены:",
		formatting.GetWeekdayName(weekday), row.ShiftStart, row.ShiftEnd, title)
	if len(buttons) == 0 {
		text += "\n\nНет подходящего времени, сначала измените начало смены."
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, slotsPerRow).
		Row(keyboard.BackButton(dayData(weekday, 0))).
		Build()

	return text, kb, nil
}

// RenderDurationPicker выбор длительности занятия
func RenderDurationPicker(cfg *weekconfig.Config) (string, *models.InlineKeyboardMarkup) {
	var buttons []models.InlineKeyboardButton
	for _, d := range DurationOptions {
		text := formatting.FormatDuration(d)
		if d == cfg.ClassDuration {
			text = "✅ " + text
		}
		buttons = append(buttons, keyboard.Button(text, fmt.Sprintf("%s%d", SetDuration, d)))
	}

	text := fmt.Sprintf("⏱ <b>Длительность занятия</b>\n\nСейчас: %s\nМинимум: %d мин\n\n"+
		"Длительность общая для всех дней. Выбранные занятия, которые перестанут попадать в сетку, "+
		"будут отмечены ⚠️.",
		formatting.FormatDuration(cfg.ClassDuration), weekconfig.MinClassDuration)

	kb := keyboard.NewBuilder().
		Grid(buttons, slotsPerRow).
		Row(keyboard.Button("✏️ Своё значение", CustomDuration)).
		Row(keyboard.BackButton(Back)).
		Build()

	return text, kb
}

// RenderSaved итог сохранения недели
func RenderSaved(cfg *weekconfig.Config, res *service.SaveResult) string {
	var sb strings.Builder
	sb.WriteString("✅ <b>Неделя сохранена</b>\n\n")

	groups := formatting.GroupEntries(cfg.Entries())
	if len(groups) == 0 {
		sb.WriteString("Регулярных занятий нет.\n")
	}
	for _, g := range groups {
		sb.WriteString(html.EscapeString(formatting.FormatSeriesGroup(g)))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nСоздано %d %s в расписании.", res.SessionsCreated, formatting.PluralizeClasses(res.SessionsCreated))
	if res.Pruned > 0 {
		fmt.Fprintf(&sb, "\nУдалено вне сетки: %d.", res.Pruned)
	}
	sb.WriteString("\n\nПосмотреть расписание: /myschedule")

	return sb.String()
}

// PickerTimes времена в сетке выбора смены
func PickerTimes() []weekconfig.Clock {
	var out []weekconfig.Clock
	for m := PickerFrom; m <= PickerTo; m += PickerStep {
		out = append(out, weekconfig.Clock(m))
	}
	return out
}

// PageCount количество страниц сетки слотов
func PageCount(candidates int) int {
	if candidates == 0 {
		return 1
	}
	return (candidates + slotsPerPage - 1) / slotsPerPage
}

// PageOf страница, на которой находится слот; 0 если слота нет в сетке
func PageOf(row weekconfig.Row, duration int, label string) int {
	for i, c := range row.Candidates(duration) {
		if c == label {
			return i / slotsPerPage
		}
	}
	return 0
}

func clampPage(page, pages int) int {
	if page < 0 {
		return 0
	}
	if page >= pages {
		return pages - 1
	}
	return page
}

func seriesLabel(name string) string {
	if name == "" {
		return "без названия"
	}
	return html.EscapeString(name)
}

func dayData(weekday, page int) string {
	return fmt.Sprintf("%s%d:%d", DayView, weekday, page)
}

func slotData(weekday int, label string) string {
	return fmt.Sprintf("%s%d:%d", ToggleSlot, weekday, int(weekconfig.ParseClock(label)))
}
