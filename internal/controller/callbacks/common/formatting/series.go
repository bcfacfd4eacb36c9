package formatting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

// SeriesGroup дни недели с одинаковым набором занятий
type SeriesGroup struct {
	Weekdays   []int
	SeriesName string
	Starts     []weekconfig.Clock
	Duration   int
}

// GroupEntries группирует занятия недели по дням с одинаковым названием и временем.
// Группы отсортированы по первому дню (с понедельника)
func GroupEntries(entries []weekconfig.Entry) []*SeriesGroup {
	if len(entries) == 0 {
		return nil
	}

	type dayKey struct {
		weekday int
		name    string
	}

	// Собираем времена начала по дням
	byDay := make(map[dayKey][]weekconfig.Clock)
	durations := make(map[dayKey]int)
	for _, e := range entries {
		k := dayKey{weekday: e.Weekday, name: e.SeriesName}
		byDay[k] = append(byDay[k], e.Start)
		durations[k] = e.DurationMinutes
	}

	groups := make(map[string]*SeriesGroup)
	var order []string
	for k, starts := range byDay {
		sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

		key := groupKey(k.name, durations[k], starts)
		g, exists := groups[key]
		if !exists {
			g = &SeriesGroup{
				SeriesName: k.name,
				Starts:     starts,
				Duration:   durations[k],
			}
			groups[key] = g
			order = append(order, key)
		}
		g.Weekdays = append(g.Weekdays, k.weekday)
	}

	result := make([]*SeriesGroup, 0, len(order))
	for _, key := range order {
		g := groups[key]
		sort.Slice(g.Weekdays, func(i, j int) bool {
			return mondayIndex(g.Weekdays[i]) < mondayIndex(g.Weekdays[j])
		})
		result = append(result, g)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := mondayIndex(result[i].Weekdays[0]), mondayIndex(result[j].Weekdays[0])
		if a != b {
			return a < b
		}
		return result[i].Starts[0] < result[j].Starts[0]
	})

	return result
}

func groupKey(name string, duration int, starts []weekconfig.Clock) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s|%d|", name, duration)
	for _, s := range starts {
		sb.WriteString(s.String())
		sb.WriteByte(',')
	}
	return sb.String()
}

// mondayIndex позиция дня в неделе с понедельника
func mondayIndex(weekday int) int {
	return (weekday + 6) % 7
}

// FormatWeekdayRange форматирует дни недели, схлопывая подряд идущие
// Например: [1 2 3 5] -> "Пн-Ср, Пт"
func FormatWeekdayRange(weekdays []int) string {
	if len(weekdays) == 0 {
		return ""
	}

	sorted := make([]int, len(weekdays))
	copy(sorted, weekdays)
	sort.Slice(sorted, func(i, j int) bool { return mondayIndex(sorted[i]) < mondayIndex(sorted[j]) })

	var parts []string
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && mondayIndex(sorted[i]) == mondayIndex(sorted[i-1])+1 {
			continue
		}
		if i-start >= 3 {
			parts = append(parts, GetWeekdayShortName(sorted[start])+"-"+GetWeekdayShortName(sorted[i-1]))
		} else {
			for _, wd := range sorted[start:i] {
				parts = append(parts, GetWeekdayShortName(wd))
			}
		}
		start = i
	}

	return strings.Join(parts, ", ")
}

// FormatClassRange "09:00-10:00", конец считается с переходом через полночь
func FormatClassRange(start weekconfig.Clock, duration int) string {
	return fmt.Sprintf("%s-%s", start, weekconfig.AddMinutes(start, duration))
}

// FormatSeriesGroup форматирует группу
// Например: "Пн-Ср · Йога · 09:00-10:00, 18:00-19:00"
func FormatSeriesGroup(group *SeriesGroup) string {
	times := make([]string, 0, len(group.Starts))
	for _, s := range group.Starts {
		times = append(times, FormatClassRange(s, group.Duration))
	}

	name := group.SeriesName
	if name == "" {
		name = "Без названия"
	}

	return fmt.Sprintf("%s · %s · %s", FormatWeekdayRange(group.Weekdays), name, strings.Join(times, ", "))
}
