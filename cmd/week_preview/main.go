package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

// Рисует неделю тренера без бота и базы: все слоты смены выбраны в указанные дни
func main() {
	shiftStart := flag.String("start", "09:00", "начало смены HH:mm")
	shiftEnd := flag.String("end", "18:00", "конец смены HH:mm")
	duration := flag.Int("duration", 60, "длительность занятия в минутах")
	days := flag.String("days", "1,3,5", "дни недели через запятую, 0 = воскресенье")
	name := flag.String("name", "Функциональный тренинг", "название занятия")
	out := flag.String("out", "week.png", "файл для сохранения")
	flag.Parse()

	cfg, err := buildConfig(*shiftStart, *shiftEnd, *duration, *days, *name)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	sessions := sessionsForWeek(cfg, now)

	imageData, err := common.GenerateWeekImage(now, now, sessions)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение сохранено в %s\n", *out)
	for _, g := range formatting.GroupEntries(cfg.Entries()) {
		fmt.Printf("• %s\n", formatting.FormatSeriesGroup(g))
	}
	fmt.Printf("📊 %d %s\n", len(sessions), formatting.PluralizeClasses(len(sessions)))
}

func buildConfig(start, end string, duration int, days, name string) (*weekconfig.Config, error) {
	from, err := weekconfig.ParseClockStrict(start)
	if err != nil {
		return nil, err
	}
	to, err := weekconfig.ParseClockStrict(end)
	if err != nil {
		return nil, err
	}

	cfg := weekconfig.New(duration)
	for _, raw := range strings.Split(days, ",") {
		wd, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("day %q: %w", raw, err)
		}
		if err := cfg.SetEnabled(wd, true); err != nil {
			return nil, err
		}
		if err := cfg.SetShiftStart(wd, from); err != nil {
			return nil, err
		}
		if err := cfg.SetShiftEnd(wd, to); err != nil {
			return nil, err
		}
		if err := cfg.SetSeriesName(wd, name); err != nil {
			return nil, err
		}
		if err := cfg.SelectAll(wd); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sessionsForWeek раскладывает занятия по дням недели, в которую входит date
func sessionsForWeek(cfg *weekconfig.Config, date time.Time) []*model.ClassSession {
	monday := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}

	var sessions []*model.ClassSession
	for i, e := range cfg.Entries() {
		offset := (e.Weekday + 6) % 7
		day := monday.AddDate(0, 0, offset)
		startTime := time.Date(day.Year(), day.Month(), day.Day(), e.Start.Hour(), e.Start.Minute(), 0, 0, day.Location())

		sessions = append(sessions, &model.ClassSession{
			ID:         int64(i + 1),
			SeriesName: e.SeriesName,
			StartTime:  startTime,
			EndTime:    startTime.Add(time.Duration(e.DurationMinutes) * time.Minute),
			Status:     model.SessionStatusScheduled,
		})
	}
	return sessions
}
