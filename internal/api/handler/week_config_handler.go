package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/gym_scheduler/internal/api/response"
	"github.com/Freeeeeet/gym_scheduler/internal/service"
	"github.com/Freeeeeet/gym_scheduler/internal/weekconfig"
)

// WeekConfigHandler настройка недели тренера
type WeekConfigHandler struct {
	trainerService TrainerService
	logger         *zap.Logger
}

// NewWeekConfigHandler создаёт WeekConfigHandler
func NewWeekConfigHandler(trainerService TrainerService, logger *zap.Logger) *WeekConfigHandler {
	return &WeekConfigHandler{
		trainerService: trainerService,
		logger:         logger,
	}
}

// GetWeekConfig возвращает неделю вызывающего тренера
// GET /api/v1/week-config
func (h *WeekConfigHandler) GetWeekConfig(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cfg, err := h.trainerService.LoadWeekConfig(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, toWeekConfigDTO(cfg))
}

// PutWeekConfig заменяет неделю вызывающего тренера
// PUT /api/v1/week-config
func (h *WeekConfigHandler) PutWeekConfig(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req WeekConfigDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cfg, err := fromWeekConfigDTO(&req)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeBadRequest, "invalid week config", err.Error())
		return
	}

	res, err := h.trainerService.SaveWeekConfig(c.Request.Context(), userID, cfg)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, SaveResultDTO{
		GroupID:         res.GroupID,
		SeriesCount:     res.SeriesCount,
		Pruned:          res.Pruned,
		SessionsCreated: res.SessionsCreated,
	})
}

func (h *WeekConfigHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, weekconfig.ErrInvalidShift), errors.Is(err, weekconfig.ErrInvalidWeekday):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeBadRequest, "invalid week config", err.Error())
	case errors.Is(err, service.ErrNotTrainer):
		response.Forbidden(c, "user is not a trainer")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "user not found")
	default:
		h.logger.Error("Week config request failed", zap.Error(err))
		response.InternalError(c)
	}
}

// toWeekConfigDTO дни в порядке Пн..Вс
func toWeekConfigDTO(cfg *weekconfig.Config) WeekConfigDTO {
	out := WeekConfigDTO{ClassDuration: cfg.ClassDuration}

	for _, wd := range mondayFirst {
		row, err := cfg.Row(wd)
		if err != nil {
			continue
		}
		out.Days = append(out.Days, WeekDayDTO{
			Weekday:    row.Weekday,
			Enabled:    row.Enabled,
			SeriesName: row.SeriesName,
			ShiftStart: row.ShiftStart.String(),
			ShiftEnd:   row.ShiftEnd.String(),
			Selected:   nonNil(row.Selected()),
			Candidates: row.Candidates(cfg.ClassDuration),
			Orphans:    row.Orphans(cfg.ClassDuration),
		})
	}

	return out
}

var mondayFirst = []int{1, 2, 3, 4, 5, 6, 0}

// fromWeekConfigDTO собирает конфигурацию; время разбирается строго.
// Пустые shift_start/shift_end оставляют смену по умолчанию, не указанные дни выключены.
// Пустое series_name допустимо, непустое проверяется как в боте.
func fromWeekConfigDTO(req *WeekConfigDTO) (*weekconfig.Config, error) {
	if req.ClassDuration < weekconfig.MinClassDuration || req.ClassDuration > weekconfig.MaxClassDuration {
		return nil, fmt.Errorf("class_duration must be between %d and %d minutes",
			weekconfig.MinClassDuration, weekconfig.MaxClassDuration)
	}

	cfg := weekconfig.New(req.ClassDuration)
	seen := make(map[int]bool, len(req.Days))

	for _, d := range req.Days {
		if d.Weekday < 0 || d.Weekday >= weekconfig.DaysInWeek {
			return nil, fmt.Errorf("%w: %d", weekconfig.ErrInvalidWeekday, d.Weekday)
		}
		if seen[d.Weekday] {
			return nil, fmt.Errorf("duplicate weekday %d", d.Weekday)
		}
		seen[d.Weekday] = true

		row := weekconfig.NewRow(d.Weekday)
		row.Enabled = d.Enabled

		name, err := weekconfig.NormalizeSeriesName(d.SeriesName)
		if err != nil && !errors.Is(err, weekconfig.ErrEmptySeriesName) {
			return nil, fmt.Errorf("weekday %d series_name: %w", d.Weekday, err)
		}
		row.SeriesName = name

		start, end := row.ShiftStart, row.ShiftEnd
		if d.ShiftStart != "" {
			c, err := weekconfig.ParseClockStrict(d.ShiftStart)
			if err != nil {
				return nil, fmt.Errorf("weekday %d shift_start: %w", d.Weekday, err)
			}
			start = c
		}
		if d.ShiftEnd != "" {
			c, err := weekconfig.ParseClockStrict(d.ShiftEnd)
			if err != nil {
				return nil, fmt.Errorf("weekday %d shift_end: %w", d.Weekday, err)
			}
			end = c
		}
		row.SetShift(start, end)

		for _, label := range d.Selected {
			c, err := weekconfig.ParseClockStrict(label)
			if err != nil {
				return nil, fmt.Errorf("weekday %d selected: %w", d.Weekday, err)
			}
			row.SelectedStarts[c.String()] = struct{}{}
		}

		if err := cfg.UpdateRow(row); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
