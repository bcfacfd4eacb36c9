package common

import (
	"bytes"
	"image/color"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/gym_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/gym_scheduler/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault  FontStyle = "" // Regular
	FontStyleMedium   FontStyle = "medium"
	FontStyleItalic   FontStyle = "italic"
	FontStyleBold     FontStyle = "bold"
	FontStyleSemiBold FontStyle = "semi-bold"
)

// Константы размеров и отступов
const (
	imageWidth        = 1400
	imageHeight       = 900
	headerHeight      = 100
	leftLabelsWidth   = 80
	legendWidth       = 120
	dayPaddingX       = 8
	minBlockHeight    = 8.0
	blockBorderRadius = 6.0
	shadowOffset      = 3.0
	totalDaysInWeek   = 7
	hourPaddingTop    = 2
	hourPaddingBot    = 2
	defaultMinHour    = 0
	defaultMaxHour    = 23
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 27.0
	hourLabelFontSize  = 18.0
	blockTimeFontSize  = 17.0
	legendItemFontSize = 12.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 125}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{220, 220, 220, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	sessionScheduledColor = color.RGBA{133, 193, 85, 220}
	sessionCanceledColor  = color.RGBA{158, 158, 158, 200}
	sessionDefaultColor   = color.RGBA{220, 220, 220, 200}
	sessionTextColor      = color.RGBA{20, 24, 28, 230}
	sessionMutedTextColor = color.RGBA{70, 70, 70, 200} // Для отменённых
	sessionShadowColor    = color.RGBA{0, 0, 0, 20}

	legendTextColor = color.RGBA{90, 95, 100, 220}
	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// weekBounds содержит границы недели
type weekBounds struct {
	start time.Time
	end   time.Time
}

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// fontData возвращает TTF для стиля, шрифты Go содержат кириллицу
func fontData(style FontStyle) []byte {
	switch style {
	case FontStyleMedium, FontStyleSemiBold:
		return gomedium.TTF
	case FontStyleItalic:
		return goitalic.TTF
	case FontStyleBold:
		return gobold.TTF
	default:
		return goregular.TTF
	}
}

// loadFont загружает шрифт указанного стиля или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style ...FontStyle) {
	var fontStyle FontStyle = FontStyleDefault
	if len(style) > 0 {
		fontStyle = style[0]
	}

	fontsMu.Lock()
	cachedFont, ok := cachedFonts[fontStyle]
	if !ok {
		parsedFont, err := opentype.Parse(fontData(fontStyle))
		if err != nil {
			fontsMu.Unlock()
			dc.SetFontFace(basicfont.Face7x13)
			return
		}
		cachedFonts[fontStyle] = parsedFont
		cachedFont = parsedFont
	}
	fontsMu.Unlock()

	face, err := opentype.NewFace(cachedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// GenerateWeekImage рисует неделю (Пн-Вс), в которую попадает weekDate, с занятиями тренера.
// now нужен для подсветки сегодняшнего дня и линии текущего времени
func GenerateWeekImage(weekDate, now time.Time, sessions []*model.ClassSession) ([]byte, error) {
	week := normalizeToWeekBounds(weekDate)
	today := normalizeToDay(now)
	shouldHighlightToday := isTodayInWeek(today, week)

	sessionsByDay := groupSessionsByDay(sessions)
	hours := calculateHourRange(sessions)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, week)
	drawHourLabels(dc, hours, cellHeight)
	drawDaysAndSessions(dc, week, today, shouldHighlightToday, sessionsByDay, hours, dayWidth, dayHeight, cellHeight)
	drawCurrentTimeLine(dc, now, shouldHighlightToday, hours, cellHeight, dayWidth)
	drawLegend(dc, dayWidth)

	return encodeImage(dc)
}

// normalizeToWeekBounds нормализует дату к границам недели (Пн-Вс)
func normalizeToWeekBounds(date time.Time) weekBounds {
	normalized := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start := normalized.AddDate(0, 0, -daysSinceMonday)
	end := start.AddDate(0, 0, 6)

	return weekBounds{start: start, end: end}
}

// normalizeToDay нормализует время к началу дня
func normalizeToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isTodayInWeek проверяет, попадает ли сегодня в отображаемую неделю
func isTodayInWeek(today time.Time, week weekBounds) bool {
	return !today.Before(week.start) && !today.After(week.end)
}

// groupSessionsByDay группирует занятия по дням
func groupSessionsByDay(sessions []*model.ClassSession) map[string][]*model.ClassSession {
	byDay := make(map[string][]*model.ClassSession)
	for _, session := range sessions {
		dateKey := session.StartTime.Format("2006-01-02")
		byDay[dateKey] = append(byDay[dateKey], session)
	}
	return byDay
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(sessions []*model.ClassSession) hourRange {
	minHour := 24
	maxHour := 0

	for _, session := range sessions {
		startH := session.StartTime.Hour()
		endH := session.EndTime.Hour()
		if session.EndTime.Minute() > 0 {
			endH++
		}
		// Занятие через полночь рисуем до конца суток
		if !isSameDay(session.StartTime, session.EndTime) {
			endH = 24
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour + 1,
	}
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует заголовок с названием месяца
func drawHeader(dc *gg.Context, week weekBounds) {
	startMonth := week.start.Month()
	endMonth := week.end.Month()

	var title string
	if startMonth == endMonth {
		title = formatting.GetMonthName(startMonth) + " " + strconv.Itoa(week.start.Year())
	} else {
		title = formatting.GetMonthName(startMonth) + " - " + formatting.GetMonthName(endMonth) + " " + strconv.Itoa(week.end.Year())
	}

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, w/2, float64(headerHeight)/8+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, FontStyleMedium)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx < hours.total; hIdx++ {
		actualHour := hours.start + hIdx
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		timeLabel := formatHourLabel(actualHour)
		dc.DrawStringAnchored(timeLabel, float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDaysAndSessions рисует все дни недели с занятиями
func drawDaysAndSessions(dc *gg.Context, week weekBounds, today time.Time, shouldHighlightToday bool,
	sessionsByDay map[string][]*model.ClassSession, hours hourRange, dayWidth, dayHeight int, cellHeight float64) {

	currentDate := week.start

	for dayIndex := 0; dayIndex < totalDaysInWeek; dayIndex++ {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		isToday := shouldHighlightToday && isSameDay(currentDate, today)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex, isToday)
		drawDayHeader(dc, currentDate, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, session := range sessionsByDay[currentDate.Format("2006-01-02")] {
			drawSession(dc, session, x, y, dayWidth, hours, cellHeight)
		}

		currentDate = currentDate.AddDate(0, 0, 1)
	}
}

// isSameDay проверяет, являются ли две даты одним днем
func isSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	if isToday {
		dc.SetColor(todayBgColor)
	} else if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует название дня недели и дату
func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	weekdayStr := formatting.GetWeekdayShortName(int(date.Weekday()))
	dateStr := date.Format("02.01")

	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(dateStr, x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(weekdayStr, x+float64(dayWidth)/2, y, 0.5, -0.2)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawSession рисует одно занятие
func drawSession(dc *gg.Context, session *model.ClassSession, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour := float64(session.StartTime.Hour()) + float64(session.StartTime.Minute())/60.0
	endHour := float64(session.EndTime.Hour()) + float64(session.EndTime.Minute())/60.0
	if !isSameDay(session.StartTime, session.EndTime) {
		endHour = float64(hours.end + 1)
	}

	sessionY := y + (startHour-float64(hours.start))*cellHeight
	sessionHeight := (endHour - startHour) * cellHeight
	if sessionHeight < minBlockHeight {
		sessionHeight = minBlockHeight
	}

	fillColor := getSessionColor(session.Status)
	sessionWidth := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(sessionShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, sessionY+2+shadowOffset, sessionWidth, sessionHeight-4, blockBorderRadius)
	dc.Fill()

	// Основной блок
	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), sessionY+2, sessionWidth, sessionHeight-4, blockBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), sessionY+2, sessionWidth, sessionHeight-4, blockBorderRadius)
	dc.Stroke()

	textColor := sessionTextColor
	if session.Status == model.SessionStatusCanceled {
		textColor = sessionMutedTextColor
	}

	// Текст времени
	loadFont(dc, blockTimeFontSize, FontStyleMedium)
	dc.SetColor(textColor)
	txtX := x + float64(dayPaddingX) + 8
	txtY := sessionY + 8 + 10
	dc.DrawStringAnchored(session.StartTime.Format("15:04"), txtX, txtY, 0, 0)

	// Название серии, если есть место
	name := session.SeriesName
	if name != "" && sessionHeight > 25 {
		maxLen := 14
		if utf8.RuneCountInString(name) > maxLen {
			name = string([]rune(name)[:maxLen-1]) + "…"
		}
		loadFont(dc, blockTimeFontSize-2, FontStyleDefault)
		dc.DrawStringAnchored(name, txtX, txtY+16, 0, 0)
	}
}

// getSessionColor возвращает цвет занятия по его статусу
func getSessionColor(status model.SessionStatus) color.RGBA {
	switch status {
	case model.SessionStatusScheduled:
		return sessionScheduledColor
	case model.SessionStatusCanceled:
		return sessionCanceledColor
	default:
		return sessionDefaultColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawCurrentTimeLine рисует красную линию текущего времени
func drawCurrentTimeLine(dc *gg.Context, now time.Time, shouldHighlight bool, hours hourRange, cellHeight float64, dayWidth int) {
	if !shouldHighlight {
		return
	}

	currentHour := float64(now.Hour()) + float64(now.Minute())/60.0

	if currentHour < float64(hours.start) || currentHour > float64(hours.end) {
		return
	}

	currentTimeY := float64(headerHeight) + (currentHour-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), currentTimeY, float64(leftLabelsWidth+totalDaysInWeek*dayWidth), currentTimeY)
	dc.Stroke()
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, dayWidth int) {
	legendX := float64(leftLabelsWidth + totalDaysInWeek*dayWidth + 10)
	legendY := float64(imageHeight) - 100.0

	dc.SetColor(legendTextColor)

	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{"Занятие", sessionScheduledColor},
		{"Отменено", sessionCanceledColor},
	}

	boxW := 20.0
	boxH := 14.0
	liX := legendX
	liY := legendY + 22

	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// формат числа с двумя цифрами
func formatTwoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func formatHourLabel(h int) string {
	return formatTwoDigits(h) + ":00"
}
