package weekdialog

// Callback data диалога настройки недели
const (
	Prefix = "wc_"

	DayView        = "wc_day:"        // wc_day:1:0 (weekday:page)
	ToggleDay      = "wc_toggle_day:" // wc_toggle_day:1
	StartMenu      = "wc_start_menu:" // wc_start_menu:1
	SetStart       = "wc_start:"      // wc_start:1:540 (weekday:minute of day)
	EndMenu        = "wc_end_menu:"   // wc_end_menu:1
	SetEnd         = "wc_end:"        // wc_end:1:1080
	ToggleSlot     = "wc_slot:"       // wc_slot:1:540
	SelectAll      = "wc_all:"        // wc_all:1
	ClearSlots     = "wc_none:"       // wc_none:1
	PruneDay       = "wc_prune:"      // wc_prune:1
	EnterName      = "wc_name:"       // wc_name:1
	DurationMenu   = "wc_dur_menu"
	SetDuration    = "wc_dur:" // wc_dur:45
	CustomDuration = "wc_dur_custom"
	Back           = "wc_back"
	Save           = "wc_save"
	Cancel         = "wc_cancel"

	Noop = "noop"
)

// Сетка выбора начала и конца смены
const (
	PickerFrom = 5 * 60
	PickerTo   = 23*60 + 30
	PickerStep = 30
)

const (
	slotsPerPage     = 40
	slotsPerRow      = 4
	maxOrphanButtons = 12
)

// DurationOptions варианты длительности занятия в минутах
var DurationOptions = []int{15, 30, 45, 60, 75, 90, 120}
