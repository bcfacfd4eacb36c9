package weekconfig

// ComputeSlots возвращает начала занятий, которые целиком помещаются в смену.
// При start >= end или duration <= 0 результат пустой.
func ComputeSlots(start, end Clock, duration int) []Clock {
	if start >= end || duration <= 0 || duration > int(end-start) {
		return nil
	}

	var slots []Clock
	for cur := int(start); cur+duration <= int(end); cur += duration {
		slots = append(slots, Clock(cur))
	}

	return slots
}

// ComputeSlotLabels то же что ComputeSlots, но в виде "HH:mm"
func ComputeSlotLabels(start, end Clock, duration int) []string {
	slots := ComputeSlots(start, end, duration)
	if len(slots) == 0 {
		return nil
	}

	labels := make([]string, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, s.String())
	}
	return labels
}
