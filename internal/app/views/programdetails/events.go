package programdetails

import (
	"context"
	"fmt"
)

// EventType names a UI event posted by the page.
type EventType string

const (
	EventEnableEdit    EventType = "enable_edit"
	EventInput         EventType = "input"
	EventBlur          EventType = "blur"
	EventAddCourse     EventType = "add_course"
	EventSelectCourse  EventType = "select_course"
	EventRemoveCourse  EventType = "remove_course"
	EventRemoveRunMode EventType = "remove_run_mode"
)

// Event is one user interaction. Field names the attribute for edit events, Value carries
// input text or the selected course code id, Target is a row key.
type Event struct {
	Type   EventType
	Field  string
	Value  string
	Target string
}

// Handle applies ev and then runs one tick, so deferred list changes are visible in the
// next render.
func (v *View) Handle(ctx context.Context, ev Event) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	err := v.dispatch(ctx, ev)
	v.sched.tick()
	return err
}

func (v *View) dispatch(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventEnableEdit:
		return v.enableEdit(ev.Field)
	case EventInput:
		return v.input(ev.Field, ev.Value)
	case EventBlur:
		return v.blur(ctx, ev.Field)
	case EventAddCourse:
		return v.addCourse(ctx)
	case EventSelectCourse:
		return v.selectCourse(ctx, ev.Value)
	case EventRemoveCourse:
		return v.removeCourse(ctx, ev.Target)
	case EventRemoveRunMode:
		return v.removeRunMode(ctx, ev.Target)
	}
	return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
}
