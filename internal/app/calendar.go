package app

import (
	"context"
	"time"

	"github.com/aeterist/aeterist/internal/model"
	"github.com/aeterist/aeterist/internal/store"
)

// AddCalendarEvent inserts the event, or replaces the event already at
// its date. Moderation roles only. The upsert keeps the "exactly one
// event per date" invariant.
func (a *App) AddCalendarEvent(ctx context.Context, event model.CalendarEvent) error {
	return a.upsertCalendarEvent(ctx, event)
}

// UpdateCalendarEvent replaces the event at the matching date, or
// inserts it if the date is free. Moderation roles only.
func (a *App) UpdateCalendarEvent(ctx context.Context, event model.CalendarEvent) error {
	return a.upsertCalendarEvent(ctx, event)
}

func (a *App) upsertCalendarEvent(ctx context.Context, event model.CalendarEvent) error {
	if _, err := a.requireModerator(); err != nil {
		return err
	}
	if err := validateEventDate(event.Date); err != nil {
		return err
	}

	for i := range a.calendarEvents {
		if a.calendarEvents[i].Date == event.Date {
			a.calendarEvents[i] = event
			return a.persist(ctx, store.KeyCalendarEvents)
		}
	}
	a.calendarEvents = append(a.calendarEvents, event)
	return a.persist(ctx, store.KeyCalendarEvents)
}

// DeleteCalendarEvent removes the event at the given date. Moderation
// roles only.
func (a *App) DeleteCalendarEvent(ctx context.Context, date string) error {
	if _, err := a.requireModerator(); err != nil {
		return err
	}

	for i := range a.calendarEvents {
		if a.calendarEvents[i].Date == date {
			a.calendarEvents = append(a.calendarEvents[:i], a.calendarEvents[i+1:]...)
			return a.persist(ctx, store.KeyCalendarEvents)
		}
	}
	return errNotFound("calendar event", date)
}

// EventOn returns the event at the given date, if one exists.
func (a *App) EventOn(date string) (model.CalendarEvent, bool) {
	for _, event := range a.calendarEvents {
		if event.Date == date {
			return event, true
		}
	}
	return model.CalendarEvent{}, false
}

// validateEventDate requires the YYYY-MM-DD layout that keys the
// calendar collection.
func validateEventDate(date string) error {
	if _, err := time.Parse(model.CalendarDateLayout, date); err != nil {
		return &OpError{Code: ErrCodeInvalidInput, Message: "date must be YYYY-MM-DD", Subject: date}
	}
	return nil
}
