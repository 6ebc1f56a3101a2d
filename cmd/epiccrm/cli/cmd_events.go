package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/epic-events/epic-crm/internal/events"
	"github.com/epic-events/epic-crm/internal/shared"
)

func listEvents(ctx context.Context, sh *Shell, _ []string) error {
	list, err := sh.services.Events.List(ctx, events.ListFilter{})
	if err != nil {
		return err
	}
	return renderEvents(sh.out, list)
}

func viewEvent(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	event, err := sh.services.Events.Get(ctx, id)
	if err != nil {
		return err
	}
	return renderEvent(sh.out, event)
}

func filterEventsUnassigned(ctx context.Context, sh *Shell, _ []string) error {
	list, err := sh.services.Events.List(ctx, events.ListFilter{Unassigned: true})
	if err != nil {
		return err
	}
	return renderEvents(sh.out, list)
}

func filterEventsAssignedToMe(ctx context.Context, sh *Shell, _ []string) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	list, err := sh.services.Events.List(ctx, events.ListFilter{SupportContactID: &caller.UserID})
	if err != nil {
		return err
	}
	return renderEvents(sh.out, list)
}

func createEvent(ctx context.Context, sh *Shell, args []string) error {
	contractID, err := parseID(args[0], "contract_id")
	if err != nil {
		return err
	}
	start, err := parseTime(args[1], "event_date_start")
	if err != nil {
		return err
	}
	end, err := parseTime(args[2], "event_date_end")
	if err != nil {
		return err
	}
	attendees, err := strconv.Atoi(args[3])
	if err != nil {
		return shared.NewValidationError("attendees", "must be a whole number, got %q", args[3])
	}
	event, err := sh.services.Events.Create(ctx, events.CreateEventRequest{
		ContractID:     contractID,
		EventDateStart: start,
		EventDateEnd:   end,
		Attendees:      attendees,
		Location:       strings.Join(args[4:], " "),
	})
	if err != nil {
		return err
	}
	sh.printf("Created event #%d for contract #%d on %s.\n", event.ID, event.ContractID, formatTime(event.EventDateStart))
	return nil
}

func updateEvent(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	kv, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}
	if err := kv.only("event_date_start", "event_date_end", "location", "attendees", "notes"); err != nil {
		return err
	}
	start, err := kv.date("event_date_start")
	if err != nil {
		return err
	}
	end, err := kv.date("event_date_end")
	if err != nil {
		return err
	}
	attendees, err := kv.integer("attendees")
	if err != nil {
		return err
	}
	event, err := sh.services.Events.Update(ctx, id, events.UpdateEventRequest{
		EventDateStart: start,
		EventDateEnd:   end,
		Location:       kv.str("location"),
		Attendees:      attendees,
		Notes:          kv.str("notes"),
	})
	if err != nil {
		return err
	}
	sh.printf("Updated event #%d.\n", event.ID)
	return nil
}

func assignSupport(ctx context.Context, sh *Shell, args []string) error {
	eventID, err := parseID(args[0], "event_id")
	if err != nil {
		return err
	}
	userID, err := parseID(args[1], "user_id")
	if err != nil {
		return err
	}
	event, err := sh.services.Events.AssignSupport(ctx, eventID, userID)
	if err != nil {
		return err
	}
	sh.printf("Event #%d is now supported by %s.\n", event.ID, orDash(event.SupportContact))
	return nil
}

func deleteEvent(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	if err := sh.services.Events.Delete(ctx, id); err != nil {
		return err
	}
	sh.printf("Deleted event #%d.\n", id)
	return nil
}
