package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/business-nexus/nexus/internal/store"
)

const (
	slotStart = "2026-03-02T10:00:00.000Z"
	slotEnd   = "2026-03-02T11:00:00.000Z"
)

func newTestService() *Service {
	return NewService(store.NewMemory(), nil)
}

func createPendingRequest(t *testing.T, svc *Service, start, end string) MeetingRequest {
	t.Helper()
	req, err := svc.CreateMeetingRequest(context.Background(), CreateRequestInput{
		FromUserID: "founder",
		ToUserID:   "investor",
		Title:      "Pitch",
		Start:      start,
		End:        end,
		Message:    "Looking forward",
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if req.Status != RequestPending {
		t.Fatalf("new request not pending: %s", req.Status)
	}
	return req
}

func TestAcceptCreatesMeetingAndRetractsExactSlot(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	slot, err := svc.CreateAvailabilitySlot(ctx, "investor", "Open hour", slotStart, slotEnd)
	if err != nil {
		t.Fatalf("create slot: %v", err)
	}
	req := createPendingRequest(t, svc, slotStart, slotEnd)

	result, err := svc.RespondToMeetingRequest(ctx, req.ID, RequestAccepted)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if result.Request == nil || result.Meeting == nil {
		t.Fatalf("expected request and meeting, got %+v", result)
	}
	if result.Request.Status != RequestAccepted {
		t.Fatalf("request not accepted: %s", result.Request.Status)
	}
	if result.Request.RespondedAt == nil {
		t.Fatal("respondedAt not stamped")
	}
	if result.Meeting.OrganizerID != "founder" || result.Meeting.AttendeeID != "investor" {
		t.Fatalf("meeting parties wrong: %+v", result.Meeting)
	}
	if result.Meeting.RequestID != req.ID {
		t.Fatalf("meeting missing request back-reference: %+v", result.Meeting)
	}

	slots, err := svc.AvailabilitySlots(ctx, "investor")
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	for _, s := range slots {
		if s.ID == slot.ID {
			t.Fatal("matching slot not retracted")
		}
	}

	meetings, err := svc.MeetingsForUser(ctx, "investor")
	if err != nil {
		t.Fatalf("meetings: %v", err)
	}
	if len(meetings) != 1 {
		t.Fatalf("expected exactly one meeting, got %d", len(meetings))
	}
}

func TestAcceptLeavesNonMatchingSlotsIntact(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// Superset window: contains the requested time but does not match exactly.
	if _, err := svc.CreateAvailabilitySlot(ctx, "investor", "All morning", "2026-03-02T09:00:00.000Z", "2026-03-02T12:00:00.000Z"); err != nil {
		t.Fatalf("create slot: %v", err)
	}
	req := createPendingRequest(t, svc, slotStart, slotEnd)

	result, err := svc.RespondToMeetingRequest(ctx, req.ID, RequestAccepted)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if result.Meeting == nil {
		t.Fatal("meeting not created despite no matching slot")
	}

	slots, err := svc.AvailabilitySlots(ctx, "investor")
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("non-matching slot was removed, %d slots left", len(slots))
	}
}

func TestDeclineHasNoSideEffects(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateAvailabilitySlot(ctx, "investor", "Open hour", slotStart, slotEnd); err != nil {
		t.Fatalf("create slot: %v", err)
	}
	req := createPendingRequest(t, svc, slotStart, slotEnd)

	result, err := svc.RespondToMeetingRequest(ctx, req.ID, RequestDeclined)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if result.Request == nil || result.Request.Status != RequestDeclined {
		t.Fatalf("request not declined: %+v", result.Request)
	}
	if result.Meeting != nil {
		t.Fatal("decline created a meeting")
	}

	slots, err := svc.AvailabilitySlots(ctx, "investor")
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatal("decline touched availability")
	}

	meetings, err := svc.MeetingsForUser(ctx, "investor")
	if err != nil {
		t.Fatalf("meetings: %v", err)
	}
	if len(meetings) != 0 {
		t.Fatal("decline touched meetings")
	}
}

func TestRespondToSettledRequestIsNoOp(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	req := createPendingRequest(t, svc, slotStart, slotEnd)
	if _, err := svc.RespondToMeetingRequest(ctx, req.ID, RequestDeclined); err != nil {
		t.Fatalf("first respond: %v", err)
	}

	result, err := svc.RespondToMeetingRequest(ctx, req.ID, RequestAccepted)
	if err != nil {
		t.Fatalf("second respond: %v", err)
	}
	if result.Request == nil {
		t.Fatal("settled request not returned")
	}
	if result.Request.Status != RequestDeclined {
		t.Fatalf("terminal state was overwritten: %s", result.Request.Status)
	}
	if result.Meeting != nil {
		t.Fatal("meeting spawned out of a terminal state")
	}

	meetings, err := svc.MeetingsForUser(ctx, "investor")
	if err != nil {
		t.Fatalf("meetings: %v", err)
	}
	if len(meetings) != 0 {
		t.Fatal("settled request produced a meeting")
	}
}

func TestRespondToUnknownRequest(t *testing.T) {
	svc := newTestService()

	result, err := svc.RespondToMeetingRequest(context.Background(), "mreq_missing", RequestAccepted)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if result.Request != nil || result.Meeting != nil {
		t.Fatalf("expected empty result for unknown id, got %+v", result)
	}
}

func TestAvailabilitySortedByStart(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateAvailabilitySlot(ctx, "investor", "Late", "2026-03-03T15:00:00.000Z", "2026-03-03T16:00:00.000Z"); err != nil {
		t.Fatalf("create slot: %v", err)
	}
	if _, err := svc.CreateAvailabilitySlot(ctx, "investor", "Early", "2026-03-03T08:00:00.000Z", "2026-03-03T09:00:00.000Z"); err != nil {
		t.Fatalf("create slot: %v", err)
	}
	if _, err := svc.CreateAvailabilitySlot(ctx, "other", "Not mine", "2026-03-03T07:00:00.000Z", "2026-03-03T08:00:00.000Z"); err != nil {
		t.Fatalf("create slot: %v", err)
	}

	slots, err := svc.AvailabilitySlots(ctx, "investor")
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots for investor, got %d", len(slots))
	}
	if slots[0].Title != "Early" || slots[1].Title != "Late" {
		t.Fatalf("slots not in ascending start order: %v", slots)
	}
}

func TestUpsertAvailabilitySlot(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	slot, err := svc.UpsertAvailabilitySlot(ctx, AvailabilitySlot{
		UserID: "investor",
		Title:  "Draft window",
		Start:  slotStart,
		End:    slotEnd,
	})
	if err != nil {
		t.Fatalf("upsert insert: %v", err)
	}
	if slot.ID == "" {
		t.Fatal("upsert did not assign an id")
	}

	slot.Title = "Final window"
	if _, err := svc.UpsertAvailabilitySlot(ctx, slot); err != nil {
		t.Fatalf("upsert replace: %v", err)
	}

	slots, err := svc.AvailabilitySlots(ctx, "investor")
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots) != 1 || slots[0].Title != "Final window" {
		t.Fatalf("replace did not happen in place: %v", slots)
	}
}

func TestDeleteAvailabilitySlot(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	slot, err := svc.CreateAvailabilitySlot(ctx, "investor", "Open hour", slotStart, slotEnd)
	if err != nil {
		t.Fatalf("create slot: %v", err)
	}
	if err := svc.DeleteAvailabilitySlot(ctx, slot.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	slots, err := svc.AvailabilitySlots(ctx, "investor")
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("slot still present after delete: %v", slots)
	}
}

func TestMeetingRequestsNewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first := createPendingRequest(t, svc, slotStart, slotEnd)
	time.Sleep(2 * time.Millisecond)
	second := createPendingRequest(t, svc, "2026-03-04T10:00:00.000Z", "2026-03-04T11:00:00.000Z")

	requests, err := svc.MeetingRequestsForUser(ctx, "investor")
	if err != nil {
		t.Fatalf("requests: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requests))
	}
	if requests[0].ID != second.ID || requests[1].ID != first.ID {
		t.Fatal("requests not sorted newest first")
	}
}
