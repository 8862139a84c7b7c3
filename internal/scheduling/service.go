package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/business-nexus/nexus/internal/identifier"
	"github.com/business-nexus/nexus/internal/notification"
	"github.com/business-nexus/nexus/internal/store"
)

const (
	availabilityKey = "scheduling:availability"
	requestsKey     = "scheduling:requests"
	meetingsKey     = "scheduling:meetings"
)

// Service owns availability slots, meeting requests and confirmed meetings.
type Service struct {
	store    store.Store
	notifier notification.Notifier
}

// NewService builds a scheduling service instance.
func NewService(st store.Store, notifier notification.Notifier) *Service {
	return &Service{store: st, notifier: notifier}
}

// CreateAvailabilitySlot declares an open time window on the owner's calendar.
// Overlapping slots are permitted and become simultaneously bookable.
func (s *Service) CreateAvailabilitySlot(ctx context.Context, userID, title, start, end string) (AvailabilitySlot, error) {
	slots, err := s.readSlots(ctx)
	if err != nil {
		return AvailabilitySlot{}, err
	}
	slot := AvailabilitySlot{
		ID:     identifier.New("avail"),
		UserID: userID,
		Title:  title,
		Start:  start,
		End:    end,
	}
	slots = append(slots, slot)
	if err := s.store.Write(ctx, availabilityKey, slots); err != nil {
		return AvailabilitySlot{}, err
	}
	return slot, nil
}

// UpsertAvailabilitySlot inserts the slot, or replaces the one with a matching
// id. An empty id gets generated.
func (s *Service) UpsertAvailabilitySlot(ctx context.Context, slot AvailabilitySlot) (AvailabilitySlot, error) {
	slots, err := s.readSlots(ctx)
	if err != nil {
		return AvailabilitySlot{}, err
	}
	if slot.ID == "" {
		slot.ID = identifier.New("avail")
	}
	replaced := false
	for i := range slots {
		if slots[i].ID == slot.ID {
			slots[i] = slot
			replaced = true
			break
		}
	}
	if !replaced {
		slots = append(slots, slot)
	}
	if err := s.store.Write(ctx, availabilityKey, slots); err != nil {
		return AvailabilitySlot{}, err
	}
	return slot, nil
}

// DeleteAvailabilitySlot removes the slot unconditionally; a pending request
// referencing its window does not block removal.
func (s *Service) DeleteAvailabilitySlot(ctx context.Context, slotID string) error {
	slots, err := s.readSlots(ctx)
	if err != nil {
		return err
	}
	kept := slots[:0:0]
	for _, slot := range slots {
		if slot.ID != slotID {
			kept = append(kept, slot)
		}
	}
	return s.store.Write(ctx, availabilityKey, kept)
}

// AvailabilitySlots returns the owner's slots ordered by ascending start time.
func (s *Service) AvailabilitySlots(ctx context.Context, userID string) ([]AvailabilitySlot, error) {
	slots, err := s.readSlots(ctx)
	if err != nil {
		return nil, err
	}
	mine := slots[:0:0]
	for _, slot := range slots {
		if slot.UserID == userID {
			mine = append(mine, slot)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return startTime(mine[i].Start).Before(startTime(mine[j].Start))
	})
	return mine, nil
}

// AllAvailabilitySlots returns every declared slot across users.
func (s *Service) AllAvailabilitySlots(ctx context.Context) ([]AvailabilitySlot, error) {
	return s.readSlots(ctx)
}

// CreateRequestInput captures the data needed to propose a meeting.
type CreateRequestInput struct {
	FromUserID string
	ToUserID   string
	Title      string
	Start      string
	End        string
	Message    string
}

// CreateMeetingRequest records a pending proposal. No check is made that the
// target owns a matching slot; acceptance reconciles availability best-effort.
func (s *Service) CreateMeetingRequest(ctx context.Context, input CreateRequestInput) (MeetingRequest, error) {
	requests, err := s.readRequests(ctx)
	if err != nil {
		return MeetingRequest{}, err
	}
	req := MeetingRequest{
		ID:         identifier.New("mreq"),
		FromUserID: input.FromUserID,
		ToUserID:   input.ToUserID,
		Title:      input.Title,
		Message:    input.Message,
		Start:      input.Start,
		End:        input.End,
		Status:     RequestPending,
		CreatedAt:  time.Now().UTC(),
	}
	requests = append(requests, req)
	if err := s.store.Write(ctx, requestsKey, requests); err != nil {
		return MeetingRequest{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindMeetingRequest,
			Destination: req.ToUserID,
			Body:        fmt.Sprintf("%s requested a meeting: %s", req.FromUserID, req.Title),
		})
	}
	return req, nil
}

// MeetingRequestsForUser returns requests the user sent or received, newest
// first.
func (s *Service) MeetingRequestsForUser(ctx context.Context, userID string) ([]MeetingRequest, error) {
	requests, err := s.readRequests(ctx)
	if err != nil {
		return nil, err
	}
	mine := requests[:0:0]
	for _, req := range requests {
		if req.FromUserID == userID || req.ToUserID == userID {
			mine = append(mine, req)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	return mine, nil
}

// AllMeetingRequests returns every request across users.
func (s *Service) AllMeetingRequests(ctx context.Context) ([]MeetingRequest, error) {
	return s.readRequests(ctx)
}

// MeetingsForUser returns meetings the user organizes or attends, ordered by
// ascending start time.
func (s *Service) MeetingsForUser(ctx context.Context, userID string) ([]Meeting, error) {
	meetings, err := s.readMeetings(ctx)
	if err != nil {
		return nil, err
	}
	mine := meetings[:0:0]
	for _, m := range meetings {
		if m.OrganizerID == userID || m.AttendeeID == userID {
			mine = append(mine, m)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return startTime(mine[i].Start).Before(startTime(mine[j].Start))
	})
	return mine, nil
}

// AllMeetings returns every confirmed meeting across users.
func (s *Service) AllMeetings(ctx context.Context) ([]Meeting, error) {
	return s.readMeetings(ctx)
}

// RespondResult carries the updated request and, on acceptance, the meeting it
// spawned. Both are nil when the request id is unknown.
type RespondResult struct {
	Request *MeetingRequest
	Meeting *Meeting
}

// RespondToMeetingRequest settles a pending request. Accepting stamps the
// request, creates the meeting and retracts the target's availability slot
// whose start and end exactly equal the request's, all in one batch write.
// Declining only stamps the request. A request already in a terminal state is
// returned unchanged with no side effects; an unknown id yields an empty
// result. Neither case raises an error.
func (s *Service) RespondToMeetingRequest(ctx context.Context, requestID string, response RequestStatus) (RespondResult, error) {
	if response != RequestAccepted && response != RequestDeclined {
		return RespondResult{}, fmt.Errorf("invalid response %q", response)
	}

	requests, err := s.readRequests(ctx)
	if err != nil {
		return RespondResult{}, err
	}
	idx := -1
	for i := range requests {
		if requests[i].ID == requestID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return RespondResult{}, nil
	}
	if requests[idx].Status != RequestPending {
		settled := requests[idx]
		return RespondResult{Request: &settled}, nil
	}

	now := time.Now().UTC()
	requests[idx].Status = response
	requests[idx].RespondedAt = &now
	updated := requests[idx]

	if response == RequestDeclined {
		if err := s.store.Write(ctx, requestsKey, requests); err != nil {
			return RespondResult{}, err
		}
		return RespondResult{Request: &updated}, nil
	}

	meetings, err := s.readMeetings(ctx)
	if err != nil {
		return RespondResult{}, err
	}
	meeting := Meeting{
		ID:          identifier.New("meet"),
		OrganizerID: updated.FromUserID,
		AttendeeID:  updated.ToUserID,
		Title:       updated.Title,
		Start:       updated.Start,
		End:         updated.End,
		CreatedAt:   now,
		RequestID:   updated.ID,
	}
	meetings = append(meetings, meeting)

	slots, err := s.readSlots(ctx)
	if err != nil {
		return RespondResult{}, err
	}
	// Retract at most one slot: the target's window matching the request
	// exactly. A slot spanning a superset of the window is left in place.
	for i, slot := range slots {
		if slot.UserID == updated.ToUserID && slot.Start == updated.Start && slot.End == updated.End {
			slots = append(slots[:i], slots[i+1:]...)
			break
		}
	}

	err = s.store.WriteAll(ctx,
		store.Entry{Key: requestsKey, Value: requests},
		store.Entry{Key: meetingsKey, Value: meetings},
		store.Entry{Key: availabilityKey, Value: slots},
	)
	if err != nil {
		return RespondResult{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindMeetingConfirmed,
			Destination: updated.FromUserID,
			Body:        fmt.Sprintf("%s accepted your meeting: %s", updated.ToUserID, updated.Title),
		})
	}
	return RespondResult{Request: &updated, Meeting: &meeting}, nil
}

func (s *Service) readSlots(ctx context.Context) ([]AvailabilitySlot, error) {
	var slots []AvailabilitySlot
	if err := s.store.Read(ctx, availabilityKey, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *Service) readRequests(ctx context.Context) ([]MeetingRequest, error) {
	var requests []MeetingRequest
	if err := s.store.Read(ctx, requestsKey, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *Service) readMeetings(ctx context.Context) ([]Meeting, error) {
	var meetings []Meeting
	if err := s.store.Read(ctx, meetingsKey, &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}
