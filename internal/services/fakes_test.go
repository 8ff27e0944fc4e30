package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"eventscheduler/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, every method returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByOwner(ctx context.Context, ownerID string, filter domain.EventFilter) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if e.UserID != ownerID {
			continue
		}
		if filter.PublicOnly && !e.IsPublic {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Location != "" && (e.Location == nil || !strings.Contains(strings.ToLower(*e.Location), strings.ToLower(filter.Location))) {
			continue
		}
		if filter.StartDate != nil && e.EventDatetime.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.EventDatetime.After(*filter.EndDate) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDatetime.Before(out[j].EventDatetime) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeEventRepo) CountByOwner(ctx context.Context, ownerID string, filter domain.EventFilter) (int, error) {
	events, err := f.ListByOwner(ctx, ownerID, filter)
	return len(events), err
}

func (f *fakeEventRepo) IsOwnedBy(ctx context.Context, id, ownerID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	e, ok := f.byID[id]
	return ok && e.UserID == ownerID, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, ownerID, id string, u domain.EventUpdate) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok || e.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	if u.Title != nil {
		e.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		e.Description = u.Description
	}
	if u.Location != nil {
		e.Location = u.Location
	}
	if u.EventDatetime != nil {
		e.EventDatetime = *u.EventDatetime
	}
	if u.Status != nil {
		e.Status = *u.Status
	}
	if u.IsPublic != nil {
		e.IsPublic = *u.IsPublic
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	e, ok := f.byID[id]
	if !ok || e.UserID != ownerID {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

// fakeParticipantRepo is an in-memory EventParticipantRepository. It reads events for joins.
type fakeParticipantRepo struct {
	events    *fakeEventRepo
	rows      []*domain.EventParticipant
	nextID    int
	createErr error
}

func newFakeParticipantRepo(events *fakeEventRepo) *fakeParticipantRepo {
	return &fakeParticipantRepo{events: events, nextID: 1}
}

func (f *fakeParticipantRepo) Create(ctx context.Context, p *domain.EventParticipant) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, r := range f.rows {
		if r.EventID == p.EventID && strings.EqualFold(r.Email, p.Email) {
			return domain.ErrAlreadyInvited
		}
	}
	p.ID = fmt.Sprintf("part-%d", f.nextID)
	f.nextID++
	f.rows = append(f.rows, p)
	return nil
}

func (f *fakeParticipantRepo) Exists(ctx context.Context, eventID, email string) (bool, error) {
	for _, r := range f.rows {
		if r.EventID == eventID && strings.EqualFold(r.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeParticipantRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventParticipant, error) {
	out := make([]*domain.EventParticipant, 0)
	for _, r := range f.rows {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) ListByEmail(ctx context.Context, email string) ([]*domain.Invitation, error) {
	out := make([]*domain.Invitation, 0)
	for _, r := range f.rows {
		if !strings.EqualFold(r.Email, email) {
			continue
		}
		out = append(out, &domain.Invitation{Participant: r, Event: f.events.byID[r.EventID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Participant.CreatedAt.After(out[j].Participant.CreatedAt)
	})
	return out, nil
}

func (f *fakeParticipantRepo) CountByEmail(ctx context.Context, email string, status domain.ResponseStatus) (int, error) {
	n := 0
	for _, r := range f.rows {
		if strings.EqualFold(r.Email, email) && r.ResponseStatus == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeParticipantRepo) UpdateResponse(ctx context.Context, id string, caller domain.Identity, status domain.ResponseStatus) (*domain.EventParticipant, error) {
	for _, r := range f.rows {
		if r.ID != id {
			continue
		}
		if (r.UserID != nil && *r.UserID == caller.UserID) || strings.EqualFold(r.Email, caller.Email) {
			r.ResponseStatus = status
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) Delete(ctx context.Context, ownerID, eventID, id string) (bool, error) {
	e, ok := f.events.byID[eventID]
	if !ok || e.UserID != ownerID {
		return false, nil
	}
	for i, r := range f.rows {
		if r.ID == id && r.EventID == eventID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeProfileRepo is an in-memory ProfileRepository.
type fakeProfileRepo struct {
	byID   map[string]*domain.Profile
	nextID int
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	f := &fakeProfileRepo{byID: make(map[string]*domain.Profile), nextID: 1}
	for _, p := range profiles {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, p.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	p.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	for _, p := range f.byID {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) Update(ctx context.Context, id string, u domain.ProfileUpdate) (*domain.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if u.FullName != nil {
		p.FullName = u.FullName
	}
	if u.AvatarURL != nil {
		p.AvatarURL = u.AvatarURL
	}
	return p, nil
}

// fakeGenerator records the last prompt and returns a canned reply.
type fakeGenerator struct {
	reply string
	err   error
	calls int
	last  domain.Prompt
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	f.calls++
	f.last = prompt
	return f.reply, f.err
}

type fakeCalendar struct {
	organizer    *domain.Profile
	participants []*domain.EventParticipant
}

func (f *fakeCalendar) Render(event *domain.Event, organizer *domain.Profile, participants []*domain.EventParticipant) ([]byte, error) {
	f.organizer = organizer
	f.participants = participants
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), nil
}

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func ptr[T any](v T) *T { return &v }

// seedEvent stores an event owned by ownerID at testNow+offset.
func seedEvent(repo *fakeEventRepo, ownerID, title string, offset time.Duration, public bool) *domain.Event {
	e := domain.NewEvent(ownerID, domain.EventInput{Title: title, EventDatetime: testNow.Add(offset), IsPublic: public}, testNow)
	_ = repo.Create(context.Background(), e)
	return e
}
