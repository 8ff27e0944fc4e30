package calendar

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventscheduler/internal/domain"
)

func TestICSRenderer_Render(t *testing.T) {
	at := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	desc := "Quarterly planning"
	name := "Alice"
	r := &icsRenderer{duration: DefaultDuration, now: func() time.Time { return at }}

	event := &domain.Event{
		ID:            "ev-1",
		UserID:        "user-1",
		Title:         "Planning",
		Description:   &desc,
		EventDatetime: at,
		Status:        domain.EventStatusUpcoming,
		UpdatedAt:     at,
	}
	organizer := &domain.Profile{ID: "user-1", Email: "alice@example.com", FullName: &name}
	participants := []*domain.EventParticipant{
		{ID: "p-1", EventID: "ev-1", Email: "bob@example.com", ResponseStatus: domain.ResponseAttending},
		{ID: "p-2", EventID: "ev-1", Email: "carol@example.com", ResponseStatus: domain.ResponsePending},
	}

	out, err := r.Render(event, organizer, participants)
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(out)).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)
	ve := events[0]

	summary, err := ve.Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Planning", summary)

	uid, err := ve.Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "ev-1@eventscheduler", uid)

	start, err := ve.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.True(t, start.Equal(at))

	assert.Nil(t, ve.Props.Get(ical.PropLocation))

	org := ve.Props.Get(ical.PropOrganizer)
	require.NotNil(t, org)
	assert.Equal(t, "mailto:alice@example.com", org.Value)
	assert.Equal(t, "Alice", org.Params.Get("CN"))

	attendees := ve.Props.Values(ical.PropAttendee)
	require.Len(t, attendees, 2)
	assert.Equal(t, "mailto:bob@example.com", attendees[0].Value)
	assert.Equal(t, "ACCEPTED", attendees[0].Params.Get("PARTSTAT"))
	assert.Equal(t, "NEEDS-ACTION", attendees[1].Params.Get("PARTSTAT"))
}
