package calendar

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"eventscheduler/internal/domain"
)

const productID = "-//eventscheduler//EN"

// DefaultDuration is used for DTEND since events only carry a start time.
const DefaultDuration = time.Hour

var partStat = map[domain.ResponseStatus]string{
	domain.ResponsePending:   "NEEDS-ACTION",
	domain.ResponseAttending: "ACCEPTED",
	domain.ResponseMaybe:     "TENTATIVE",
	domain.ResponseDeclined:  "DECLINED",
}

type icsRenderer struct {
	duration time.Duration
	now      func() time.Time
}

// NewICSRenderer returns a CalendarRenderer producing a single-VEVENT iCalendar document.
func NewICSRenderer() domain.CalendarRenderer {
	return &icsRenderer{duration: DefaultDuration, now: time.Now}
}

func (r *icsRenderer) Render(event *domain.Event, organizer *domain.Profile, participants []*domain.EventParticipant) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Children = append(cal.Children, r.toVEvent(event, organizer, participants))

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *icsRenderer) toVEvent(event *domain.Event, organizer *domain.Profile, participants []*domain.EventParticipant) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, event.ID+"@eventscheduler")
	ve.Props.SetText(ical.PropSummary, event.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, r.now().UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, event.EventDatetime.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, event.EventDatetime.Add(r.duration).UTC())
	ve.Props.SetDateTime(ical.PropLastModified, event.UpdatedAt.UTC())
	if event.IsPublic {
		ve.Props.SetText("CLASS", "PUBLIC")
	} else {
		ve.Props.SetText("CLASS", "PRIVATE")
	}

	if event.Description != nil && *event.Description != "" {
		ve.Props.SetText(ical.PropDescription, *event.Description)
	}
	if event.Location != nil && *event.Location != "" {
		ve.Props.SetText(ical.PropLocation, *event.Location)
	}
	if organizer != nil {
		p := ical.NewProp(ical.PropOrganizer)
		p.SetText(fmt.Sprintf("mailto:%s", organizer.Email))
		if organizer.FullName != nil {
			p.Params.Set("CN", *organizer.FullName)
		}
		ve.Props.Add(p)
	}
	for _, participant := range participants {
		p := ical.NewProp(ical.PropAttendee)
		p.SetText(fmt.Sprintf("mailto:%s", participant.Email))
		p.Params.Set("PARTSTAT", partStat[participant.ResponseStatus])
		ve.Props.Add(p)
	}
	return ve
}
