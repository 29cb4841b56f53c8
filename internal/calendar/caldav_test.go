package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
)

func TestSeriesToICal(t *testing.T) {
	req := SeriesRequest{
		Title:       "Algebra",
		Start:       time.Date(2025, 9, 8, 9, 0, 0, 0, time.UTC),
		End:         time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC),
		Until:       time.Date(2025, 12, 19, 23, 59, 59, 0, time.UTC),
		Location:    "101",
		Description: "Scheduled class for Algebra",
	}

	cal, uid, err := seriesToICal(req)
	if err != nil {
		t.Fatalf("seriesToICal() returned an error: %v", err)
	}
	if uid == "" {
		t.Error("Expected a non-empty UID")
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		t.Fatalf("Failed to encode calendar: %v", err)
	}
	encoded := buf.String()

	for _, want := range []string{
		"SUMMARY:Algebra",
		"LOCATION:101",
		"DESCRIPTION:Scheduled class for Algebra",
		"RRULE:FREQ=WEEKLY;UNTIL=20251219T235959Z",
	} {
		if !strings.Contains(encoded, want) {
			t.Errorf("Encoded calendar missing %q:\n%s", want, encoded)
		}
	}
}

func TestEventFromICal(t *testing.T) {
	req := SeriesRequest{
		Title: "Lab",
		Start: time.Date(2025, 9, 9, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 9, 9, 16, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 12, 19, 23, 59, 59, 0, time.UTC),
	}

	cal, _, err := seriesToICal(req)
	if err != nil {
		t.Fatalf("seriesToICal() returned an error: %v", err)
	}

	event, err := eventFromICal("/calendars/classes/lab.ics", cal)
	if err != nil {
		t.Fatalf("eventFromICal() returned an error: %v", err)
	}

	if event.Title != "Lab" {
		t.Errorf("Expected title 'Lab', got %q", event.Title)
	}
	// A VEVENT with an RRULE is its own series.
	if event.SeriesID != "/calendars/classes/lab.ics" {
		t.Errorf("Expected the object path as series id, got %q", event.SeriesID)
	}
	if !event.Start.Equal(req.Start) {
		t.Errorf("Expected start %v, got %v", req.Start, event.Start)
	}
}

func TestParseCalDAVResponse(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="utf-8"?>
<d:multistatus xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav">
  <d:response>
    <d:href>/calendars/classes/algebra.ics</d:href>
    <d:propstat>
      <d:prop>
        <c:calendar-data>BEGIN:VCALENDAR
VERSION:2.0
BEGIN:VEVENT
UID:1@classcal
SUMMARY:Algebra
DTSTART:20250908T090000Z
DTEND:20250908T100000Z
END:VEVENT
END:VCALENDAR</c:calendar-data>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
  <d:response>
    <d:href>/calendars/classes/</d:href>
    <d:propstat>
      <d:prop/>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
</d:multistatus>`)

	objects, err := parseCalDAVResponse(body)
	if err != nil {
		t.Fatalf("parseCalDAVResponse() returned an error: %v", err)
	}

	// The collection itself carries no calendar-data and is skipped.
	if len(objects) != 1 {
		t.Fatalf("Expected 1 object, got %d", len(objects))
	}
	if objects[0].href != "/calendars/classes/algebra.ics" {
		t.Errorf("Unexpected href: %q", objects[0].href)
	}
	if !strings.Contains(objects[0].data, "SUMMARY:Algebra") {
		t.Errorf("Unexpected calendar data: %q", objects[0].data)
	}
}
