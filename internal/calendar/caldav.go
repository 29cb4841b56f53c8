package calendar

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

// CalDAVClient implements Client against a CalDAV calendar collection
// (iCloud, Radicale, Baïkal and the like). The whole recurring series lives in
// one calendar object, so a series id is simply the object's resource path.
type CalDAVClient struct {
	httpClient   *http.Client
	serverURL    string
	username     string
	password     string
	calendarPath string
}

// NewCalDAVClient creates a CalDAV client for one calendar collection.
// serverURL is the CalDAV server (e.g. "https://caldav.icloud.com"),
// calendarPath the collection path ending in "/". For iCloud the password
// should be an app-specific password.
func NewCalDAVClient(serverURL, username, password, calendarPath string) *CalDAVClient {
	if !strings.HasSuffix(calendarPath, "/") {
		calendarPath += "/"
	}

	return &CalDAVClient{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		serverURL:    strings.TrimSuffix(serverURL, "/"),
		username:     username,
		password:     password,
		calendarPath: calendarPath,
	}
}

// makeRequest makes an authenticated HTTP request to the CalDAV server.
func (c *CalDAVClient) makeRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, body)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(c.username, c.password)
	if body != nil && method != "PUT" {
		req.Header.Set("Content-Type", "application/xml; charset=utf-8")
	}
	if method == "PUT" {
		req.Header.Set("Content-Type", "text/calendar; charset=utf-8")
	}
	req.Header.Set("Depth", "1")

	return c.httpClient.Do(req)
}

// FindEvents issues a calendar-query REPORT over the window and decodes each
// returned object. An object whose VEVENT carries an RRULE is a recurring
// series; its series id is the object path itself.
func (c *CalDAVClient) FindEvents(ctx context.Context, start, end time.Time) ([]Event, error) {
	queryBody := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8" ?>
<C:calendar-query xmlns:D="DAV:" xmlns:C="urn:ietf:params:xml:ns:caldav">
  <D:prop>
    <D:getetag/>
    <C:calendar-data/>
  </D:prop>
  <C:filter>
    <C:comp-filter name="VCALENDAR">
      <C:comp-filter name="VEVENT">
        <C:time-range start="%s" end="%s"/>
      </C:comp-filter>
    </C:comp-filter>
  </C:filter>
</C:calendar-query>`, start.UTC().Format("20060102T150405Z"), end.UTC().Format("20060102T150405Z"))

	resp, err := c.makeRequest(ctx, "REPORT", c.calendarPath, strings.NewReader(queryBody))
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultiStatus {
		return nil, fmt.Errorf("failed to query calendar: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	objects, err := parseCalDAVResponse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CalDAV response: %w", err)
	}

	var events []Event
	for _, obj := range objects {
		cal, err := ical.NewDecoder(strings.NewReader(obj.data)).Decode()
		if err != nil {
			log.Printf("Warning: failed to parse iCalendar data at %s: %v", obj.href, err)
			continue
		}

		event, err := eventFromICal(obj.href, cal)
		if err != nil {
			log.Printf("Warning: failed to convert event at %s: %v", obj.href, err)
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

// DeleteEvent removes the calendar object holding a single event.
func (c *CalDAVClient) DeleteEvent(ctx context.Context, id string) error {
	return c.deleteObject(ctx, id)
}

// DeleteSeries removes the calendar object holding a recurring series. On
// CalDAV the series is one resource, so this is the same DELETE.
func (c *CalDAVClient) DeleteSeries(ctx context.Context, seriesID string) error {
	return c.deleteObject(ctx, seriesID)
}

func (c *CalDAVClient) deleteObject(ctx context.Context, path string) error {
	resp, err := c.makeRequest(ctx, "DELETE", path, nil)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to delete %s: HTTP %d", path, resp.StatusCode)
	}

	return nil
}

// CreateWeeklySeries PUTs a new calendar object whose VEVENT recurs weekly
// until req.Until.
func (c *CalDAVClient) CreateWeeklySeries(ctx context.Context, req SeriesRequest) (string, error) {
	cal, uid, err := seriesToICal(req)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("failed to encode iCalendar: %w", err)
	}

	path := c.calendarPath + uid + ".ics"

	resp, err := c.makeRequest(ctx, "PUT", path, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create series: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return "", fmt.Errorf("failed to create series: HTTP %d", resp.StatusCode)
	}

	return path, nil
}

type calDAVObject struct {
	href string
	data string
}

// parseCalDAVResponse parses a CalDAV REPORT multistatus response into object
// paths and their iCalendar payloads.
func parseCalDAVResponse(body []byte) ([]calDAVObject, error) {
	type calendarData struct {
		Data string `xml:",chardata"`
	}

	type prop struct {
		CalendarData calendarData `xml:"calendar-data"`
	}

	type response struct {
		Href string `xml:"href"`
		Prop prop   `xml:"propstat>prop"`
	}

	type multistatus struct {
		Responses []response `xml:"response"`
	}

	var ms multistatus
	if err := xml.Unmarshal(body, &ms); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	var objects []calDAVObject
	for _, resp := range ms.Responses {
		if resp.Prop.CalendarData.Data != "" {
			objects = append(objects, calDAVObject{href: resp.Href, data: resp.Prop.CalendarData.Data})
		}
	}

	return objects, nil
}

// eventFromICal converts a decoded calendar object into an Event.
func eventFromICal(href string, cal *ical.Calendar) (Event, error) {
	var vevent *ical.Component
	for _, comp := range cal.Children {
		if comp.Name == ical.CompEvent {
			vevent = comp
			break
		}
	}

	if vevent == nil {
		return Event{}, fmt.Errorf("no VEVENT found in calendar object")
	}

	event := Event{ID: href}

	if summary := vevent.Props.Get(ical.PropSummary); summary != nil {
		event.Title = summary.Value
	}

	if vevent.Props.Get(ical.PropRecurrenceRule) != nil {
		event.SeriesID = href
	}

	if dtstart := vevent.Props.Get(ical.PropDateTimeStart); dtstart != nil {
		if t, err := dtstart.DateTime(time.Local); err == nil {
			event.Start = t
		}
	}

	if dtend := vevent.Props.Get(ical.PropDateTimeEnd); dtend != nil {
		if t, err := dtend.DateTime(time.Local); err == nil {
			event.End = t
		}
	}

	return event, nil
}

// seriesToICal builds the calendar object for a weekly series.
func seriesToICal(req SeriesRequest) (*ical.Calendar, string, error) {
	rule, err := WeeklyRule(req.Until)
	if err != nil {
		return nil, "", err
	}

	uid := fmt.Sprintf("%d@classcal", time.Now().UnixNano())

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//classcal//EN")

	vevent := ical.NewComponent(ical.CompEvent)
	cal.Children = append(cal.Children, vevent)

	vevent.Props.SetText(ical.PropUID, uid)
	vevent.Props.SetText(ical.PropSummary, req.Title)
	if req.Location != "" {
		vevent.Props.SetText(ical.PropLocation, req.Location)
	}
	if req.Description != "" {
		vevent.Props.SetText(ical.PropDescription, req.Description)
	}

	vevent.Props.SetDateTime(ical.PropDateTimeStart, req.Start)
	vevent.Props.SetDateTime(ical.PropDateTimeEnd, req.End)
	vevent.Props.SetText(ical.PropRecurrenceRule, rule)
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now())

	return cal, uid, nil
}
