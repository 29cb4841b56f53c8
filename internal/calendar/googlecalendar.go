package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleClient implements Client against one Google Calendar.
type GoogleClient struct {
	service    *gcal.Service
	calendarID string
	timeZone   string
}

// NewGoogleClient creates a Google Calendar client for the given calendar
// using the provided authenticated HTTP client. timeZone is the IANA zone
// attached to recurring series (Google requires one on recurring events).
func NewGoogleClient(ctx context.Context, httpClient *http.Client, calendarID, timeZone string) (*GoogleClient, error) {
	service, err := gcal.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleClient{
		service:    service,
		calendarID: calendarID,
		timeZone:   timeZone,
	}, nil
}

// FindEvents lists event instances overlapping the window. SingleEvents
// expands recurring series, so each instance carries its parent series id in
// RecurringEventId.
func (c *GoogleClient) FindEvents(ctx context.Context, start, end time.Time) ([]Event, error) {
	var events []Event
	pageToken := ""

	for {
		call := c.service.Events.List(c.calendarID).
			TimeMin(start.Format(time.RFC3339)).
			TimeMax(end.Format(time.RFC3339)).
			SingleEvents(true).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}

		for _, item := range resp.Items {
			events = append(events, Event{
				ID:       item.Id,
				SeriesID: item.RecurringEventId,
				Title:    item.Summary,
				Start:    eventTime(item.Start),
				End:      eventTime(item.End),
			})
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return events, nil
}

// DeleteEvent deletes a single event.
// Important: Sets sendUpdates="none" to prevent notifications.
func (c *GoogleClient) DeleteEvent(ctx context.Context, id string) error {
	err := c.service.Events.Delete(c.calendarID, id).
		SendUpdates("none").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// DeleteSeries deletes a whole recurring series. Deleting the parent event
// removes every instance.
func (c *GoogleClient) DeleteSeries(ctx context.Context, seriesID string) error {
	err := c.service.Events.Delete(c.calendarID, seriesID).
		SendUpdates("none").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}

	return nil
}

// CreateWeeklySeries inserts a weekly-recurring event ending at req.Until.
func (c *GoogleClient) CreateWeeklySeries(ctx context.Context, req SeriesRequest) (string, error) {
	rule, err := WeeklyRule(req.Until)
	if err != nil {
		return "", err
	}

	event := &gcal.Event{
		Summary:     req.Title,
		Location:    req.Location,
		Description: req.Description,
		Start: &gcal.EventDateTime{
			DateTime: req.Start.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
		End: &gcal.EventDateTime{
			DateTime: req.End.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
		Recurrence: []string{"RRULE:" + rule},
	}

	created, err := c.service.Events.Insert(c.calendarID, event).
		SendUpdates("none").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create series: %w", err)
	}

	return created.Id, nil
}

func eventTime(edt *gcal.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.ParseInLocation("2006-01-02", edt.Date, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
