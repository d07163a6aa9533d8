package caldav

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/google/uuid"
)

// Common CalDAV server URLs
const (
	AppleCalDAVURL    = "https://caldav.icloud.com"
	FastmailCalDAVURL = "https://caldav.fastmail.com"
)

// Source reads events from a CalDAV calendar (Apple Calendar, Fastmail,
// Nextcloud, etc.) and converts them into commitments the planner must
// schedule around.
type Source struct {
	baseURL      string
	username     string
	password     string // App-specific password for Apple
	calendarPath string // Specific calendar path, or empty for default
	logger       *slog.Logger
}

// NewSource creates a CalDAV commitment source.
func NewSource(baseURL, username, password string, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		baseURL:  baseURL,
		username: username,
		password: password,
		logger:   logger,
	}
}

// WithCalendarPath sets the specific calendar path to use.
func (s *Source) WithCalendarPath(path string) *Source {
	s.calendarPath = path
	return s
}

// FetchCommitments returns the calendar's events within [start, end] as
// fixed commitments. Cancelled events are skipped.
func (s *Source) FetchCommitments(ctx context.Context, start, end time.Time) ([]*domain.Commitment, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	calPath, err := s.findCalendarPath(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar: %w", err)
	}

	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name:  "VCALENDAR",
			Props: []string{"VERSION"},
			Comps: []caldav.CalendarCompRequest{
				{
					Name:  "VEVENT",
					Props: []string{"SUMMARY", "DTSTART", "DTEND", "UID", "STATUS"},
				},
			},
		},
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{
					Name:  "VEVENT",
					Start: domain.Midnight(start),
					End:   domain.Midnight(end).AddDate(0, 0, 1),
				},
			},
		},
	}

	objects, err := client.QueryCalendar(ctx, calPath, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar: %w", err)
	}

	commitments := make([]*domain.Commitment, 0, len(objects))
	for _, obj := range objects {
		cs := toCommitments(&obj)
		if len(cs) == 0 {
			s.logger.Debug("skipping calendar object", "path", obj.Path)
			continue
		}
		commitments = append(commitments, cs...)
	}

	return commitments, nil
}

// ListCalendars returns calendars accessible to the configured account.
func (s *Source) ListCalendars(ctx context.Context) ([]caldav.Calendar, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find principal: %w", err)
	}

	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("failed to find calendar home set: %w", err)
	}

	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return nil, fmt.Errorf("failed to find calendars: %w", err)
	}
	return cals, nil
}

func (s *Source) getClient() (*caldav.Client, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	client, err := caldav.NewClient(webdav.HTTPClientWithBasicAuth(httpClient, s.username, s.password), s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return client, nil
}

func (s *Source) findCalendarPath(ctx context.Context, client *caldav.Client) (string, error) {
	if s.calendarPath != "" {
		return s.calendarPath, nil
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal: %w", err)
	}

	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}

	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}

	if len(cals) == 0 {
		return "", fmt.Errorf("no calendars found")
	}

	// Use first calendar as default
	return cals[0].Path, nil
}

// toCommitments converts the first VEVENT of a calendar object into
// fixed commitments. Multi-day events become one commitment per covered
// day, clamped to day bounds, so the planner blocks every day they
// span. Returns nil for objects without a usable event.
func toCommitments(obj *caldav.CalendarObject) []*domain.Commitment {
	if obj == nil || obj.Data == nil {
		return nil
	}

	for _, child := range obj.Data.Children {
		if child.Name != ical.CompEvent {
			continue
		}

		if props := child.Props[ical.PropStatus]; len(props) > 0 {
			if strings.EqualFold(props[0].Value, "CANCELLED") {
				return nil
			}
		}

		icalEvent := &ical.Event{Component: child}
		start, err := icalEvent.DateTimeStart(time.UTC)
		if err != nil {
			return nil
		}
		end, err := icalEvent.DateTimeEnd(time.UTC)
		if err != nil || !end.After(start) {
			end = start.Add(domain.DefaultCommitmentDuration)
		}

		return splitByDay(child, start, end)
	}

	return nil
}

// splitByDay carves an event interval into per-day commitments. The
// interval is half-open, so an event ending exactly at midnight does
// not spill a zero-length commitment onto the next day.
func splitByDay(event *ical.Component, start, end time.Time) []*domain.Commitment {
	var title string
	if props := event.Props[ical.PropSummary]; len(props) > 0 {
		title = props[0].Value
	}

	firstDay := domain.Midnight(start)
	singleDay := !end.After(firstDay.AddDate(0, 0, 1))

	commitments := make([]*domain.Commitment, 0, 1)
	for day := firstDay; day.Before(end); day = day.AddDate(0, 0, 1) {
		segStart := day
		if start.After(day) {
			segStart = start
		}
		segEnd := day.AddDate(0, 0, 1)
		if end.Before(segEnd) {
			segEnd = end
		}
		if !segEnd.After(segStart) {
			continue
		}

		id := dayUUID(event, day)
		if singleDay {
			id = eventUUID(event)
		}

		startOffset := segStart.Sub(day)
		endOffset := segEnd.Sub(day)
		commitments = append(commitments, &domain.Commitment{
			ID:        id,
			Title:     title,
			Date:      day,
			StartTime: &startOffset,
			EndTime:   &endOffset,
			Fixed:     true,
			Priority:  3,
		})
	}
	return commitments
}

// eventUUID derives a stable commitment ID from the event UID so that
// re-importing the same calendar updates rows instead of duplicating
// them.
func eventUUID(event *ical.Component) uuid.UUID {
	if props := event.Props[ical.PropUID]; len(props) > 0 {
		if id, err := uuid.Parse(props[0].Value); err == nil {
			return id
		}
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(props[0].Value))
	}
	return uuid.New()
}

// dayUUID derives a stable per-day ID for one segment of a multi-day
// event, keyed on the event UID plus the segment's date.
func dayUUID(event *ical.Component, day time.Time) uuid.UUID {
	if props := event.Props[ical.PropUID]; len(props) > 0 {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(props[0].Value+"/"+day.Format("2006-01-02")))
	}
	return uuid.New()
}
