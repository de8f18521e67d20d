package domain

import (
	"fmt"
	"strings"
	"time"
)

// Availability is the base presence state of a user.
type Availability string

// Availability values reported by Microsoft Graph.
const (
	AvailabilityAvailable       Availability = "Available"
	AvailabilityAvailableIdle   Availability = "AvailableIdle"
	AvailabilityAway            Availability = "Away"
	AvailabilityBeRightBack     Availability = "BeRightBack"
	AvailabilityBusy            Availability = "Busy"
	AvailabilityBusyIdle        Availability = "BusyIdle"
	AvailabilityDoNotDisturb    Availability = "DoNotDisturb"
	AvailabilityOffline         Availability = "Offline"
	AvailabilityPresenceUnknown Availability = "PresenceUnknown"
)

// settableAvailability lists the values accepted by setPresence.
var settableAvailability = map[Availability]bool{
	AvailabilityAvailable:    true,
	AvailabilityAway:         true,
	AvailabilityBeRightBack:  true,
	AvailabilityBusy:         true,
	AvailabilityDoNotDisturb: true,
	AvailabilityOffline:      true,
}

// Presence is a user's availability and activity as reported by Microsoft Graph.
type Presence struct {
	// ID is the user id the presence belongs to.
	ID string `json:"id"`
	// Availability is the base presence state.
	Availability Availability `json:"availability"`
	// Activity is the supplemental state, e.g. "InACall" or "Presenting".
	Activity string `json:"activity"`
}

// PresenceSetRequest is the body of a setPresence call.
type PresenceSetRequest struct {
	// SessionID identifies the presence session, normally the application id.
	SessionID string `json:"sessionId,omitempty"`
	// Availability is the state to set.
	Availability Availability `json:"availability"`
	// Activity is the supplemental state to set.
	Activity string `json:"activity"`
	// ExpirationDuration is an ISO 8601 duration after which the session expires.
	ExpirationDuration string `json:"expirationDuration,omitempty"`
}

// NewPresenceSetRequest builds a request. A zero expiration leaves the
// service default in place.
func NewPresenceSetRequest(availability Availability, activity string, expiration time.Duration) PresenceSetRequest {
	req := PresenceSetRequest{
		Availability: availability,
		Activity:     activity,
	}
	if expiration > 0 {
		req.ExpirationDuration = FormatISODuration(expiration)
	}
	return req
}

// Validate checks the request before it is sent.
func (r *PresenceSetRequest) Validate() error {
	if r.Availability == "" {
		return fmt.Errorf("%w: availability is required", ErrInvalidInput)
	}
	if !settableAvailability[r.Availability] {
		return fmt.Errorf("%w: availability %q cannot be set", ErrInvalidInput, r.Availability)
	}
	if r.Activity == "" {
		return fmt.Errorf("%w: activity is required", ErrInvalidInput)
	}
	return nil
}

// ParseAvailability matches a user supplied value case-insensitively.
func ParseAvailability(s string) (Availability, error) {
	all := []Availability{
		AvailabilityAvailable, AvailabilityAvailableIdle, AvailabilityAway,
		AvailabilityBeRightBack, AvailabilityBusy, AvailabilityBusyIdle,
		AvailabilityDoNotDisturb, AvailabilityOffline, AvailabilityPresenceUnknown,
	}
	for _, a := range all {
		if strings.EqualFold(string(a), s) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown availability %q", ErrInvalidInput, s)
}

// FormatISODuration renders d as an ISO 8601 duration (e.g. PT1H30M).
// Sub-second precision is dropped.
func FormatISODuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d <= 0 {
		return "PT0S"
	}

	var b strings.Builder
	b.WriteString("PT")
	if h := d / time.Hour; h > 0 {
		fmt.Fprintf(&b, "%dH", h)
		d -= h * time.Hour
	}
	if m := d / time.Minute; m > 0 {
		fmt.Fprintf(&b, "%dM", m)
		d -= m * time.Minute
	}
	if s := d / time.Second; s > 0 {
		fmt.Fprintf(&b, "%dS", s)
	}
	return b.String()
}
