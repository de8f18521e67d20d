package microsoft

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driven"
)

// Ensure PresenceProvider implements the PresenceGateway interface.
var _ driven.PresenceGateway = (*PresenceProvider)(nil)

// errMissingAvailability is reported when a presence body lacks availability.
var errMissingAvailability = errors.New("missing availability")

// PresenceProvider translates presence operations into Graph API calls.
// Each call is a single round trip; nothing is retried.
type PresenceProvider struct {
	client *Client
}

// GetPresence returns the signed-in user's presence.
func (p *PresenceProvider) GetPresence(ctx context.Context) (*domain.Presence, error) {
	return p.get(ctx, "/me/presence")
}

// GetPresenceByID returns the presence of the given user.
// A 404 surfaces as an *HTTPError matching ErrNotFound.
func (p *PresenceProvider) GetPresenceByID(ctx context.Context, userID string) (*domain.Presence, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	return p.get(ctx, "/users/"+url.PathEscape(userID)+"/presence")
}

// SetPresence posts req to the user's setPresence endpoint and returns the raw
// response, whose body has already been read into memory.
func (p *PresenceProvider) SetPresence(ctx context.Context, userID string, req domain.PresenceSetRequest) (*http.Response, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	path := "/users/" + url.PathEscape(userID) + "/presence/setPresence"
	resp, _, err := p.client.do(ctx, ServicePresence, http.MethodPost, path, req)
	if err != nil {
		return resp, err
	}
	return resp, nil
}

func (p *PresenceProvider) get(ctx context.Context, path string) (*domain.Presence, error) {
	_, data, err := p.client.do(ctx, ServicePresence, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var presence domain.Presence
	if err := decode(data, "presence", &presence); err != nil {
		return nil, err
	}
	if presence.Availability == "" {
		return nil, &ParseError{Target: "presence", Err: errMissingAvailability}
	}
	return &presence, nil
}
