package microsoft

import (
	"context"
	"net/http"

	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driven"
)

// Ensure Client implements the UserInfoProvider interface.
var _ driven.UserInfoProvider = (*Client)(nil)

// Me fetches the signed-in user's profile. Requires the User.Read scope.
func (c *Client) Me(ctx context.Context) (*domain.UserInfo, error) {
	_, data, err := c.do(ctx, ServiceProfile, http.MethodGet, "/me?$select=id,displayName,mail,userPrincipalName", nil)
	if err != nil {
		return nil, err
	}

	var userInfo domain.UserInfo
	if err := decode(data, "user info", &userInfo); err != nil {
		return nil, err
	}
	return &userInfo, nil
}
