package driven

import (
	"context"

	"github.com/hagraph/hagraph/internal/core/domain"
)

// UserInfoProvider fetches the signed-in user's profile.
type UserInfoProvider interface {
	// Me returns the profile of the user the token was issued to.
	Me(ctx context.Context) (*domain.UserInfo, error)
}
