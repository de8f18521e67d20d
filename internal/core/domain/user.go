package domain

// UserInfo contains the user's basic profile information.
type UserInfo struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Mail              string `json:"mail"`
	UserPrincipalName string `json:"userPrincipalName"`
}

// AccountIdentifier returns the user's email address.
// Falls back to userPrincipalName if mail is not set.
func (u *UserInfo) AccountIdentifier() string {
	if u.Mail != "" {
		return u.Mail
	}
	return u.UserPrincipalName
}
