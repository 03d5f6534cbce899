package identity

import "strings"

// Context carries who is calling. It is built by the delivery layer from
// the identity provider's token and passed explicitly into use cases.
type Context struct {
	UserID      string
	Email       string
	DisplayName string
	IsAdmin     bool
}

func (c Context) Authenticated() bool {
	return strings.TrimSpace(c.UserID) != ""
}

// CanRead reports whether the caller may read data owned by userID.
func (c Context) CanRead(userID string) bool {
	if !c.Authenticated() {
		return false
	}
	return c.IsAdmin || c.UserID == userID
}
