package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Role names the privilege level derived from the admin flag, for templates
// and logs.
func (u User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
