package domain

// CanModify reports whether user owns the resource. Admin status is checked
// separately with IsAdmin; it only widens the thread-delete path, never
// edits and never comments.
func CanModify(ownerId UserId, user *User) bool {
	return user != nil && user.Id == ownerId
}

func IsAdmin(user *User) bool {
	return user != nil && user.Admin
}
