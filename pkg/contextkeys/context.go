package contextkeys

// Custom key type avoids collisions with other packages' context values.
type contextKey string

// UserIDKey holds the authenticated user id set by the auth middleware.
const UserIDKey = contextKey("userID")

// RoleKey holds the authenticated user's role.
const RoleKey = contextKey("role")
