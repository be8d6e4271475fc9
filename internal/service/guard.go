package service

// Scope names the authorization rule an operation runs under
type Scope int

const (
	// ScopeSelf operations act on the caller's own records
	ScopeSelf Scope = iota
	// ScopeAdmin operations act on any record and need the admin role
	ScopeAdmin
)

// AccessGuard is the single place where ownership and role rules are decided.
//
// Self-scoped denials come back as ErrNotFound so a caller cannot tell a record
// owned by someone else from one that does not exist. Admin-scoped denials come
// back as ErrUnauthorized.
type AccessGuard struct{}

// Authorize decides whether claims may run an operation of the given scope on a
// resource owned by ownerID. ownerID is ignored for ScopeAdmin.
func (AccessGuard) Authorize(claims *Claims, scope Scope, ownerID uint) error {
	if claims == nil {
		return ErrUnauthorized
	}
	switch scope {
	case ScopeSelf:
		if claims.UserID == 0 || claims.UserID != ownerID {
			return ErrNotFound
		}
		return nil
	case ScopeAdmin:
		if !claims.IsAdmin() {
			return ErrUnauthorized
		}
		return nil
	}
	return ErrUnauthorized
}

// RequireAdmin fails with ErrUnauthorized unless the caller is an admin
func (g AccessGuard) RequireAdmin(claims *Claims) error {
	return g.Authorize(claims, ScopeAdmin, 0)
}

// RequireOwner fails with ErrNotFound unless the caller owns the resource
func (g AccessGuard) RequireOwner(claims *Claims, ownerID uint) error {
	return g.Authorize(claims, ScopeSelf, ownerID)
}

// RequireAuthenticated fails with ErrUnauthorized when no identity is present
func (AccessGuard) RequireAuthenticated(claims *Claims) error {
	if claims == nil || claims.UserID == 0 {
		return ErrUnauthorized
	}
	return nil
}
