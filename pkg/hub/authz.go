package hub

import "github.com/google/uuid"

// Policy decides whether caller may mutate a row owned by ownerID. Policies
// are selected per operation rather than scattered through call sites: blog
// mutation allows the owner or an admin, document and resource mutation is
// owner-only, comment deletion is handled separately because the author is
// not the row owner.
type Policy func(caller *User, ownerID uuid.UUID) error

// RequireOwner allows only the stored owner.
func RequireOwner() Policy {
	return func(caller *User, ownerID uuid.UUID) error {
		if caller == nil {
			return ErrUnauthenticated
		}
		if caller.ID != ownerID {
			return ErrUnauthorized
		}
		return nil
	}
}

// RequireRole allows any caller carrying the given role.
func RequireRole(role string) Policy {
	return func(caller *User, ownerID uuid.UUID) error {
		if caller == nil {
			return ErrUnauthenticated
		}
		if caller.Role != role {
			return ErrUnauthorized
		}
		return nil
	}
}

// AnyOf passes when at least one policy passes. With no policies it denies.
func AnyOf(policies ...Policy) Policy {
	return func(caller *User, ownerID uuid.UUID) error {
		var err error = ErrUnauthorized
		for _, p := range policies {
			e := p(caller, ownerID)
			if e == nil {
				return nil
			}
			err = e
		}
		return err
	}
}
