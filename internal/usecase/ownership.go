package usecase

import "photo-share/internal/entity"

// CanModify reports whether actor may update or delete a resource owned by
// ownerID. The superuser flag comes from the acting user.
func CanModify(actor entity.Actor, ownerID string) bool {
	if !actor.Authenticated || actor.UserID == "" {
		return false
	}
	return actor.UserID == ownerID || actor.IsSuperuser
}

func requireAuthenticated(actor entity.Actor) error {
	if !actor.Authenticated || actor.UserID == "" {
		return ErrUnauthenticated
	}
	return nil
}
