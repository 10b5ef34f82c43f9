package utils

// RequireOwner is the single ownership gate used by every mutation on an
// owned entity. Ownership violations always surface as Forbidden.
func RequireOwner(ownerID, actorID uint) error {
	if ownerID != actorID {
		return Forbidden("You don't have permission to modify this resource")
	}
	return nil
}
