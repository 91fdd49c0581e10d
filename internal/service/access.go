package service

import "CloudVault/model"

// CanAccess decides whether a user may read or download a file: the
// owner always may, anyone in the share grant set may, nobody else.
// Pure over the loaded record; callers must preload Grants. Share
// links and tickets are authorized by token possession instead and
// never pass through here.
func CanAccess(file *model.File, userID uint64) bool {
	if file == nil {
		return false
	}
	if file.OwnerID == userID {
		return true
	}
	for _, g := range file.Grants {
		if g.UserID == userID {
			return true
		}
	}
	return false
}
