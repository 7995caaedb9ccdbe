package models

// GroupMember is the many-to-many join between a group and a user owned by
// the user service. One row per (group_id, user_id) pair.
type GroupMember struct {
	GroupID int64 `json:"group_id" db:"group_id"`
	UserID  int64 `json:"user_id" db:"user_id"`
}
