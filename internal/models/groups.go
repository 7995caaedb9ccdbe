package models

// Group mirrors the group_service_db.groups row. The id is assigned by the
// database at insert time and round-trips as issued, never client-supplied.
type Group struct {
	GroupID    int64  `json:"group_id" db:"group_id"`
	Name       string `json:"name" db:"name"`
	GroupPhoto string `json:"group_photo,omitempty" db:"group_photo"`
}
