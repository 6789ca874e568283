package model

type TeamStatus string

const (
	TeamStatusDraft   TeamStatus = "draft"
	TeamStatusPending TeamStatus = "pending"
	TeamStatusPublish TeamStatus = "publish"
	TeamStatusPrivate TeamStatus = "private"
	TeamStatusTrash   TeamStatus = "trash"
)

type Team struct {
	ID       string     `json:"team_id" validate:"required"`
	AuthorID string     `json:"author_id" validate:"required"`
	Title    string     `json:"title"`
	Status   TeamStatus `json:"status" validate:"required"`
}

// IsVisible reports whether the team is published or restricted-visible,
// the two states in which queued invitations are sent.
func (t *Team) IsVisible() bool {
	return t.Status == TeamStatusPublish || t.Status == TeamStatusPrivate
}
