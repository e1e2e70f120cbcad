package models

import "encoding/json"

// Canonical notification names used by the unread-activity counters and the
// background task machinery.
const (
	NotifReceivedComments = "unread_recived_comments_count"
	NotifMessages         = "unread_messages_count"
	NotifPostsLikes       = "unread_posts_likes_count"
	NotifFollows          = "unread_follows_count"
	NotifFollowedsPosts   = "unread_followeds_posts_count"
	NotifTaskProgress     = "task_progress"
)

// Notification is a last-value-wins slot keyed by (user, name): pushing a
// name the user already has replaces the previous entry. Timestamp is float
// seconds since epoch so ties within one second still order.
type Notification struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	UserID      uint    `json:"user_id" gorm:"index;uniqueIndex:idx_user_notif_name"`
	Name        string  `json:"name" gorm:"size:64;uniqueIndex:idx_user_notif_name"`
	Timestamp   float64 `json:"timestamp" gorm:"index"`
	PayloadJSON string  `json:"-"`
}

// Payload decodes the stored JSON payload.
func (n *Notification) Payload() (any, error) {
	var v any
	err := json.Unmarshal([]byte(n.PayloadJSON), &v)
	return v, err
}

// MarshalJSON inlines the decoded payload under "payload".
func (n Notification) MarshalJSON() ([]byte, error) {
	payload, err := n.Payload()
	if err != nil {
		payload = n.PayloadJSON
	}
	return json.Marshal(struct {
		ID        uint    `json:"id"`
		UserID    uint    `json:"user_id"`
		Name      string  `json:"name"`
		Timestamp float64 `json:"timestamp"`
		Payload   any     `json:"payload"`
	}{n.ID, n.UserID, n.Name, n.Timestamp, payload})
}
