// Package queue defines message payloads exchanged over the message broker.
package queue

// BlogActivityEvent is published whenever a blog is created, liked or
// deleted. It carries enough information for downstream consumers to
// log, notify or feed analytics without querying the primary database.
// Action is one of "created", "liked" or "deleted".
type BlogActivityEvent struct {
	Action     string `json:"action"`
	BlogID     uint64 `json:"blog_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	URL        string `json:"url"`
	Likes      uint64 `json:"likes"`
	OwnerID    uint64 `json:"owner_id"`
	ActorID    uint64 `json:"actor_id,omitempty"` // 0 for anonymous likes
	OccurredAt string `json:"occurred_at"`
}
