package queue

// Content change actions.
const (
    ActionCreated = "created"
    ActionUpdated = "updated"
    ActionDeleted = "deleted"
)

// ContentChangedEvent is published after a successful create, update or
// delete of a blog or portfolio entry. Downstream consumers (sitemap
// regeneration, cache purging, analytics) get enough information to act
// without querying the primary database.
type ContentChangedEvent struct {
    Kind      string `json:"kind"`   // "blog" | "portfolio"
    Action    string `json:"action"` // "created" | "updated" | "deleted"
    ID        uint64 `json:"id"`
    Slug      string `json:"slug"`
    Title     string `json:"title"`
    Status    string `json:"status,omitempty"` // blog status at event time
    ChangedBy string `json:"changed_by"`       // admin email
    ChangedAt string `json:"changed_at"`       // RFC3339 UTC
}
