package types

import "time"

// Role identifies who authored a builder chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// BuilderMessage is one entry of a builder session transcript.
type BuilderMessage struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Opportunity is a side hustle listing.
type Opportunity struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Link         string    `json:"link"`
	Remote       bool      `json:"remote"`
	Category     string    `json:"category"`
	BarrierLevel int       `json:"barrierLevel"` // 1 (very low) .. 5 (very high)
	Score        int       `json:"score"`
	Reason       string    `json:"reason"`
	IsFeatured   bool      `json:"isFeatured"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OpportunityFilter narrows List results. Nil fields match everything.
type OpportunityFilter struct {
	Remote       *bool
	Category     *string
	BarrierLevel *int
}

// UserProfile is the display profile stored per caller.
type UserProfile struct {
	Name string `json:"name"`
}

// Categories accepted on submission.
var Categories = []string{"Tech", "Crypto", "AI", "Finance", "Marketing", "Design", "Other"}
