package models

// GroupRole is a member's standing within a group.
type GroupRole string

const (
	GroupRoleAdmin  GroupRole = "admin"
	GroupRoleMember GroupRole = "member"
)

type GroupMember struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Role GroupRole `json:"role"`
}

// Group is a chat group with its membership list.
type Group struct {
	ID          string        `json:"id"`
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description,omitempty"`
	Members     []GroupMember `json:"members"`
	CreatedBy   string        `json:"createdBy"`
	CreatedAt   string        `json:"createdAt"`
}

// HasMember reports whether userID belongs to the group.
func (g Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
