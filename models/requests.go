package models

// RegisterRequest is the payload of a registration call.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credentials is the payload of a login call.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserPatch is a partial profile update. Nil fields are left unchanged.
//
// Role and Status are administrative fields: only an ADMIN requester
// may set them.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	Status   *Status `json:"status,omitempty"`
}

// IsAdministrative reports whether p touches fields reserved to admins.
func (p UserPatch) IsAdministrative() bool {
	return p.Role != nil || p.Status != nil
}

// IntrospectionRequest carries a raw token to be resolved.
type IntrospectionRequest struct {
	Token string `json:"token"`
}
