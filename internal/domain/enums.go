package domain

// Role selects which of the two client personas is active.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// ParseRole maps a raw role string onto a Role. Only the literal "user"
// selects the consumer role; every other value selects the agent role.
func ParseRole(s string) Role {
	if s == string(RoleUser) {
		return RoleUser
	}
	return RoleAgent
}

// Roles returns both roles in bootstrap precedence order.
func Roles() []Role { return []Role{RoleAgent, RoleUser} }

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAgent:
		return true
	}
	return false
}

// TokenKey is the credential-store key holding this role's auth token.
func (r Role) TokenKey() string {
	if r == RoleUser {
		return "user_token"
	}
	return "agent_token"
}

// TokenKeys returns the credential-store keys of every role.
func TokenKeys() []string {
	return []string{RoleUser.TokenKey(), RoleAgent.TokenKey()}
}

// Status is the value of the "status" field of a backend response.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPending Status = "pending"
	StatusError   Status = "error"
)

func (s Status) String() string { return string(s) }

// IsPending reports whether the backend is still settling the operation.
func (s Status) IsPending() bool { return s == StatusPending }

// Slice names one partition of client state.
type Slice string

const (
	SliceUser      Slice = "user"
	SliceAgent     Slice = "agent"
	SliceWallet    Slice = "wallet"
	SliceInsurance Slice = "insurance"
)

func (s Slice) String() string { return string(s) }

// ProfileSlice returns the profile slice owned by the given role.
func ProfileSlice(r Role) Slice {
	if r == RoleUser {
		return SliceUser
	}
	return SliceAgent
}
