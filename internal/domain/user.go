package domain

import "time"

// Session is the client-local authentication record.
type Session struct {
	AuthToken string
	Role      Role
	Loading   bool
	// Signup is set while a registration flow is active for Role.
	Signup bool
	// ExpiresAt is read from the token's exp claim; nil for opaque tokens.
	ExpiresAt *time.Time
}

// NewSession returns the session shape used at process start.
func NewSession() Session {
	return Session{Role: RoleUser, Loading: true}
}

// LoggedIn reports whether the session carries a token.
func (s Session) LoggedIn() bool { return s.AuthToken != "" }

// Expired reports whether the token is known to have expired relative to now.
// Tokens without an exp claim never report expired.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// UserProfile is the consumer profile returned on login, refresh and update.
type UserProfile struct {
	ID        string `json:"id"        yaml:"id"`
	FirstName string `json:"firstName" yaml:"first_name"`
	LastName  string `json:"lastName"  yaml:"last_name"`
	Email     string `json:"email"     yaml:"email"`
	Phone     string `json:"phone"     yaml:"phone"`
	Gender    string `json:"gender,omitempty" yaml:"gender,omitempty"`
	AuthToken string `json:"authToken" yaml:"-"`
	ExpiresIn int64  `json:"expiresIn" yaml:"expires_in"`
	Image     string `json:"image"     yaml:"image"`
}

// AgentProfile is the field-agent profile returned on login, refresh and update.
type AgentProfile struct {
	ID           string `json:"id"           yaml:"id"`
	FirstName    string `json:"firstName"    yaml:"first_name"`
	LastName     string `json:"lastName"     yaml:"last_name"`
	Email        string `json:"email"        yaml:"email"`
	Phone        string `json:"phone"        yaml:"phone"`
	AgentCode    string `json:"agentCode"    yaml:"agent_code"`
	Organisation string `json:"organisation" yaml:"organisation"`
	AuthToken    string `json:"authToken"    yaml:"-"`
	ExpiresIn    int64  `json:"expiresIn"    yaml:"expires_in"`
	Image        string `json:"image"        yaml:"image"`
}

// Location is the address and coordinates attached to a profile.
type Location struct {
	Country string  `json:"country" yaml:"country"`
	State   string  `json:"state"   yaml:"state"`
	City    string  `json:"city"    yaml:"city"`
	Street  string  `json:"street"  yaml:"street"`
	Zipcode string  `json:"zipcode" yaml:"zipcode"`
	Lat     float64 `json:"lat"     yaml:"lat"`
	Long    float64 `json:"long"    yaml:"long"`
}
