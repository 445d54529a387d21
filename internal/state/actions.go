package state

import (
	"time"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// Action is a state transition request handled by the reducers.
type Action interface {
	Kind() string
}

// Session actions.
type (
	SessionLogin struct {
		Token     string
		Role      domain.Role
		ExpiresAt *time.Time
	}
	SessionSignup struct {
		Role domain.Role
	}
	SessionLogout struct{}
	SetLoading    struct {
		Loading bool
	}
)

// Profile actions.
type (
	UserLogin              struct{ Profile domain.UserProfile }
	UserUpdate             struct{ Profile domain.UserProfile }
	UserLogout             struct{}
	UserUpdateProfileImage struct{ Image string }

	AgentLogin              struct{ Profile domain.AgentProfile }
	AgentUpdate             struct{ Profile domain.AgentProfile }
	AgentLogout             struct{}
	AgentUpdateProfileImage struct{ Image string }

	UpdateLocation struct {
		Role     domain.Role
		Location domain.Location
	}
)

// Wallet and insurance actions.
type (
	LoadWallet struct {
		Wallet    domain.Wallet
		WasteLogs []domain.WasteLog
	}
	LoadInsurance struct {
		Insurance *domain.Insurance
		Plans     []domain.Plan
	}
	LoadPlans struct {
		Plans []domain.Plan
	}
	// UpdateInsurance replaces the insurance record and keeps the plan list.
	UpdateInsurance struct {
		Insurance *domain.Insurance
	}
)

// RecordError appends Message to the error log of Slice. When Limit is
// positive the log keeps only the newest Limit entries.
type RecordError struct {
	Slice   domain.Slice
	Message string
	Limit   int
}

func (SessionLogin) Kind() string            { return "SESSION_LOGIN" }
func (SessionSignup) Kind() string           { return "SESSION_SIGNUP" }
func (SessionLogout) Kind() string           { return "SESSION_LOGOUT" }
func (SetLoading) Kind() string              { return "SET_LOADING" }
func (UserLogin) Kind() string               { return "USER_LOGIN" }
func (UserUpdate) Kind() string              { return "USER_UPDATE" }
func (UserLogout) Kind() string              { return "USER_LOGOUT" }
func (UserUpdateProfileImage) Kind() string  { return "USER_UPDATE_PROFILE_IMAGE" }
func (AgentLogin) Kind() string              { return "AGENT_LOGIN" }
func (AgentUpdate) Kind() string             { return "AGENT_UPDATE" }
func (AgentLogout) Kind() string             { return "AGENT_LOGOUT" }
func (AgentUpdateProfileImage) Kind() string { return "AGENT_UPDATE_PROFILE_IMAGE" }
func (UpdateLocation) Kind() string          { return "UPDATE_LOCATION" }
func (LoadWallet) Kind() string              { return "LOAD_WALLET" }
func (LoadInsurance) Kind() string           { return "LOAD_INSURANCE" }
func (LoadPlans) Kind() string               { return "LOAD_PLANS" }
func (UpdateInsurance) Kind() string         { return "UPDATE_INSURANCE" }
func (RecordError) Kind() string             { return "RECORD_ERROR" }

// LogoutActions returns the actions that reset every slice on logout.
func LogoutActions() []Action {
	return []Action{SessionLogout{}, UserLogout{}, AgentLogout{}}
}
