package state

import (
	"slices"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// Reduce applies a to every slice. Unknown actions leave s unchanged.
func Reduce(s State, a Action) State {
	return State{
		Session:   ReduceSession(s.Session, a),
		User:      ReduceUser(s.User, a),
		Agent:     ReduceAgent(s.Agent, a),
		Wallet:    ReduceWallet(s.Wallet, a),
		Insurance: ReduceInsurance(s.Insurance, a),
	}
}

func ReduceSession(s domain.Session, a Action) domain.Session {
	switch a := a.(type) {
	case SessionLogin:
		s.Role = a.Role
		if a.Token != "" {
			s.AuthToken = a.Token
			s.ExpiresAt = a.ExpiresAt
		}
		s.Loading = false
		s.Signup = false
	case SessionSignup:
		s.Role = a.Role
		s.Signup = true
		s.Loading = false
	case SessionLogout:
		s.AuthToken = ""
		s.ExpiresAt = nil
		s.Loading = false
		s.Signup = false
	case SetLoading:
		s.Loading = a.Loading
	}
	return s
}

func ReduceUser(s UserState, a Action) UserState {
	switch a := a.(type) {
	case UserLogin:
		s.Profile = a.Profile
	case UserUpdate:
		s.Profile = a.Profile
	case UserUpdateProfileImage:
		s.Profile.Image = a.Image
	case UpdateLocation:
		if a.Role == domain.RoleUser {
			s.Location = a.Location
		}
	case UserLogout:
		return UserState{}
	case RecordError:
		if a.Slice == domain.SliceUser {
			s.Errors = appendBounded(s.Errors, a.Message, a.Limit)
		}
	}
	return s
}

func ReduceAgent(s AgentState, a Action) AgentState {
	switch a := a.(type) {
	case AgentLogin:
		s.Profile = a.Profile
	case AgentUpdate:
		s.Profile = a.Profile
	case AgentUpdateProfileImage:
		s.Profile.Image = a.Image
	case UpdateLocation:
		if a.Role == domain.RoleAgent {
			s.Location = a.Location
		}
	case AgentLogout:
		return AgentState{}
	case RecordError:
		if a.Slice == domain.SliceAgent {
			s.Errors = appendBounded(s.Errors, a.Message, a.Limit)
		}
	}
	return s
}

func ReduceWallet(s WalletState, a Action) WalletState {
	switch a := a.(type) {
	case LoadWallet:
		s.Wallet = a.Wallet
		s.WasteLogs = a.WasteLogs
	case UserLogout, AgentLogout:
		return WalletState{}
	case RecordError:
		if a.Slice == domain.SliceWallet {
			s.Errors = appendBounded(s.Errors, a.Message, a.Limit)
		}
	}
	return s
}

func ReduceInsurance(s InsuranceState, a Action) InsuranceState {
	switch a := a.(type) {
	case LoadInsurance:
		s.Insurance = a.Insurance
		s.Plans = a.Plans
	case LoadPlans:
		s.Plans = a.Plans
	case UpdateInsurance:
		s.Insurance = a.Insurance
	case UserLogout, AgentLogout:
		return InsuranceState{}
	case RecordError:
		if a.Slice == domain.SliceInsurance {
			s.Errors = appendBounded(s.Errors, a.Message, a.Limit)
		}
	}
	return s
}

// appendBounded returns a new log with msg appended, dropping the oldest
// entries beyond limit. The input is never modified.
func appendBounded(log []string, msg string, limit int) []string {
	out := append(slices.Clip(log), msg)
	if limit > 0 && len(out) > limit {
		out = slices.Clone(out[len(out)-limit:])
	}
	return out
}
