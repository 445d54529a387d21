// Package state holds the client-side mirror of server state: typed actions,
// pure per-slice reducers and a subscribable Store.
package state

import (
	"slices"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// State is the full client state. Each field is owned by one reducer.
type State struct {
	Session   domain.Session `yaml:"session"`
	User      UserState      `yaml:"user"`
	Agent     AgentState     `yaml:"agent"`
	Wallet    WalletState    `yaml:"wallet"`
	Insurance InsuranceState `yaml:"insurance"`
}

// New returns the state at process start.
func New() State {
	return State{Session: domain.NewSession()}
}

type UserState struct {
	Profile  domain.UserProfile `yaml:"profile"`
	Location domain.Location    `yaml:"location"`
	Errors   []string           `yaml:"errors,omitempty"`
}

type AgentState struct {
	Profile  domain.AgentProfile `yaml:"profile"`
	Location domain.Location     `yaml:"location"`
	Errors   []string            `yaml:"errors,omitempty"`
}

type WalletState struct {
	Wallet    domain.Wallet     `yaml:"wallet"`
	WasteLogs []domain.WasteLog `yaml:"waste_logs,omitempty"`
	Errors    []string          `yaml:"errors,omitempty"`
}

type InsuranceState struct {
	Insurance *domain.Insurance `yaml:"insurance,omitempty"`
	Plans     []domain.Plan     `yaml:"plans,omitempty"`
	Errors    []string          `yaml:"errors,omitempty"`
}

// Errors returns the error log of the given slice.
func (s State) Errors(slice domain.Slice) []string {
	switch slice {
	case domain.SliceUser:
		return s.User.Errors
	case domain.SliceAgent:
		return s.Agent.Errors
	case domain.SliceWallet:
		return s.Wallet.Errors
	case domain.SliceInsurance:
		return s.Insurance.Errors
	}
	return nil
}

// clone copies every slice and pointer so the result shares no backing
// storage with s.
func (s State) clone() State {
	out := s
	if s.Session.ExpiresAt != nil {
		t := *s.Session.ExpiresAt
		out.Session.ExpiresAt = &t
	}
	out.User.Errors = slices.Clone(s.User.Errors)
	out.Agent.Errors = slices.Clone(s.Agent.Errors)
	out.Wallet.Errors = slices.Clone(s.Wallet.Errors)
	out.Wallet.WasteLogs = slices.Clone(s.Wallet.WasteLogs)
	out.Insurance.Errors = slices.Clone(s.Insurance.Errors)
	out.Insurance.Plans = slices.Clone(s.Insurance.Plans)
	if s.Insurance.Insurance != nil {
		ins := *s.Insurance.Insurance
		ins.Plan.Benefits = slices.Clone(ins.Plan.Benefits)
		if ins.CareCentre != nil {
			cc := *ins.CareCentre
			ins.CareCentre = &cc
		}
		out.Insurance.Insurance = &ins
	}
	return out
}
