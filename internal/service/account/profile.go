package account

import (
	"context"
	"fmt"
	"net/http"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/dispatch"
	"github.com/heartmarshall/ecowallet-client/internal/state"
)

// UpdateProfile sends the profile form and replaces the stored profile with
// the one returned.
func (s *Service) UpdateProfile(ctx context.Context, role domain.Role, input ProfileInput) (domain.Status, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	resp, err := s.run.Do(ctx, dispatch.Call{
		Operation: "account.update_profile",
		Role:      role,
		Method:    http.MethodPut,
		Path:      "/profile",
		Body:      input,
	})
	if err != nil {
		return "", err
	}
	if resp.IsPending() {
		return domain.StatusPending, nil
	}

	res, err := decodeProfile(resp, role)
	if err != nil {
		return "", fmt.Errorf("account.UpdateProfile: %w", err)
	}

	if role == domain.RoleUser {
		s.run.Apply(state.UserUpdate{Profile: res.user})
	} else {
		s.run.Apply(state.AgentUpdate{Profile: res.agent})
	}
	if res.location != nil {
		s.run.Apply(state.UpdateLocation{Role: role, Location: *res.location})
	}
	return resp.Status, nil
}

// UpdatePassword changes the account password. No state changes.
func (s *Service) UpdatePassword(ctx context.Context, role domain.Role, input PasswordInput) (domain.Status, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	return s.run.Decode(ctx, dispatch.Call{
		Operation: "account.update_password",
		Role:      role,
		Method:    http.MethodPut,
		Path:      "/password",
		Body:      input,
	}, "", nil)
}

// UpdateProfileImage sets the profile image locally. The upload itself is
// done elsewhere; image is the resulting URL.
func (s *Service) UpdateProfileImage(role domain.Role, image string) {
	if role == domain.RoleUser {
		s.run.Apply(state.UserUpdateProfileImage{Image: image})
		return
	}
	s.run.Apply(state.AgentUpdateProfileImage{Image: image})
}

// UpdateLocation sends the location and stores what the backend returns,
// or loc itself when the response carries no location.
func (s *Service) UpdateLocation(ctx context.Context, role domain.Role, loc domain.Location) (domain.Status, error) {
	if err := validateLocation(loc); err != nil {
		return "", err
	}

	stored := loc
	status, err := s.run.Decode(ctx, dispatch.Call{
		Operation: "account.update_location",
		Role:      role,
		Method:    http.MethodPut,
		Path:      "/location",
		Body:      loc,
	}, "location", &stored)
	if err != nil {
		return "", err
	}
	if status.IsPending() {
		return status, nil
	}

	s.run.Apply(state.UpdateLocation{Role: role, Location: stored})
	return status, nil
}
