// Package storetest is a conformance suite run against every credstore backend.
package storetest

import (
	"context"
	"errors"

	"github.com/stretchr/testify/suite"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore"
	"github.com/heartmarshall/ecowallet-client/internal/domain"
)

// Suite exercises the credstore.Store contract. NewStore is called once per test.
type Suite struct {
	suite.Suite

	NewStore func() credstore.Store

	store credstore.Store
	ctx   context.Context
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.NewStore()
}

func (s *Suite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *Suite) TestGet_Missing() {
	_, err := s.store.Get(s.ctx, "user_token")
	s.Require().Error(err)
	s.True(errors.Is(err, domain.ErrNotFound), "want ErrNotFound, got %v", err)
}

func (s *Suite) TestSetGet_RoundTrip() {
	s.Require().NoError(s.store.Set(s.ctx, "user_token", "abc"))

	got, err := s.store.Get(s.ctx, "user_token")
	s.Require().NoError(err)
	s.Equal("abc", got)
}

func (s *Suite) TestSet_Overwrites() {
	s.Require().NoError(s.store.Set(s.ctx, "agent_token", "first"))
	s.Require().NoError(s.store.Set(s.ctx, "agent_token", "second"))

	got, err := s.store.Get(s.ctx, "agent_token")
	s.Require().NoError(err)
	s.Equal("second", got)
}

func (s *Suite) TestKeysAreIndependent() {
	s.Require().NoError(s.store.Set(s.ctx, "user_token", "u"))
	s.Require().NoError(s.store.Set(s.ctx, "agent_token", "a"))

	u, err := s.store.Get(s.ctx, "user_token")
	s.Require().NoError(err)
	a, err := s.store.Get(s.ctx, "agent_token")
	s.Require().NoError(err)

	s.Equal("u", u)
	s.Equal("a", a)
}

func (s *Suite) TestDelete_BothKeys() {
	s.Require().NoError(s.store.Set(s.ctx, "user_token", "u"))
	s.Require().NoError(s.store.Set(s.ctx, "agent_token", "a"))

	s.Require().NoError(s.store.Delete(s.ctx, domain.TokenKeys()...))

	for _, k := range domain.TokenKeys() {
		_, err := s.store.Get(s.ctx, k)
		s.True(errors.Is(err, domain.ErrNotFound), "key %s should be gone, got %v", k, err)
	}
}

func (s *Suite) TestDelete_MissingIsNoop() {
	s.NoError(s.store.Delete(s.ctx, "user_token", "agent_token"))
	s.NoError(s.store.Delete(s.ctx))
}

func (s *Suite) TestSet_EmptyValue() {
	s.Require().NoError(s.store.Set(s.ctx, "user_token", ""))

	got, err := s.store.Get(s.ctx, "user_token")
	s.Require().NoError(err)
	s.Equal("", got)
}
