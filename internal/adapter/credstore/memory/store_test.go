package memory

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore"
	"github.com/heartmarshall/ecowallet-client/internal/adapter/credstore/storetest"
)

func TestStore_Conformance(t *testing.T) {
	t.Parallel()

	suite.Run(t, &storetest.Suite{
		NewStore: func() credstore.Store { return New() },
	})
}
