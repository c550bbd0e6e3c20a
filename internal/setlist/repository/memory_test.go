package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MemoryStoreTestSuite struct {
	StoreSuite
}

func (s *MemoryStoreTestSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
	s.testNow = time.Date(2026, 5, 2, 21, 0, 0, 0, time.UTC)
}

func TestMemoryStoreTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}
