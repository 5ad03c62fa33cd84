package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/dailydle/internal/repository"
	"github.com/vytor/dailydle/internal/repository/sqlite"
	"github.com/vytor/dailydle/internal/testutil"
)

type KVRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.KeyValueStore
}

func (s *KVRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewKVRepository(s.db)
}

func (s *KVRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *KVRepositorySuite) TestGet_Missing() {
	value, found, err := s.repo.Get(context.Background(), "player-1", repository.ProgressKey)
	s.Require().NoError(err)
	s.Assert().False(found)
	s.Assert().Empty(value)
}

func (s *KVRepositorySuite) TestSetThenGet() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "player-1", repository.ProgressKey, `{"date":"2025-3-30"}`))

	value, found, err := s.repo.Get(ctx, "player-1", repository.ProgressKey)
	s.Require().NoError(err)
	s.Assert().True(found)
	s.Assert().Equal(`{"date":"2025-3-30"}`, value)
}

func (s *KVRepositorySuite) TestSet_Overwrites() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "player-1", repository.StatsKey, "first"))
	s.Require().NoError(s.repo.Set(ctx, "player-1", repository.StatsKey, "second"))

	value, _, err := s.repo.Get(ctx, "player-1", repository.StatsKey)
	s.Require().NoError(err)
	s.Assert().Equal("second", value)
}

func (s *KVRepositorySuite) TestScopesAreIsolated() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "player-1", repository.StatsKey, "one"))
	s.Require().NoError(s.repo.Set(ctx, "player-2", repository.StatsKey, "two"))

	value, _, err := s.repo.Get(ctx, "player-1", repository.StatsKey)
	s.Require().NoError(err)
	s.Assert().Equal("one", value)

	value, _, err = s.repo.Get(ctx, "player-2", repository.StatsKey)
	s.Require().NoError(err)
	s.Assert().Equal("two", value)
}

func (s *KVRepositorySuite) TestPing() {
	s.Assert().NoError(s.repo.Ping(context.Background()))
}

func TestKVRepositorySuite(t *testing.T) {
	suite.Run(t, new(KVRepositorySuite))
}
