package db_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/udisondev/nucleotide/internal/db"
	"github.com/udisondev/nucleotide/internal/model"
	"github.com/udisondev/nucleotide/internal/testutil"
)

type RunRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	dsn  string
	repo *db.RunRepository
}

func TestRunRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	suite.Run(t, new(RunRepositorySuite))
}

func (s *RunRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	pool := testutil.SetupTestDB(s.T())
	s.dsn = pool.Config().ConnString()
	s.repo = db.NewRunRepository(pool)
}

func (s *RunRepositorySuite) newRun() *model.RunRecord {
	run := model.NewRunRecord(42, "fingerprint", testutil.NewPlayer())
	s.Require().NoError(s.repo.StartRun(s.ctx, run))
	return run
}

func (s *RunRepositorySuite) TestStartAndGet() {
	run := s.newRun()

	got, err := s.repo.GetRun(s.ctx, run.ID)
	s.Require().NoError(err)

	s.Equal(run.ID, got.ID)
	s.Equal(int64(42), got.Seed)
	s.Equal("fingerprint", got.Fingerprint)
	s.Equal(testutil.DefaultGenome, got.Genome)
	s.Equal(model.OutcomeInProgress, got.Outcome)
	s.Nil(got.FinishedAt)
}

func (s *RunRepositorySuite) TestGetRun_NotFound() {
	_, err := s.repo.GetRun(s.ctx, uuid.New())
	s.ErrorIs(err, db.ErrRunNotFound)
}

func (s *RunRepositorySuite) TestRecordBattles() {
	run := s.newRun()

	s.Require().NoError(s.repo.RecordBattle(s.ctx, model.BattleRecord{
		RunID: run.ID, Index: 2, Enemies: []string{"Bat", "Slime"}, Outcome: model.OutcomeRanAway, Ticks: 40, PlayerHealth: 12,
	}))
	s.Require().NoError(s.repo.RecordBattle(s.ctx, model.BattleRecord{
		RunID: run.ID, Index: 1, Enemies: []string{"Viper"}, Outcome: model.OutcomeWon, Ticks: 80, PlayerHealth: 250, RewardGene: "Sting",
	}))

	battles, err := s.repo.ListBattles(s.ctx, run.ID)
	s.Require().NoError(err)
	s.Require().Len(battles, 2)

	s.Equal(1, battles[0].Index)
	s.Equal([]string{"Viper"}, battles[0].Enemies)
	s.Equal(uint8(250), battles[0].PlayerHealth)
	s.Equal("Sting", battles[0].RewardGene)
	s.Equal(model.OutcomeRanAway, battles[1].Outcome)
	s.Empty(battles[1].RewardGene)
}

func (s *RunRepositorySuite) TestRecordBattle_Overwrites() {
	run := s.newRun()
	b := model.BattleRecord{RunID: run.ID, Index: 1, Enemies: []string{"Bat"}, Outcome: model.OutcomeWon, Ticks: 10}

	s.Require().NoError(s.repo.RecordBattle(s.ctx, b))
	b.RewardGene = "Bite"
	s.Require().NoError(s.repo.RecordBattle(s.ctx, b))

	battles, err := s.repo.ListBattles(s.ctx, run.ID)
	s.Require().NoError(err)
	s.Require().Len(battles, 1)
	s.Equal("Bite", battles[0].RewardGene)
}

func (s *RunRepositorySuite) TestFinishRun() {
	run := s.newRun()
	genome := append(testutil.DefaultGenome[:len(testutil.DefaultGenome):len(testutil.DefaultGenome)], "Bite")

	s.Require().NoError(s.repo.FinishRun(s.ctx, run.ID, model.OutcomeVictory, 3, genome))

	got, err := s.repo.GetRun(s.ctx, run.ID)
	s.Require().NoError(err)
	s.Equal(model.OutcomeVictory, got.Outcome)
	s.Equal(3, got.BattlesWon)
	s.Equal(genome, got.Genome)
	s.NotNil(got.FinishedAt)
}

func (s *RunRepositorySuite) TestFinishRun_NotFound() {
	err := s.repo.FinishRun(s.ctx, uuid.New(), model.OutcomeLost, 0, []string{"Idle"})
	s.ErrorIs(err, db.ErrRunNotFound)
}

func (s *RunRepositorySuite) TestRecentRuns() {
	first := s.newRun()
	second := s.newRun()

	runs, err := s.repo.RecentRuns(s.ctx, 100)
	s.Require().NoError(err)

	ids := make([]uuid.UUID, 0, len(runs))
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	s.Contains(ids, first.ID)
	s.Contains(ids, second.ID)
}

func (s *RunRepositorySuite) TestSchemaVersion() {
	version, err := db.SchemaVersion(s.ctx, s.dsn)
	s.Require().NoError(err)
	s.Equal(int64(1), version)
}
