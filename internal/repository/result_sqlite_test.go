package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteResultRepository_SaveAndGetByID(t *testing.T) {
	ctx, st := suite.NewSQLite(t)

	resultRepo := NewSQLiteResultRepository(st.SQLite.Connection)

	// Given: a finished game won by the computer
	result := newResult("quiet-lynx-7", entity.MarkO, entity.MarkX, false)

	// When: it is saved and read back
	require.NoError(t, resultRepo.Save(ctx, result))
	retrieved, err := resultRepo.GetByID(ctx, result.ID)

	// Then: the stored record matches
	require.NoError(t, err)
	assert.Equal(t, result, retrieved)
}

func TestSQLiteResultRepository_SaveDuplicateID(t *testing.T) {
	ctx, st := suite.NewSQLite(t)

	resultRepo := NewSQLiteResultRepository(st.SQLite.Connection)

	result := newResult("same", entity.MarkX, entity.MarkNone, true)
	require.NoError(t, resultRepo.Save(ctx, result))

	err := resultRepo.Save(ctx, result)

	require.Error(t, err)
}

func TestSQLiteResultRepository_GetByID_NotFound(t *testing.T) {
	ctx, st := suite.NewSQLite(t)

	resultRepo := NewSQLiteResultRepository(st.SQLite.Connection)

	retrieved, err := resultRepo.GetByID(ctx, "9999999")

	require.ErrorIs(t, err, ErrResultNotFound)
	assert.Nil(t, retrieved)
}

func TestSQLiteResultRepository_Tally(t *testing.T) {
	t.Run("Empty table", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		resultRepo := NewSQLiteResultRepository(st.SQLite.Connection)

		tally, err := resultRepo.Tally(ctx)

		require.NoError(t, err)
		assert.Equal(t, &entity.Tally{}, tally)
	})

	t.Run("Counts every outcome", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		resultRepo := NewSQLiteResultRepository(st.SQLite.Connection)

		// Given: one human win, two draws and one computer win
		for _, result := range []*entity.Result{
			newResult("a", entity.MarkO, entity.MarkO, false),
			newResult("b", entity.MarkX, entity.MarkNone, true),
			newResult("c", entity.MarkO, entity.MarkNone, true),
			newResult("d", entity.MarkO, entity.MarkX, false),
		} {
			require.NoError(t, resultRepo.Save(ctx, result))
		}

		// When: the scoreboard is computed
		tally, err := resultRepo.Tally(ctx)

		// Then: each outcome is counted once
		require.NoError(t, err)
		assert.Equal(t, &entity.Tally{HumanWins: 1, ComputerWins: 1, Draws: 2}, tally)
	})
}
