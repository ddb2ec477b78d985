package repository

import (
	"context"
	"errors"
	"testing"

	"veggie-market/internal/testutil/pgtest"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countVegetableRows(t *testing.T, db *pgtest.TestDB) int {
	t.Helper()

	var count int
	err := db.Pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM vegetables").Scan(&count)
	require.NoError(t, err)
	return count
}

func TestWithTx(t *testing.T) {
	db := pgtest.Start(t)
	ctx := context.Background()

	insert := `INSERT INTO vegetables (id, name, unit_price) VALUES (gen_random_uuid(), 'leek', 80)`

	t.Run("Commits on success", func(t *testing.T) {
		db.Truncate(t)

		err := withTx(ctx, db.Pool, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, insert)
			return err
		})

		require.NoError(t, err)
		assert.Equal(t, 1, countVegetableRows(t, db))
	})

	t.Run("Rolls back on error", func(t *testing.T) {
		db.Truncate(t)
		boom := errors.New("boom")

		err := withTx(ctx, db.Pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, insert); err != nil {
				return err
			}
			return boom
		})

		require.ErrorIs(t, err, boom)
		assert.Equal(t, 0, countVegetableRows(t, db))
	})

	t.Run("Fails to begin on closed pool", func(t *testing.T) {
		closed := pgtest.Start(t)
		closed.Pool.Close()

		err := withTx(ctx, closed.Pool, func(tx pgx.Tx) error {
			t.Error("fn should not be called")
			return nil
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to begin transaction")
	})
}
