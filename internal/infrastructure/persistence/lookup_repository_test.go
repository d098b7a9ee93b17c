package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesreport/backend/internal/domain/sales"
)

func TestGormLookupRepository(t *testing.T) {
	db := newSQLiteDatabase(t)
	seedUpload(t, db,
		line(day(2023, 12, 5), "D2", "R1", "A1", "P1", "1", "1"),
		line(day(2024, 1, 5), "D1", "", "A2", "P1", "1", "1"),
		line(day(2024, 1, 6), "D1", "R2", "A1", "P2", "1", "1"),
	)
	repo := NewGormLookupRepository(db.DB)
	ctx := context.Background()

	distributors, err := repo.Distinct(ctx, sales.LookupDistributors)
	require.NoError(t, err)
	assert.Equal(t, []string{"D1", "D2"}, distributors)

	reps, err := repo.Distinct(ctx, sales.LookupSalesReps)
	require.NoError(t, err)
	assert.Equal(t, []string{"R1", "R2"}, reps)

	_, err = repo.Distinct(ctx, sales.LookupField("brands"))
	assert.Error(t, err)

	years, err := repo.Years(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, years)

	months, err := repo.Months(ctx)
	require.NoError(t, err)
	require.Len(t, months, 12)
	assert.Equal(t, sales.Month{ID: 1, Name: "January"}, months[0])

	names, err := repo.MonthNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, "December", names[12])
}
