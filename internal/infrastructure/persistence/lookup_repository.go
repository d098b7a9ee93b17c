package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/domain/sales"
	"github.com/salesreport/backend/internal/infrastructure/persistence/models"
)

var lookupColumns = map[sales.LookupField]string{
	sales.LookupDistributors: "distributor",
	sales.LookupAgencies:     "agency",
	sales.LookupProducts:     "product",
	sales.LookupSalesReps:    "sales_rep",
	sales.LookupCustomers:    "customer",
	sales.LookupAreas:        "area",
}

// GormLookupRepository serves distinct filter values and the month table
type GormLookupRepository struct {
	db *gorm.DB
}

// NewGormLookupRepository creates a new GormLookupRepository
func NewGormLookupRepository(db *gorm.DB) *GormLookupRepository {
	return &GormLookupRepository{db: db}
}

// Distinct returns the sorted non-empty values of field
func (r *GormLookupRepository) Distinct(ctx context.Context, field sales.LookupField) ([]string, error) {
	column, ok := lookupColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown lookup %q", field)
	}

	values := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&models.SalesRecordModel{}).
		Distinct(column).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", field, err)
	}
	return values, nil
}

// Years returns the distinct transaction years, ascending
func (r *GormLookupRepository) Years(ctx context.Context) ([]int, error) {
	year, _ := yearMonthExpr(r.db)
	years := make([]int, 0)
	err := r.db.WithContext(ctx).Model(&models.SalesRecordModel{}).
		Where("txn_date IS NOT NULL").
		Distinct(year).
		Order(year).
		Pluck(year, &years).Error
	if err != nil {
		return nil, fmt.Errorf("lookup years: %w", err)
	}
	return years, nil
}

// Months returns the month reference table ordered by id
func (r *GormLookupRepository) Months(ctx context.Context) ([]sales.Month, error) {
	var rows []models.MonthModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lookup months: %w", err)
	}
	months := make([]sales.Month, len(rows))
	for i, m := range rows {
		months[i] = sales.Month{ID: m.ID, Name: m.Name}
	}
	return months, nil
}

// MonthNames implements report.MonthRepository
func (r *GormLookupRepository) MonthNames(ctx context.Context) (report.MonthNameLookup, error) {
	months, err := r.Months(ctx)
	if err != nil {
		return nil, err
	}
	names := make(report.MonthNameLookup, len(months))
	for _, m := range months {
		names[m.ID] = m.Name
	}
	return names, nil
}

// SeedMonths inserts January..December, leaving existing rows untouched
func SeedMonths(db *gorm.DB) error {
	rows := make([]models.MonthModel, 0, 12)
	for m := time.January; m <= time.December; m++ {
		rows = append(rows, models.MonthModel{ID: int(m), Name: m.String()})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("seed months: %w", err)
	}
	return nil
}
