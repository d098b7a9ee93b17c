package report

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/domain/shared"
	"github.com/salesreport/backend/internal/infrastructure/printing"
)

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) QueryMonthly(ctx context.Context, filter report.ReportFilter) ([]report.TransactionRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.TransactionRecord), args.Error(1)
}

type MockMonthRepository struct {
	mock.Mock
}

func (m *MockMonthRepository) MonthNames(ctx context.Context) (report.MonthNameLookup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(report.MonthNameLookup), args.Error(1)
}

type MockDocumentSink struct {
	mock.Mock
}

func (m *MockDocumentSink) Store(ctx context.Context, req *printing.StoreRequest) (*printing.StoreResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*printing.StoreResult), args.Error(1)
}

func (m *MockDocumentSink) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockDocumentSink) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

type serviceFixture struct {
	records *MockRecordRepository
	months  *MockMonthRepository
	sink    *MockDocumentSink
	service *ReportService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		records: new(MockRecordRepository),
		months:  new(MockMonthRepository),
		sink:    new(MockDocumentSink),
	}
	pipeline, _ := newTestPipeline()
	f.service = NewReportService(f.records, f.months, f.sink, pipeline, nil)
	f.service.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return f
}

func TestReportService_Generate(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	req := GenerateReportRequest{Distributors: []string{"D1"}, RequestedBy: "alice"}

	f.records.On("QueryMonthly", mock.Anything, req.Filter()).
		Return([]report.TransactionRecord{rec("D1", "", "A1", "P1", 2024, 1, "100", "2")}, nil)
	f.months.On("MonthNames", mock.Anything).Return(report.DefaultMonthNames(), nil)
	f.sink.On("Store", mock.Anything, mock.MatchedBy(func(r *printing.StoreRequest) bool {
		return r.Name == "Distributor_Agency_Product_Report_1700000000123.pdf" &&
			r.ContentType == "application/pdf" && len(r.Data) > 0
	})).Return(&printing.StoreResult{Path: "2023/11/x.pdf", URL: "/reports/2023/11/x.pdf", Size: 42}, nil)

	out, err := f.service.Generate(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, "Distributor_Agency_Product_Report_1700000000123.pdf", out.Name)
	assert.Equal(t, "2023/11/x.pdf", out.Path)
	assert.Equal(t, int64(42), out.Size)
	assert.Equal(t, 1, out.Pages)
	f.records.AssertExpectations(t)
	f.sink.AssertExpectations(t)
}

func TestReportService_Generate_NoData(t *testing.T) {
	f := newServiceFixture()
	f.records.On("QueryMonthly", mock.Anything, mock.Anything).Return([]report.TransactionRecord{}, nil)

	_, err := f.service.Generate(context.Background(), GenerateReportRequest{})

	assert.True(t, errors.Is(err, report.ErrNoData))
	f.sink.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestReportService_Generate_InvalidRange(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.Generate(context.Background(), GenerateReportRequest{FromDate: date(2024, 5, 1), ToDate: date(2024, 1, 1)})

	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	f.records.AssertNotCalled(t, "QueryMonthly", mock.Anything, mock.Anything)
}

func TestReportService_Generate_SinkFailure(t *testing.T) {
	f := newServiceFixture()
	f.records.On("QueryMonthly", mock.Anything, mock.Anything).
		Return([]report.TransactionRecord{rec("D1", "", "A1", "P1", 2024, 1, "1", "")}, nil)
	f.months.On("MonthNames", mock.Anything).Return(nil, errors.New("db down"))
	diskFull := errors.New("disk full")
	f.sink.On("Store", mock.Anything, mock.Anything).Return(nil, diskFull)

	_, err := f.service.Generate(context.Background(), GenerateReportRequest{})

	var sinkErr *report.SinkWriteError
	require.True(t, errors.As(err, &sinkErr))
	assert.True(t, strings.HasPrefix(sinkErr.Path, ReportFilePrefix))
	assert.True(t, errors.Is(err, diskFull))
}

func TestReportService_Generate_QueryFailure(t *testing.T) {
	f := newServiceFixture()
	f.records.On("QueryMonthly", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := f.service.Generate(context.Background(), GenerateReportRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query report records")
}

func TestReportService_OpenAndRemove(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	f.sink.On("Open", ctx, "a.pdf").Return(io.NopCloser(strings.NewReader("%PDF")), nil)
	f.sink.On("Delete", ctx, "a.pdf").Return(nil)

	rc, err := f.service.Open(ctx, "a.pdf")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "%PDF", string(body))

	require.NoError(t, f.service.Remove(ctx, "a.pdf"))
	f.sink.AssertExpectations(t)
}
