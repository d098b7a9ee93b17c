package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	reportapp "github.com/salesreport/backend/internal/application/report"
	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/domain/shared"
	"github.com/salesreport/backend/internal/infrastructure/printing"
	"github.com/salesreport/backend/internal/interfaces/http/dto"
)

func generate(t *testing.T, svc *MockReportGenerator, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := newTestRouter(NewReportHandler(svc).RegisterRoutes)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReportHandler_StreamsPDFAndRemovesIt(t *testing.T) {
	svc := new(MockReportGenerator)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	generated := &reportapp.GeneratedReport{
		Name:  "Distributor_Agency_Product_Report_1700000000000.pdf",
		Path:  "2024/06/Distributor_Agency_Product_Report_1700000000000.pdf",
		Size:  8,
		Pages: 2,
	}

	svc.On("Generate", mock.Anything, mock.MatchedBy(func(req reportapp.GenerateReportRequest) bool {
		return assert.ObjectsAreEqual([]string{"North"}, req.Distributors) &&
			assert.ObjectsAreEqual([]string{"Soap", "Shampoo"}, req.Products) &&
			req.FromDate != nil && req.FromDate.Equal(from) &&
			req.ToDate != nil && req.ToDate.Equal(to) &&
			req.RequestedBy == "alice"
	})).Return(generated, nil)
	svc.On("Open", mock.Anything, generated.Path).Return(io.NopCloser(strings.NewReader("%PDF-1.3")), nil)
	svc.On("Remove", mock.Anything, generated.Path).Return(nil)

	w := generate(t, svc, `{"distributors":["North"],"products":"Soap,Shampoo","fromDate":"2024-01-01","toDate":"2024-06-30"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="`+generated.Name+`"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", w.Header().Get("X-Report-Pages"))
	assert.Equal(t, "%PDF-1.3", w.Body.String())
	svc.AssertExpectations(t)
}

func TestReportHandler_NoData(t *testing.T) {
	svc := new(MockReportGenerator)
	svc.On("Generate", mock.Anything, mock.Anything).Return(nil, report.ErrNoData)

	w := generate(t, svc, `{}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.Equal(t, dto.ErrCodeNoData, resp.Error.Code)
	svc.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestReportHandler_ReversedRange(t *testing.T) {
	svc := new(MockReportGenerator)

	w := generate(t, svc, `{"fromDate":"2024-06-01","toDate":"2024-01-01"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decode(t, w).Error.Code)
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestReportHandler_StorageFailure(t *testing.T) {
	svc := new(MockReportGenerator)
	svc.On("Generate", mock.Anything, mock.Anything).
		Return(nil, &report.SinkWriteError{Path: "r.pdf", Err: errors.New("disk full")})

	w := generate(t, svc, `{}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, dto.ErrCodeStorage, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "disk full")
}

func TestReportHandler_OpenFailureStillRemoves(t *testing.T) {
	svc := new(MockReportGenerator)
	generated := &reportapp.GeneratedReport{Name: "r.pdf", Path: "r.pdf", Size: 1}
	svc.On("Generate", mock.Anything, mock.Anything).Return(generated, nil)
	svc.On("Open", mock.Anything, "r.pdf").
		Return(nil, printing.NewRenderError(printing.ErrCodeNotFound, "document not found", nil))
	svc.On("Remove", mock.Anything, "r.pdf").Return(nil)

	w := generate(t, svc, `{}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertCalled(t, "Remove", mock.Anything, "r.pdf")
}

func TestReportHandler_InvalidInputFromService(t *testing.T) {
	svc := new(MockReportGenerator)
	svc.On("Generate", mock.Anything, mock.Anything).
		Return(nil, shared.ErrInvalidInput.WithMessage("fromDate must not be after toDate"))

	w := generate(t, svc, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidInput, decode(t, w).Error.Code)
}
