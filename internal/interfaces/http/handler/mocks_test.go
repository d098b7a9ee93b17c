package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salesreport/backend/internal/application/identity"
	reportapp "github.com/salesreport/backend/internal/application/report"
	salesapp "github.com/salesreport/backend/internal/application/sales"
	"github.com/salesreport/backend/internal/domain/sales"
	"github.com/salesreport/backend/internal/interfaces/http/dto"
	"github.com/salesreport/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// newTestRouter mounts a registrar under /api/v1 with the request id
// middleware and a fixed authenticated user.
func newTestRouter(register func(rg *gin.RouterGroup)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Set(middleware.JWTUsernameKey, "alice")
		c.Next()
	})
	register(api)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) Generate(ctx context.Context, req reportapp.GenerateReportRequest) (*reportapp.GeneratedReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportapp.GeneratedReport), args.Error(1)
}

func (m *MockReportGenerator) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockReportGenerator) Remove(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

type MockSheetManager struct {
	mock.Mock
}

func (m *MockSheetManager) Upload(ctx context.Context, req salesapp.UploadSheetRequest) (*salesapp.UploadResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.UploadResult), args.Error(1)
}

func (m *MockSheetManager) List(ctx context.Context) ([]salesapp.SheetResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]salesapp.SheetResponse), args.Error(1)
}

func (m *MockSheetManager) Remove(ctx context.Context, id uuid.UUID, removedBy string) (*salesapp.SheetResponse, error) {
	args := m.Called(ctx, id, removedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SheetResponse), args.Error(1)
}

func (m *MockSheetManager) History(ctx context.Context) ([]salesapp.HistoryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]salesapp.HistoryResponse), args.Error(1)
}

type MockLookupReader struct {
	mock.Mock
}

func (m *MockLookupReader) Values(ctx context.Context, field sales.LookupField) ([]string, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLookupReader) Years(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockLookupReader) Months(ctx context.Context) ([]salesapp.MonthResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]salesapp.MonthResponse), args.Error(1)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Register(ctx context.Context, input identity.RegisterInput) (*identity.UserInfo, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserInfo), args.Error(1)
}

func (m *MockAuthenticator) Login(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.LoginResult), args.Error(1)
}
