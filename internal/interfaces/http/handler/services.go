package handler

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/salesreport/backend/internal/application/identity"
	reportapp "github.com/salesreport/backend/internal/application/report"
	salesapp "github.com/salesreport/backend/internal/application/sales"
	"github.com/salesreport/backend/internal/domain/sales"
)

// The handlers depend on these narrow views of the application services.

// ReportGenerator renders, streams and discards reports
type ReportGenerator interface {
	Generate(ctx context.Context, req reportapp.GenerateReportRequest) (*reportapp.GeneratedReport, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, path string) error
}

// SheetManager ingests and removes uploaded sheets
type SheetManager interface {
	Upload(ctx context.Context, req salesapp.UploadSheetRequest) (*salesapp.UploadResult, error)
	List(ctx context.Context) ([]salesapp.SheetResponse, error)
	Remove(ctx context.Context, id uuid.UUID, removedBy string) (*salesapp.SheetResponse, error)
	History(ctx context.Context) ([]salesapp.HistoryResponse, error)
}

// LookupReader serves report filter values
type LookupReader interface {
	Values(ctx context.Context, field sales.LookupField) ([]string, error)
	Years(ctx context.Context) ([]int, error)
	Months(ctx context.Context) ([]salesapp.MonthResponse, error)
}

// Authenticator registers and logs in users
type Authenticator interface {
	Register(ctx context.Context, input identity.RegisterInput) (*identity.UserInfo, error)
	Login(ctx context.Context, input identity.LoginInput) (*identity.LoginResult, error)
}

// Pinger checks a dependency, usually the database
type Pinger interface {
	Ping() error
}

var (
	_ ReportGenerator = (*reportapp.ReportService)(nil)
	_ SheetManager    = (*salesapp.SheetService)(nil)
	_ LookupReader    = (*salesapp.LookupService)(nil)
	_ Authenticator   = (*identity.AuthService)(nil)
)
