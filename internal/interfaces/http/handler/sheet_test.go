package handler

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	salesapp "github.com/salesreport/backend/internal/application/sales"
	"github.com/salesreport/backend/internal/domain/shared"
	"github.com/salesreport/backend/internal/interfaces/http/dto"
)

var testLimits = UploadLimits{MaxSize: 1 << 20, AllowedExtensions: []string{".xlsx", ".csv"}}

func multipartBody(t *testing.T, name, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if name != "" {
		require.NoError(t, mw.WriteField("name", name))
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func upload(t *testing.T, svc *MockSheetManager, limits UploadLimits, name, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, name, fileName, content)
	r := newTestRouter(NewSheetHandler(svc, limits).RegisterRoutes)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sheets/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSheetHandler_Upload(t *testing.T) {
	svc := new(MockSheetManager)
	result := &salesapp.UploadResult{Sheet: salesapp.SheetResponse{Name: "March", RecordsCount: 2}, Inserted: 2}
	svc.On("Upload", mock.Anything, mock.MatchedBy(func(req salesapp.UploadSheetRequest) bool {
		data, _ := io.ReadAll(req.Content)
		return req.Name == "March" && req.FileName == "march.csv" &&
			req.UploadedBy == "alice" && string(data) == "Date,SBU\n"
	})).Return(result, nil)

	w := upload(t, svc, testLimits, "March", "march.csv", []byte("Date,SBU\n"))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, decode(t, w).Success)
	svc.AssertExpectations(t)
}

func TestSheetHandler_UploadDefaultsNameToFileName(t *testing.T) {
	svc := new(MockSheetManager)
	svc.On("Upload", mock.Anything, mock.MatchedBy(func(req salesapp.UploadSheetRequest) bool {
		return req.Name == "april-2024"
	})).Return(&salesapp.UploadResult{}, nil)

	w := upload(t, svc, testLimits, "", "april-2024.xlsx", []byte("PK"))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSheetHandler_UploadRejections(t *testing.T) {
	tests := []struct {
		name     string
		limits   UploadLimits
		fileName string
		content  []byte
		status   int
		code     string
	}{
		{"no file", testLimits, "", nil, http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"wrong extension", testLimits, "report.pdf", []byte("x"), http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"too large", UploadLimits{MaxSize: 4, AllowedExtensions: []string{".csv"}}, "big.csv", []byte("0123456789"), http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSheetManager)
			w := upload(t, svc, tt.limits, "x", tt.fileName, tt.content)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
			svc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
		})
	}
}

func TestSheetHandler_UploadMissingColumns(t *testing.T) {
	svc := new(MockSheetManager)
	svc.On("Upload", mock.Anything, mock.Anything).
		Return(nil, shared.ErrInvalidInput.WithMessage("missing required columns: Area"))

	w := upload(t, svc, testLimits, "x", "x.csv", []byte("Date\n"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing required columns: Area", decode(t, w).Error.Message)
}

func TestSheetHandler_ListAndHistory(t *testing.T) {
	svc := new(MockSheetManager)
	svc.On("List", mock.Anything).Return([]salesapp.SheetResponse{{Name: "March"}}, nil)
	svc.On("History", mock.Anything).Return([]salesapp.HistoryResponse{{SheetName: "March (2)", Action: "uploaded"}}, nil)
	r := newTestRouter(NewSheetHandler(svc, testLimits).RegisterRoutes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sheets", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"March"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sheets/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sheet_name":"March (2)"`)
}

func TestSheetHandler_Remove(t *testing.T) {
	id := uuid.New()
	svc := new(MockSheetManager)
	svc.On("Remove", mock.Anything, id, "alice").Return(&salesapp.SheetResponse{ID: id}, nil)
	r := newTestRouter(NewSheetHandler(svc, testLimits).RegisterRoutes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/sheets/"+id.String(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSheetHandler_RemoveErrors(t *testing.T) {
	svc := new(MockSheetManager)
	missing := uuid.New()
	svc.On("Remove", mock.Anything, missing, "alice").Return(nil, shared.ErrNotFound)
	broken := uuid.New()
	svc.On("Remove", mock.Anything, broken, "alice").Return(nil, errors.New("connection refused"))
	r := newTestRouter(NewSheetHandler(svc, testLimits).RegisterRoutes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/sheets/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/sheets/"+missing.String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decode(t, w).Error.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/sheets/"+broken.String(), nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
