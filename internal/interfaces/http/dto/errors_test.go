package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeNoData, http.StatusNotFound},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeStorage, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNoData, NormalizeErrorCode("NO_DATA"))
	assert.Equal(t, ErrCodeAlreadyExists, NormalizeErrorCode("ALREADY_EXISTS"))
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "CUSTOM", NormalizeErrorCode("CUSTOM"))
}

func TestErrorResponseShape(t *testing.T) {
	body, err := json.Marshal(NewErrorResponseWithRequestID(ErrCodeNoData, "nothing", "req-1"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"success":false,"error":{"code":"ERR_NO_DATA","message":"nothing","request_id":"req-1"}}`,
		string(body))

	body, err = json.Marshal(NewSuccessResponse([]string{"a"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":["a"]}`, string(body))
}

func TestStringList(t *testing.T) {
	var req GenerateReportRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"distributors": ["North", " South "],
		"products": "Soap, Shampoo,,",
		"areas": []
	}`), &req))

	assert.Equal(t, StringList{"North", "South"}, req.Distributors)
	assert.Equal(t, StringList{"Soap", "Shampoo"}, req.Products)
	assert.Empty(t, req.Areas)
	assert.Nil(t, req.Agencies)

	assert.Error(t, json.Unmarshal([]byte(`{"products": 5}`), &req))
}

func TestGenerateReportRequest_ToServiceRequest(t *testing.T) {
	req := GenerateReportRequest{
		SalesReps: StringList{"Ann"},
		FromDate:  "2024-01-01",
		ToDate:    "2024-03-31",
	}
	svc, err := req.ToServiceRequest("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann"}, svc.SalesReps)
	assert.Equal(t, "alice", svc.RequestedBy)
	require.NotNil(t, svc.FromDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *svc.FromDate)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), *svc.ToDate)

	open, err := GenerateReportRequest{}.ToServiceRequest("")
	require.NoError(t, err)
	assert.Nil(t, open.FromDate)
	assert.Nil(t, open.ToDate)

	_, err = GenerateReportRequest{FromDate: "01/02/2024"}.ToServiceRequest("")
	assert.Error(t, err)
}
