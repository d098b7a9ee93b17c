package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	salesapp "github.com/salesreport/backend/internal/application/sales"
	"github.com/salesreport/backend/internal/domain/sales"
)

func TestLookupHandler_Routes(t *testing.T) {
	svc := new(MockLookupReader)
	for _, f := range sales.LookupFields {
		svc.On("Values", mock.Anything, f).Return([]string{string(f) + "-1"}, nil)
	}
	svc.On("Months", mock.Anything).Return([]salesapp.MonthResponse{{ID: 1, Name: "January"}}, nil)
	svc.On("Years", mock.Anything).Return([]int{2023, 2024}, nil)
	r := newTestRouter(NewLookupHandler(svc).RegisterRoutes)

	for _, f := range sales.LookupFields {
		t.Run(string(f), func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/lookups/"+string(f), nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"success":true,"data":["`+string(f)+`-1"]}`, w.Body.String())
		})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/lookups/months", nil))
	assert.JSONEq(t, `{"success":true,"data":[{"id":1,"name":"January"}]}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/lookups/years", nil))
	assert.JSONEq(t, `{"success":true,"data":[2023,2024]}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/lookups/brands", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLookupHandler_Error(t *testing.T) {
	svc := new(MockLookupReader)
	svc.On("Years", mock.Anything).Return(nil, errors.New("db down"))
	r := newTestRouter(NewLookupHandler(svc).RegisterRoutes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/lookups/years", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
