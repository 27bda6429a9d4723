package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmlvnk/ST-BookingService/internal/api/handlers"
	"github.com/kmlvnk/ST-BookingService/internal/domain"
	createBooking "github.com/kmlvnk/ST-BookingService/internal/usecase/create_booking"
)

type mockUseCase struct {
	resp    *createBooking.Response
	err     error
	lastReq *createBooking.Request
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

func validBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"date":      "2025-06-10",
		"slotLabel": "10:00",
		"serviceId": 1,
		"customer": map[string]string{
			"name":    "Анна Петрова",
			"email":   "anna@example.com",
			"contact": "+79991234567",
		},
	})
	return body
}

func doRequest(uc CreateBookingUseCase, body []byte) *httptest.ResponseRecorder {
	handler := NewHandler(uc, stubLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &mockUseCase{
		resp: &createBooking.Response{
			ID:           "b-1",
			Date:         time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			SlotLabel:    "10:00",
			ServiceID:    1,
			Customer:     domain.Customer{Name: "Анна Петрова", Email: "anna@example.com", Contact: "+79991234567"},
			Status:       string(domain.StatusConfirmed),
			ServiceName:  "Консультация",
			ServicePrice: 1500,
			CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	rec := doRequest(uc, validBody())

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b-1", resp.ID)
	assert.Equal(t, "2025-06-10", resp.Date)
	assert.Equal(t, "10:00", resp.SlotLabel)
	assert.Equal(t, "confirmed", resp.Status)

	// Дата распарсилась в запрос use case
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), uc.lastReq.Date)
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &mockUseCase{}

	rec := doRequest(uc, []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandle_UnknownField(t *testing.T) {
	uc := &mockUseCase{}

	rec := doRequest(uc, []byte(`{"date":"2025-06-10","unknown":true}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidDateFormat(t *testing.T) {
	uc := &mockUseCase{}

	rec := doRequest(uc, []byte(`{"date":"10.06.2025","slotLabel":"10:00","serviceId":1,"customer":{"name":"a","email":"a@b.c","contact":"1"}}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown slot", createBooking.ErrInvalidSlot, http.StatusBadRequest},
		{"past date", createBooking.ErrPastDate, http.StatusBadRequest},
		{"unknown service", createBooking.ErrInvalidService, http.StatusNotFound},
		{"invalid customer", createBooking.ErrInvalidCustomerInfo, http.StatusBadRequest},
		{"slot taken", createBooking.ErrSlotTaken, http.StatusConflict},
		{"store unavailable", createBooking.ErrStoreUnavailable, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&mockUseCase{err: tt.err}, validBody())

			assert.Equal(t, tt.wantStatus, rec.Code)

			var errResp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, tt.wantStatus, errResp.Code)
			assert.NotEmpty(t, errResp.Message)
		})
	}
}
