package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	reportapp "github.com/courierlog/backend/internal/application/report"
	"github.com/courierlog/backend/internal/domain/report"
	"github.com/courierlog/backend/internal/infrastructure/excel"
)

// MockScanRowRepository is a mock implementation of report.ScanRowRepository
type MockScanRowRepository struct {
	mock.Mock
}

func (m *MockScanRowRepository) FindScanRows(ctx context.Context, start, end time.Time) ([]report.ScanRow, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.ScanRow), args.Error(1)
}

func newReportRouter(repo *MockScanRowRepository, now time.Time) *gin.Engine {
	engine := gin.New()
	svc := reportapp.NewPayrollService(repo).WithClock(func() time.Time { return now })
	NewReportHandler(svc, excel.NewPayrollExporter()).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestReportHandlerWeeklyPayroll(t *testing.T) {
	// Thursday; the default week starts Monday the 6th.
	now := time.Date(2024, 5, 9, 10, 0, 0, 0, time.UTC)
	weekStart := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)

	rows := []report.ScanRow{
		{DriverName: "Ann Ba", DriverEmail: "ann@example.com", DeliveryDate: weekStart, GroupCode: "A1", ScannerCode: "SC-001", DeliveredCount: 5},
		{DriverName: "Ann Ba", DriverEmail: "ann@example.com", DeliveryDate: weekStart.AddDate(0, 0, 1), GroupCode: "B2", ScannerCode: "SC-002", DeliveredCount: 3},
	}

	t.Run("streams the workbook", func(t *testing.T) {
		repo := new(MockScanRowRepository)
		repo.On("FindScanRows", mock.Anything, weekStart, weekEnd).Return(rows, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/reports/payroll/weekly", nil)
		newReportRouter(repo, now).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="payroll_week_2024-05-06.xlsx"`, w.Header().Get("Content-Disposition"))

		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()

		total, err := f.GetCellValue("Weekly Payroll", "C2")
		require.NoError(t, err)
		assert.Equal(t, "8", total)
	})

	t.Run("explicit weekStart snaps to Monday", func(t *testing.T) {
		repo := new(MockScanRowRepository)
		repo.On("FindScanRows", mock.Anything,
			time.Date(2024, 4, 29, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)).Return([]report.ScanRow{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/reports/payroll/weekly?weekStart=2024-05-01", nil)
		newReportRouter(repo, now).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("empty week is a plaintext notice", func(t *testing.T) {
		repo := new(MockScanRowRepository)
		repo.On("FindScanRows", mock.Anything, weekStart, weekEnd).Return([]report.ScanRow{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/reports/payroll/weekly", nil)
		newReportRouter(repo, now).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "No deliveries found for week starting 2024-05-06", w.Body.String())
		assert.NotEqual(t, xlsxContentType, w.Header().Get("Content-Type"))
	})

	t.Run("malformed weekStart is a plaintext 400", func(t *testing.T) {
		repo := new(MockScanRowRepository)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/reports/payroll/weekly?weekStart=05/01/2024", nil)
		newReportRouter(repo, now).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid date")
		repo.AssertNotCalled(t, "FindScanRows", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure is a plaintext 500", func(t *testing.T) {
		repo := new(MockScanRowRepository)
		repo.On("FindScanRows", mock.Anything, weekStart, weekEnd).Return(nil, assert.AnError)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/reports/payroll/weekly", nil)
		newReportRouter(repo, now).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "An unexpected error occurred", w.Body.String())
	})
}
