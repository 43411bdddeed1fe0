package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

const reportBody = `{
	"work_date": "2025-06-02",
	"foreman_id": 3,
	"project_id": 9,
	"arrival_time": "07:00",
	"departure_time": "15:30",
	"billable_work": true,
	"per_diem": true,
	"laborers": [4, 5],
	"machines": [12],
	"items": [
		{"item_name": "Asphalt patch", "quantity": 12, "unit": "sqft", "location_description": "North lane", "latitude": 41.88, "longitude": -87.63, "duration_hours": 2, "notes": "hot mix"},
		{"item_name": "Crack seal", "quantity": 300, "unit": "lf", "location_description": "Shoulder", "duration_hours": 3},
		{"item_name": "Striping", "quantity": 80, "unit": "lf", "location_description": "Crosswalk", "duration_hours": 1}
	]
}`

func TestSubmitDWR_RequiresPost(t *testing.T) {
	ta := setupAPI(t, defaultOptions())

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := ta.do(method, "/api/submit-dwr", "")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.JSONEq(t, `{"error":"POST required"}`, rec.Body.String(), method)
		assertCORS(t, rec)
	}
	assert.NoError(t, ta.mock.ExpectationsWereMet())
}

func TestSubmitDWR_StoresHeaderAndChildren(t *testing.T) {
	ta := setupAPI(t, defaultOptions())
	mock := ta.mock

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO daily_work_reports`).
		WithArgs("2025-06-02", "3", "9", "07:00", "15:30", nil, nil, true, nil, true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
	mock.ExpectExec(`INSERT INTO dwr_crew_members`).WithArgs(101, "4").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO dwr_crew_members`).WithArgs(101, "5").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(`INSERT INTO dwr_machines`).WithArgs(101, "12").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO dwr_items`).
		WithArgs(101, "Asphalt patch", "12", "sqft", "North lane", "41.88", "-87.63", "2", "hot mix", 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO dwr_items`).
		WithArgs(101, "Crack seal", "300", "lf", "Shoulder", nil, nil, "3", nil, 2).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(`INSERT INTO dwr_items`).
		WithArgs(101, "Striping", "80", "lf", "Crosswalk", nil, nil, "1", nil, 3).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	rec := ta.do(http.MethodPost, "/api/submit-dwr", reportBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"id":101,"message":"DWR submitted successfully"}`, rec.Body.String())
	assertCORS(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())

	metricsRec := ta.do(http.MethodGet, "/metrics", "")
	assert.Contains(t, metricsRec.Body.String(), "dwr_api_dwr_submitted_total 1")
	assert.Contains(t, metricsRec.Body.String(), "dwr_api_dwr_items_total 3")
}

func TestSubmitDWR_WithoutChildArrays(t *testing.T) {
	ta := setupAPI(t, defaultOptions())

	ta.mock.ExpectBegin()
	ta.mock.ExpectQuery(`INSERT INTO daily_work_reports`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(102))
	ta.mock.ExpectCommit()

	body := `{"work_date": "2025-06-02", "foreman_id": 3, "project_id": 9, "laborers": [], "items": null}`
	rec := ta.do(http.MethodPost, "/api/submit-dwr", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"id":102,"message":"DWR submitted successfully"}`, rec.Body.String())
	assert.NoError(t, ta.mock.ExpectationsWereMet())
}

func TestSubmitDWR_ChildFailureIsServerError(t *testing.T) {
	ta := setupAPI(t, defaultOptions())

	ta.mock.ExpectBegin()
	ta.mock.ExpectQuery(`INSERT INTO daily_work_reports`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(103))
	ta.mock.ExpectExec(`INSERT INTO dwr_crew_members`).
		WillReturnError(errors.New(`violates foreign key constraint "dwr_crew_members_laborer_id_fkey"`))
	ta.mock.ExpectRollback()

	rec := ta.do(http.MethodPost, "/api/submit-dwr", reportBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "dwr_crew_members_laborer_id_fkey")
	assert.NoError(t, ta.mock.ExpectationsWereMet())

	metricsRec := ta.do(http.MethodGet, "/metrics", "")
	assert.Contains(t, metricsRec.Body.String(), "dwr_api_dwr_submit_errors_total 1")
}

func TestSubmitDWR_MalformedBody(t *testing.T) {
	ta := setupAPI(t, defaultOptions())

	rec := ta.do(http.MethodPost, "/api/submit-dwr", `{"work_date": `)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
	assert.NoError(t, ta.mock.ExpectationsWereMet())
}

func TestSubmitDWR_EmptyBody(t *testing.T) {
	ta := setupAPI(t, defaultOptions())

	rec := ta.do(http.MethodPost, "/api/submit-dwr", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"request body is empty"}`, rec.Body.String())
}

func TestSubmitDWR_BodyTooLarge(t *testing.T) {
	opts := defaultOptions()
	opts.MaxBodyBytes = 64
	ta := setupAPI(t, opts)

	body := `{"maybe_explanation": "` + strings.Repeat("x", 128) + `"}`
	rec := ta.do(http.MethodPost, "/api/submit-dwr", body)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"request body exceeds 64 bytes"}`, rec.Body.String())
	assert.NoError(t, ta.mock.ExpectationsWereMet())
}
