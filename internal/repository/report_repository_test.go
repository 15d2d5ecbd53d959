package repository

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonic-fluke/PawRescue-sub001/internal/model"
)

var reportRows = []string{
	"id", "animal_type", "location", "description", "phone", "email",
	"urgency", "status", "latitude", "longitude", "image_url", "user_id",
	"assigned_ngo_id", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*ReportRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewReportRepository(db), mock
}

func sampleReportRow(id uuid.UUID, now time.Time) []driver.Value {
	return []driver.Value{
		id.String(), "dog", "Park St", "injured leg", "9876543210", "a@b.com",
		"medium", "pending", nil, nil, nil, nil, nil, now, now,
	}
}

func TestCreate_InsertsAllColumns(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	report := &model.RescueReport{
		ID:          uuid.New(),
		AnimalType:  "dog",
		Location:    "Park St",
		Description: "injured leg",
		Phone:       "9876543210",
		Email:       "a@b.com",
		Urgency:     model.UrgencyMedium,
		Status:      model.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec(`INSERT INTO rescue_reports`).
		WithArgs(report.ID, "dog", "Park St", "injured leg", "9876543210", "a@b.com",
			model.UrgencyMedium, model.StatusPending, nil, nil, nil, nil, nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(report)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery(`(?s)SELECT .+ FROM rescue_reports r WHERE r\.id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(reportRows))

	_, err := repo.FindByID(id)
	assert.Equal(t, model.ErrReportNotFound, err)
}

func TestFindByID_ScansNullables(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	userID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows(reportRows).AddRow(
		id.String(), "cat", "Main Rd", "stuck on roof", "9123456789", "c@d.com",
		"high", "in_progress", 12.97, 77.59, "http://img", userID.String(), nil, now, now,
	)

	mock.ExpectQuery(`(?s)SELECT .+ FROM rescue_reports r WHERE r\.id = \$1`).
		WithArgs(id).
		WillReturnRows(rows)

	report, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, model.UrgencyHigh, report.Urgency)
	require.NotNil(t, report.Latitude)
	assert.InDelta(t, 12.97, *report.Latitude, 1e-9)
	require.NotNil(t, report.UserID)
	assert.Equal(t, userID, *report.UserID)
	assert.Nil(t, report.AssignedNgoID)
}

func TestFindAll_TriageOrderingClause(t *testing.T) {
	repo, mock := newMockRepo(t)

	// The ordering contract lives in the SQL: urgency rank, then newest first.
	pattern := regexp.MustCompile(
		`ORDER BY CASE r\.urgency\s+WHEN 'critical' THEN 0\s+WHEN 'high' THEN 1\s+WHEN 'medium' THEN 2\s+WHEN 'low' THEN 3\s+ELSE 4\s+END, r\.created_at DESC LIMIT \$1 OFFSET \$2`)

	now := time.Now()
	rows := sqlmock.NewRows(reportRows).
		AddRow(sampleReportRow(uuid.New(), now)...).
		AddRow(sampleReportRow(uuid.New(), now.Add(-time.Minute))...)

	mock.ExpectQuery(pattern.String()).
		WithArgs(10, 0).
		WillReturnRows(rows)

	reports, err := repo.FindAll(model.ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, reports, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAll_LimitCapAndFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`AND r\.status = \$1 AND \(r\.description ILIKE \$2 OR r\.location ILIKE \$2 OR r\.animal_type ILIKE \$2\)`).
		WithArgs(model.StatusPending, "%park%", 100, 0).
		WillReturnRows(sqlmock.NewRows(reportRows))

	_, err := repo.FindAll(model.ReportFilter{
		Status: model.StatusPending,
		Search: "park",
		Limit:  500, // capped to 100
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount_AppliesFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rescue_reports r WHERE 1=1 AND r\.urgency = \$1`).
		WithArgs(model.UrgencyCritical).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(model.ReportFilter{Urgency: model.UrgencyCritical})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestUpdate_DynamicSetList(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	desc := "found shelter"
	status := model.StatusResolved

	mock.ExpectExec(`UPDATE rescue_reports SET updated_at = NOW\(\), description = \$1, status = \$2 WHERE id = \$3`).
		WithArgs(desc, status, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(id, &model.ReportPatch{Description: &desc, Status: &status})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	desc := "anything"

	mock.ExpectExec(`UPDATE rescue_reports SET updated_at = NOW\(\), description = \$1 WHERE id = \$2`).
		WithArgs(desc, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(id, &model.ReportPatch{Description: &desc})
	assert.Equal(t, model.ErrReportNotFound, err)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM rescue_reports WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(id)
	assert.Equal(t, model.ErrReportNotFound, err)
}

func TestDelete_Removes(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM rescue_reports WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(id)
	assert.NoError(t, err)
}
