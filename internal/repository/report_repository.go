package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/kryonic-fluke/PawRescue-sub001/internal/model"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// Urgency sort rank used by FindAll: critical first, unknown values last.
const urgencyRankExpr = `CASE r.urgency
		WHEN 'critical' THEN 0
		WHEN 'high' THEN 1
		WHEN 'medium' THEN 2
		WHEN 'low' THEN 3
		ELSE 4
	END`

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(report *model.RescueReport) error {
	query := `
		INSERT INTO rescue_reports (id, animal_type, location, description, phone, email,
			urgency, status, latitude, longitude, image_url, user_id, assigned_ngo_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(query,
		report.ID,
		report.AnimalType,
		report.Location,
		report.Description,
		report.Phone,
		report.Email,
		report.Urgency,
		report.Status,
		report.Latitude,
		report.Longitude,
		report.ImageURL,
		report.UserID,
		report.AssignedNgoID,
		report.CreatedAt,
		report.UpdatedAt,
	)
	return err
}

const reportColumns = `r.id, r.animal_type, r.location, r.description, r.phone, r.email,
		r.urgency, r.status, r.latitude, r.longitude, r.image_url, r.user_id,
		r.assigned_ngo_id, r.created_at, r.updated_at`

func scanReport(row interface{ Scan(...interface{}) error }) (*model.RescueReport, error) {
	report := &model.RescueReport{}
	var lat, lng sql.NullFloat64
	var imageURL sql.NullString
	var userID, ngoID sql.NullString

	err := row.Scan(
		&report.ID,
		&report.AnimalType,
		&report.Location,
		&report.Description,
		&report.Phone,
		&report.Email,
		&report.Urgency,
		&report.Status,
		&lat,
		&lng,
		&imageURL,
		&userID,
		&ngoID,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		report.Latitude = &lat.Float64
	}
	if lng.Valid {
		report.Longitude = &lng.Float64
	}
	if imageURL.Valid {
		report.ImageURL = &imageURL.String
	}
	if userID.Valid {
		uid, _ := uuid.Parse(userID.String)
		report.UserID = &uid
	}
	if ngoID.Valid {
		nid, _ := uuid.Parse(ngoID.String)
		report.AssignedNgoID = &nid
	}

	return report, nil
}

func (r *ReportRepository) FindByID(id uuid.UUID) (*model.RescueReport, error) {
	query := `SELECT ` + reportColumns + ` FROM rescue_reports r WHERE r.id = $1`
	report, err := scanReport(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

// buildFilterClause translates a filter into a WHERE fragment and its args.
func buildFilterClause(filter model.ReportFilter) (string, []interface{}) {
	clause := ` WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		clause += fmt.Sprintf(" AND r.status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Urgency != "" {
		clause += fmt.Sprintf(" AND r.urgency = $%d", argIndex)
		args = append(args, filter.Urgency)
		argIndex++
	}
	if filter.UserID != nil {
		clause += fmt.Sprintf(" AND r.user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}
	if filter.AssignedNgoID != nil {
		clause += fmt.Sprintf(" AND r.assigned_ngo_id = $%d", argIndex)
		args = append(args, *filter.AssignedNgoID)
		argIndex++
	}
	if filter.Search != "" {
		clause += fmt.Sprintf(
			" AND (r.description ILIKE $%d OR r.location ILIKE $%d OR r.animal_type ILIKE $%d)",
			argIndex, argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	return clause, args
}

// FindAll returns reports in triage order: urgency rank first (critical on
// top), then newest first within the same band.
func (r *ReportRepository) FindAll(filter model.ReportFilter) ([]model.RescueReport, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	clause, args := buildFilterClause(filter)
	query := `SELECT ` + reportColumns + ` FROM rescue_reports r` + clause +
		` ORDER BY ` + urgencyRankExpr + `, r.created_at DESC`
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.RescueReport
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

// Count returns the total number of reports matching the filter, ignoring
// pagination.
func (r *ReportRepository) Count(filter model.ReportFilter) (int, error) {
	clause, args := buildFilterClause(filter)
	query := `SELECT COUNT(*) FROM rescue_reports r` + clause

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Update applies only the fields set on the patch and refreshes updated_at.
func (r *ReportRepository) Update(id uuid.UUID, patch *model.ReportPatch) error {
	query := `UPDATE rescue_reports SET updated_at = NOW()`
	args := []interface{}{}
	argIndex := 1

	appendField := func(column string, value interface{}) {
		query += fmt.Sprintf(", %s = $%d", column, argIndex)
		args = append(args, value)
		argIndex++
	}

	if patch.AnimalType != nil {
		appendField("animal_type", *patch.AnimalType)
	}
	if patch.Location != nil {
		appendField("location", *patch.Location)
	}
	if patch.Description != nil {
		appendField("description", *patch.Description)
	}
	if patch.Phone != nil {
		appendField("phone", *patch.Phone)
	}
	if patch.Email != nil {
		appendField("email", *patch.Email)
	}
	if patch.Urgency != nil {
		appendField("urgency", *patch.Urgency)
	}
	if patch.Status != nil {
		appendField("status", *patch.Status)
	}
	if patch.Latitude != nil {
		appendField("latitude", *patch.Latitude)
	}
	if patch.Longitude != nil {
		appendField("longitude", *patch.Longitude)
	}
	if patch.ImageURL != nil {
		appendField("image_url", *patch.ImageURL)
	}
	if patch.AssignedNgoID != nil {
		appendField("assigned_ngo_id", *patch.AssignedNgoID)
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIndex)
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return model.ErrReportNotFound
	}
	return nil
}

func (r *ReportRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM rescue_reports WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return model.ErrReportNotFound
	}
	return nil
}
