package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/kryonic-fluke/PawRescue-sub001/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// 10-digit mobile number starting 6-9, optionally prefixed with a
	// country code (+91 / 91) or a trunk zero.
	phonePattern = regexp.MustCompile(`^(\+91|91|0)?[6-9][0-9]{9}$`)
)

// ValidEmail reports whether s matches the accepted email shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s, after stripping spaces and hyphens, is an
// acceptable mobile number.
func ValidPhone(s string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(s)
	return phonePattern.MatchString(cleaned)
}

// ValidateCreate checks a raw creation payload and returns a normalized
// report draft, or the first violated rule as an AppError. The caller is
// responsible for referential checks (user/ngo existence) and for assigning
// id and timestamps.
func ValidateCreate(req *model.CreateReportRequest) (*model.RescueReport, *model.AppError) {
	animalType := strings.TrimSpace(req.AnimalType)
	location := strings.TrimSpace(req.Location)
	description := strings.TrimSpace(req.Description)
	phone := strings.TrimSpace(req.Phone)
	email := strings.TrimSpace(req.Email)

	if animalType == "" {
		return nil, model.NewValidationError(model.CodeMissingAnimalType, "animal_type is required")
	}
	if location == "" {
		return nil, model.NewValidationError(model.CodeMissingLocation, "location is required")
	}
	if description == "" {
		return nil, model.NewValidationError(model.CodeMissingDescription, "description is required")
	}
	if phone == "" {
		return nil, model.NewValidationError(model.CodeMissingPhone, "phone is required")
	}
	if email == "" {
		return nil, model.NewValidationError(model.CodeMissingEmail, "email is required")
	}
	if !ValidEmail(email) {
		return nil, model.NewValidationError(model.CodeInvalidEmail, "email format is invalid")
	}
	if !ValidPhone(phone) {
		return nil, model.NewValidationError(model.CodeInvalidPhone, "phone must be a valid 10-digit mobile number")
	}

	urgency := model.UrgencyMedium
	if req.Urgency != "" {
		urgency = model.Urgency(req.Urgency)
		if !model.ValidUrgency(urgency) {
			return nil, model.NewValidationError(model.CodeInvalidUrgency, "urgency must be one of low, medium, high, critical")
		}
	}

	status := model.StatusPending
	if req.Status != "" {
		status = model.ReportStatus(req.Status)
		if !model.ValidStatus(status) {
			return nil, model.NewValidationError(model.CodeInvalidStatus, "status must be one of pending, in_progress, resolved")
		}
	}

	report := &model.RescueReport{
		AnimalType:  animalType,
		Location:    location,
		Description: description,
		Phone:       phone,
		Email:       email,
		Urgency:     urgency,
		Status:      status,
		ImageURL:    req.ImageURL,
	}

	if req.Latitude != nil {
		lat, err := strconv.ParseFloat(strings.TrimSpace(*req.Latitude), 64)
		if err != nil {
			return nil, model.NewValidationError(model.CodeInvalidLatitude, "latitude must be a decimal number")
		}
		report.Latitude = &lat
	}
	if req.Longitude != nil {
		lng, err := strconv.ParseFloat(strings.TrimSpace(*req.Longitude), 64)
		if err != nil {
			return nil, model.NewValidationError(model.CodeInvalidLongitude, "longitude must be a decimal number")
		}
		report.Longitude = &lng
	}

	if req.UserID != nil && strings.TrimSpace(*req.UserID) != "" {
		uid, err := uuid.Parse(strings.TrimSpace(*req.UserID))
		if err != nil {
			return nil, model.NewValidationError(model.CodeInvalidUserID, "user_id must be a valid uuid")
		}
		report.UserID = &uid
	}
	if req.AssignedNgoID != nil && strings.TrimSpace(*req.AssignedNgoID) != "" {
		nid, err := uuid.Parse(strings.TrimSpace(*req.AssignedNgoID))
		if err != nil {
			return nil, model.NewValidationError(model.CodeInvalidNgoID, "assigned_ngo_id must be a valid uuid")
		}
		report.AssignedNgoID = &nid
	}

	return report, nil
}

// ValidateUpdate checks a partial update payload. Only supplied fields are
// validated and carried into the patch.
func ValidateUpdate(req *model.UpdateReportRequest) (*model.ReportPatch, *model.AppError) {
	patch := &model.ReportPatch{}

	if req.AnimalType != nil {
		v := strings.TrimSpace(*req.AnimalType)
		if v == "" {
			return nil, model.NewValidationError(model.CodeMissingAnimalType, "animal_type cannot be empty")
		}
		patch.AnimalType = &v
	}
	if req.Location != nil {
		v := strings.TrimSpace(*req.Location)
		if v == "" {
			return nil, model.NewValidationError(model.CodeMissingLocation, "location cannot be empty")
		}
		patch.Location = &v
	}
	if req.Description != nil {
		v := strings.TrimSpace(*req.Description)
		if v == "" {
			return nil, model.NewValidationError(model.CodeMissingDescription, "description cannot be empty")
		}
		patch.Description = &v
	}
	if req.Phone != nil {
		v := strings.TrimSpace(*req.Phone)
		if !ValidPhone(v) {
			return nil, model.NewValidationError(model.CodeInvalidPhone, "phone must be a valid 10-digit mobile number")
		}
		patch.Phone = &v
	}
	if req.Email != nil {
		v := strings.TrimSpace(*req.Email)
		if !ValidEmail(v) {
			return nil, model.NewValidationError(model.CodeInvalidEmail, "email format is invalid")
		}
		patch.Email = &v
	}
	if req.Urgency != nil {
		u := model.Urgency(*req.Urgency)
		if !model.ValidUrgency(u) {
			return nil, model.NewValidationError(model.CodeInvalidUrgency, "urgency must be one of low, medium, high, critical")
		}
		patch.Urgency = &u
	}
	if req.Status != nil {
		s := model.ReportStatus(*req.Status)
		if !model.ValidStatus(s) {
			return nil, model.NewValidationError(model.CodeInvalidStatus, "status must be one of pending, in_progress, resolved")
		}
		patch.Status = &s
	}
	if req.Latitude != nil {
		lat, err := strconv.ParseFloat(strings.TrimSpace(*req.Latitude), 64)
		if err != nil {
			return nil, model.NewValidationError(model.CodeInvalidLatitude, "latitude must be a decimal number")
		}
		patch.Latitude = &lat
	}
	if req.Longitude != nil {
		lng, err := strconv.ParseFloat(strings.TrimSpace(*req.Longitude), 64)
		if err != nil {
			return nil, model.NewValidationError(model.CodeInvalidLongitude, "longitude must be a decimal number")
		}
		patch.Longitude = &lng
	}
	if req.ImageURL != nil {
		patch.ImageURL = req.ImageURL
	}
	if req.AssignedNgoID != nil && strings.TrimSpace(*req.AssignedNgoID) != "" {
		nid, err := uuid.Parse(strings.TrimSpace(*req.AssignedNgoID))
		if err != nil {
			return nil, model.NewValidationError(model.CodeInvalidNgoID, "assigned_ngo_id must be a valid uuid")
		}
		patch.AssignedNgoID = &nid
	}

	return patch, nil
}
