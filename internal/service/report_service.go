package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kryonic-fluke/PawRescue-sub001/internal/model"
	"github.com/kryonic-fluke/PawRescue-sub001/internal/validation"
)

// ReportStore is the persistence gateway for rescue reports. Satisfied by
// repository.ReportRepository; tests inject in-memory fakes.
type ReportStore interface {
	Create(report *model.RescueReport) error
	FindByID(id uuid.UUID) (*model.RescueReport, error)
	FindAll(filter model.ReportFilter) ([]model.RescueReport, error)
	Count(filter model.ReportFilter) (int, error)
	Update(id uuid.UUID, patch *model.ReportPatch) error
	Delete(id uuid.UUID) error
}

// Directory answers existence checks against a collaborator store
// (users, organizations).
type Directory interface {
	Exists(id uuid.UUID) (bool, error)
}

// OrganizationDirectory additionally resolves the full organization record,
// used to embed the responding NGO in single-report reads.
type OrganizationDirectory interface {
	Directory
	FindByID(id uuid.UUID) (*model.Organization, error)
}

// Notifier records an outbound notification intent. Implementations must be
// best-effort: they never return an error to the caller.
type Notifier interface {
	Enqueue(recipientEmail, subject, message, notificationType string, userID *uuid.UUID)
}

type ReportService struct {
	reports  ReportStore
	users    Directory
	orgs     OrganizationDirectory
	notifier Notifier
}

func NewReportService(reports ReportStore, users Directory, orgs OrganizationDirectory, notifier Notifier) *ReportService {
	return &ReportService{
		reports:  reports,
		users:    users,
		orgs:     orgs,
		notifier: notifier,
	}
}

// CreateReport validates the submission, checks referenced entities, persists
// the report and enqueues a confirmation notification to the reporter.
// Nothing is written until every check has passed.
func (s *ReportService) CreateReport(req *model.CreateReportRequest) (*model.RescueReport, error) {
	report, appErr := validation.ValidateCreate(req)
	if appErr != nil {
		return nil, appErr
	}

	if report.UserID != nil {
		exists, err := s.users.Exists(*report.UserID)
		if err != nil {
			return nil, fmt.Errorf("user lookup: %w", err)
		}
		if !exists {
			return nil, model.NewValidationError(model.CodeUserNotFound, "referenced user does not exist")
		}
	}
	if report.AssignedNgoID != nil {
		exists, err := s.orgs.Exists(*report.AssignedNgoID)
		if err != nil {
			return nil, fmt.Errorf("organization lookup: %w", err)
		}
		if !exists {
			return nil, model.NewValidationError(model.CodeNgoNotFound, "referenced organization does not exist")
		}
	}

	now := time.Now()
	report.ID = uuid.New()
	report.CreatedAt = now
	report.UpdatedAt = now

	if err := s.reports.Create(report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	subject := "Rescue report received"
	message := fmt.Sprintf(
		"Your rescue report has been received and is awaiting triage.\n\n"+
			"Animal: %s\nLocation: %s\nDescription: %s\nUrgency: %s\nContact: %s",
		report.AnimalType, report.Location, report.Description, report.Urgency, report.Phone)
	s.notifier.Enqueue(report.Email, subject, message, model.NotificationReportCreated, report.UserID)

	return report, nil
}

func (s *ReportService) GetReport(id uuid.UUID) (*model.RescueReport, error) {
	report, err := s.reports.FindByID(id)
	if err != nil {
		if err == model.ErrReportNotFound {
			return nil, model.NewNotFoundError(model.CodeReportNotFound, "report not found")
		}
		return nil, err
	}
	return report, nil
}

// GetReportDetail returns a report with its responding organization resolved.
// The organization lookup is an enrichment; a failure there does not hide
// the report itself.
func (s *ReportService) GetReportDetail(id uuid.UUID) (*model.ReportDetail, error) {
	report, err := s.GetReport(id)
	if err != nil {
		return nil, err
	}

	detail := &model.ReportDetail{RescueReport: *report}
	if report.AssignedNgoID != nil {
		if org, err := s.orgs.FindByID(*report.AssignedNgoID); err == nil {
			detail.AssignedNgo = org
		}
	}
	return detail, nil
}

func (s *ReportService) ListReports(filter model.ReportFilter) (*model.ReportListResponse, error) {
	reports, err := s.reports.FindAll(filter)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []model.RescueReport{}
	}

	total, err := s.reports.Count(filter)
	if err != nil {
		return nil, err
	}

	return &model.ReportListResponse{Reports: reports, Total: total}, nil
}

// UpdateReport applies a partial update. The current record is re-read first
// so the status-change notification decision is made against fresh state.
// A notification fires only when the supplied status differs from the prior
// one and the new status is in_progress or resolved.
func (s *ReportService) UpdateReport(id uuid.UUID, req *model.UpdateReportRequest) (*model.RescueReport, error) {
	current, err := s.reports.FindByID(id)
	if err != nil {
		if err == model.ErrReportNotFound {
			return nil, model.NewNotFoundError(model.CodeReportNotFound, "report not found")
		}
		return nil, err
	}

	patch, appErr := validation.ValidateUpdate(req)
	if appErr != nil {
		return nil, appErr
	}
	if patch.Empty() {
		return nil, model.NewValidationError(model.CodeEmptyUpdate, "nothing to update")
	}

	if patch.AssignedNgoID != nil {
		exists, err := s.orgs.Exists(*patch.AssignedNgoID)
		if err != nil {
			return nil, fmt.Errorf("organization lookup: %w", err)
		}
		if !exists {
			return nil, model.NewValidationError(model.CodeNgoNotFound, "referenced organization does not exist")
		}
	}

	if err := s.reports.Update(id, patch); err != nil {
		if err == model.ErrReportNotFound {
			return nil, model.NewNotFoundError(model.CodeReportNotFound, "report not found")
		}
		return nil, fmt.Errorf("update report: %w", err)
	}

	updated, err := s.reports.FindByID(id)
	if err != nil {
		// The row can be deleted between the write and the re-read.
		if err == model.ErrReportNotFound {
			return nil, model.NewNotFoundError(model.CodeReportNotFound, "report not found")
		}
		return nil, err
	}

	if patch.Status != nil && *patch.Status != current.Status {
		s.notifyStatusChange(current, *patch.Status)
	}

	return updated, nil
}

// notifyStatusChange enqueues the reporter-facing status notification.
// Transitions back to pending are not announced.
func (s *ReportService) notifyStatusChange(report *model.RescueReport, newStatus model.ReportStatus) {
	var message string
	switch newStatus {
	case model.StatusInProgress:
		message = fmt.Sprintf(
			"A rescue team is now working on your report for the %s at %s. Status: %s.",
			report.AnimalType, report.Location, model.StatusLabel(newStatus))
	case model.StatusResolved:
		message = fmt.Sprintf(
			"Your rescue report for the %s at %s has been resolved. Thank you for helping.",
			report.AnimalType, report.Location)
	default:
		return
	}

	subject := fmt.Sprintf("Rescue report update: %s", model.StatusLabel(newStatus))
	s.notifier.Enqueue(report.Email, subject, message, model.NotificationStatusUpdate, report.UserID)
}

// DeleteReport removes a report and returns the deleted record. This is the
// administrative path; no notification is produced.
func (s *ReportService) DeleteReport(id uuid.UUID) (*model.RescueReport, error) {
	report, err := s.reports.FindByID(id)
	if err != nil {
		if err == model.ErrReportNotFound {
			return nil, model.NewNotFoundError(model.CodeReportNotFound, "report not found")
		}
		return nil, err
	}

	if err := s.reports.Delete(id); err != nil {
		if err == model.ErrReportNotFound {
			return nil, model.NewNotFoundError(model.CodeReportNotFound, "report not found")
		}
		return nil, fmt.Errorf("delete report: %w", err)
	}

	return report, nil
}
