package admin

import (
	"fmt"

	"podium/models"

	"go.uber.org/zap"
)

const recentLimit = 5

var reviewStatuses = []models.ApplicationStatus{
	models.StatusInProgress,
	models.StatusSubmitted,
	models.StatusAccepted,
	models.StatusWaitlisted,
	models.StatusDenied,
	models.StatusConfirmed,
	models.StatusCompleted,
	models.StatusWithdrawn,
}

// GetStats counts applications per status and fetches the latest arrivals.
func (s *DefaultAdminService) GetStats() (*DashboardStats, error) {
	total, err := s.AppRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	byStatus := make(map[models.ApplicationStatus]int64, len(reviewStatuses))
	for _, status := range reviewStatuses {
		n, err := s.AppRepo.CountByStatus(status)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s applications: %w", status, err)
		}
		byStatus[status] = n
	}

	recent, err := s.AppRepo.GetRecent(recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent applications: %w", err)
	}

	return &DashboardStats{Total: total, ByStatus: byStatus, Recent: recent}, nil
}

// ListApplications returns all applications, optionally filtered by status.
func (s *DefaultAdminService) ListApplications(status *models.ApplicationStatus) ([]models.Application, error) {
	if status != nil {
		return s.AppRepo.GetByStatus(*status)
	}
	return s.AppRepo.GetAll()
}

// GetApplicationDetail loads one application with its profile, confirmation
// and aid request. Missing attachments stay nil.
func (s *DefaultAdminService) GetApplicationDetail(applicationID string) (*ApplicationDetail, error) {
	app, err := s.AppRepo.GetByID(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	detail := &ApplicationDetail{Application: *app}

	if detail.Profile, err = s.ProfileRepo.GetByUserID(app.UserID); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if detail.Confirmation, err = s.ConfRepo.GetByApplicationID(app.ID); err != nil {
		return nil, fmt.Errorf("failed to fetch confirmation: %w", err)
	}
	if detail.FinancialAid, err = s.AidRepo.GetByApplicationID(app.ID); err != nil {
		return nil, fmt.Errorf("failed to fetch financial aid: %w", err)
	}
	return detail, nil
}

// ListFinancialAid joins every aid request with its applicant. An aid row
// whose application has since been removed is skipped with a warning.
func (s *DefaultAdminService) ListFinancialAid() ([]AidReviewRow, error) {
	aids, err := s.AidRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch aid applications: %w", err)
	}

	rows := make([]AidReviewRow, 0, len(aids))
	for _, aid := range aids {
		app, err := s.AppRepo.GetByID(aid.ApplicationID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch application %s: %w", aid.ApplicationID, err)
		}
		if app == nil {
			s.Logger.Warn("aid request without application",
				zap.String("aidId", aid.ID),
				zap.String("applicationId", aid.ApplicationID))
			continue
		}
		rows = append(rows, AidReviewRow{
			Aid:               aid,
			StudentName:       app.Name,
			StudentEmail:      app.Email,
			UDLStudent:        app.UDLStudent,
			ApplicationStatus: app.Status,
		})
	}
	return rows, nil
}

// UpdateAidStatus records an aid review decision.
func (s *DefaultAdminService) UpdateAidStatus(applicationID string, status models.AidStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("unknown aid status %q", status)
	}
	aid, err := s.AidRepo.GetByApplicationID(applicationID)
	if err != nil {
		return fmt.Errorf("failed to fetch aid application: %w", err)
	}
	if aid == nil {
		return ErrAidNotFound
	}
	return s.AidRepo.UpdateStatus(applicationID, status)
}

// EmailRoster collects student and parent addresses for one status bucket.
// Parent addresses come from the profile; applications without one still
// appear with the student address alone.
func (s *DefaultAdminService) EmailRoster(status models.ApplicationStatus) ([]RosterEntry, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	apps, err := s.AppRepo.GetByStatus(status)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}

	entries := make([]RosterEntry, 0, len(apps))
	for _, app := range apps {
		entry := RosterEntry{
			StudentName:  app.Name,
			StudentEmail: app.Email,
			Status:       app.Status,
		}
		profile, err := s.ProfileRepo.GetByUserID(app.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch profile for %s: %w", app.UserID, err)
		}
		if profile != nil {
			entry.ParentEmail = profile.ParentEmail
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DeleteAllApplications removes every application with its attachments, in
// child-first order so a failure mid-way never orphans confirmations or aid
// requests.
func (s *DefaultAdminService) DeleteAllApplications() (*PurgeResult, error) {
	apps, err := s.AppRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate applications: %w", err)
	}

	ids := make([]string, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, app.ID)
	}

	result := &PurgeResult{}
	if len(ids) > 0 {
		if result.Confirmations, err = s.ConfRepo.DeleteByApplicationIDs(ids); err != nil {
			return nil, fmt.Errorf("failed to delete confirmations: %w", err)
		}
		if result.FinancialAid, err = s.AidRepo.DeleteByApplicationIDs(ids); err != nil {
			return nil, fmt.Errorf("failed to delete aid applications: %w", err)
		}
	}
	if result.Applications, err = s.AppRepo.DeleteAll(); err != nil {
		return nil, fmt.Errorf("failed to delete applications: %w", err)
	}

	s.Logger.Info("purged all applications",
		zap.Int64("applications", result.Applications),
		zap.Int64("confirmations", result.Confirmations),
		zap.Int64("financialAid", result.FinancialAid))
	return result, nil
}
