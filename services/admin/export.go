package admin

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

var exportHeader = []string{
	"id", "status", "name", "email", "school", "gradeLevel", "udlStudent",
	"yearsOfExperience", "numTournaments", "parentEmail", "phoneNumber",
	"financialAidRequest", "paymentStatus", "createdAt", "updatedAt",
}

// ExportCSV renders every application as a CSV document for offline review.
// Essay bodies stay out of the export; the dashboard shows them inline.
func (s *DefaultAdminService) ExportCSV() ([]byte, error) {
	apps, err := s.AppRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}

	for _, app := range apps {
		var parentEmail, phoneNumber string
		profile, err := s.ProfileRepo.GetByUserID(app.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch profile for %s: %w", app.UserID, err)
		}
		if profile != nil {
			parentEmail = profile.ParentEmail
			phoneNumber = profile.PhoneNumber
		}

		var aidRequested, paymentStatus string
		conf, err := s.ConfRepo.GetByApplicationID(app.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch confirmation for %s: %w", app.ID, err)
		}
		if conf != nil {
			aidRequested = strconv.FormatBool(conf.FinancialAidRequest)
			paymentStatus = conf.PaymentStatus
		}

		record := []string{
			app.ID,
			string(app.Status),
			app.Name,
			app.Email,
			app.School,
			app.GradeLevel,
			strconv.FormatBool(app.UDLStudent),
			app.YearsOfExperience,
			app.NumTournaments,
			parentEmail,
			phoneNumber,
			aidRequested,
			paymentStatus,
			app.CreatedAt.Format(time.RFC3339),
			app.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var aidExportHeader = []string{
	"applicationId", "studentName", "studentEmail", "udlStudent",
	"dependents", "householdIncome", "receivedAssistance",
	"willProvideReturns", "status", "submittedAt",
}

// ExportFinancialAidCSV renders every aid request as a CSV document. Rows
// reuse the applicant join from the review list, so orphaned requests are
// skipped the same way.
func (s *DefaultAdminService) ExportFinancialAidCSV() ([]byte, error) {
	rows, err := s.ListFinancialAid()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(aidExportHeader); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			row.Aid.ApplicationID,
			row.StudentName,
			row.StudentEmail,
			strconv.FormatBool(row.UDLStudent),
			row.Aid.Dependents,
			row.Aid.HouseholdIncome,
			strconv.FormatBool(row.Aid.ReceivedAssistance),
			strconv.FormatBool(row.Aid.WillProvideReturns),
			string(row.Aid.Status),
			row.Aid.SubmittedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
