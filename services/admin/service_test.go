package admin

import (
	"encoding/csv"
	"strings"
	"testing"

	"podium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAppRepo struct {
	apps []models.Application
}

func (r *stubAppRepo) GetByID(id string) (*models.Application, error) {
	for i := range r.apps {
		if r.apps[i].ID == id {
			return &r.apps[i], nil
		}
	}
	return nil, nil
}

func (r *stubAppRepo) GetByUserID(userID string) (*models.Application, error) {
	for i := range r.apps {
		if r.apps[i].UserID == userID {
			return &r.apps[i], nil
		}
	}
	return nil, nil
}

func (r *stubAppRepo) GetAll() ([]models.Application, error) { return r.apps, nil }

func (r *stubAppRepo) GetByStatus(status models.ApplicationStatus) ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.apps {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAppRepo) GetRecent(limit int) ([]models.Application, error) {
	if len(r.apps) > limit {
		return r.apps[:limit], nil
	}
	return r.apps, nil
}

func (r *stubAppRepo) Count() (int64, error) { return int64(len(r.apps)), nil }

func (r *stubAppRepo) CountByStatus(status models.ApplicationStatus) (int64, error) {
	matched, _ := r.GetByStatus(status)
	return int64(len(matched)), nil
}

func (r *stubAppRepo) Create(*models.Application) error { return nil }

func (r *stubAppRepo) UpdateContent(string, models.ApplicationDraft) (bool, error) {
	return false, nil
}

func (r *stubAppRepo) UpdateStatus(string, models.ApplicationStatus, models.ApplicationStatus) (bool, error) {
	return false, nil
}

func (r *stubAppRepo) SetUDLStudent(string, bool) error { return nil }

func (r *stubAppRepo) DeleteAll() (int64, error) {
	n := int64(len(r.apps))
	r.apps = nil
	return n, nil
}

type stubProfileRepo struct {
	profiles map[string]*models.Profile
}

func (r *stubProfileRepo) GetByUserID(userID string) (*models.Profile, error) {
	return r.profiles[userID], nil
}

func (r *stubProfileRepo) Upsert(*models.Profile) error { return nil }

type stubConfRepo struct {
	confs   map[string]*models.ProgramConfirmation
	deleted []string
}

func (r *stubConfRepo) GetByApplicationID(id string) (*models.ProgramConfirmation, error) {
	return r.confs[id], nil
}

func (r *stubConfRepo) Upsert(*models.ProgramConfirmation) error { return nil }

func (r *stubConfRepo) SetPayment(string, string, string) error { return nil }

func (r *stubConfRepo) DeleteByApplicationIDs(ids []string) (int64, error) {
	r.deleted = ids
	var n int64
	for _, id := range ids {
		if _, ok := r.confs[id]; ok {
			delete(r.confs, id)
			n++
		}
	}
	return n, nil
}

type stubAidRepo struct {
	aids    []models.FinancialAidApplication
	updated map[string]models.AidStatus
	deleted []string
}

func (r *stubAidRepo) GetByApplicationID(id string) (*models.FinancialAidApplication, error) {
	for i := range r.aids {
		if r.aids[i].ApplicationID == id {
			return &r.aids[i], nil
		}
	}
	return nil, nil
}

func (r *stubAidRepo) GetAll() ([]models.FinancialAidApplication, error) { return r.aids, nil }

func (r *stubAidRepo) Create(*models.FinancialAidApplication) error { return nil }

func (r *stubAidRepo) UpdateStatus(id string, status models.AidStatus) error {
	if r.updated == nil {
		r.updated = map[string]models.AidStatus{}
	}
	r.updated[id] = status
	return nil
}

func (r *stubAidRepo) DeleteByApplicationIDs(ids []string) (int64, error) {
	r.deleted = ids
	var n int64
	for _, aid := range r.aids {
		for _, id := range ids {
			if aid.ApplicationID == id {
				n++
			}
		}
	}
	return n, nil
}

func newService(apps []models.Application) (*DefaultAdminService, *stubConfRepo, *stubAidRepo) {
	confs := &stubConfRepo{confs: map[string]*models.ProgramConfirmation{}}
	aids := &stubAidRepo{}
	svc := &DefaultAdminService{
		AppRepo:     &stubAppRepo{apps: apps},
		ProfileRepo: &stubProfileRepo{profiles: map[string]*models.Profile{}},
		ConfRepo:    confs,
		AidRepo:     aids,
		Logger:      zap.NewNop(),
	}
	return svc, confs, aids
}

func sampleApps() []models.Application {
	return []models.Application{
		{ID: "a1", UserID: "u1", Status: models.StatusSubmitted, Name: "Ada Lovelace", Email: "ada@example.com"},
		{ID: "a2", UserID: "u2", Status: models.StatusSubmitted, Name: "Joan Clarke", Email: "joan@example.com"},
		{ID: "a3", UserID: "u3", Status: models.StatusAccepted, Name: "Mary Jackson", Email: "mary@example.com"},
	}
}

func TestGetStats(t *testing.T) {
	svc, _, _ := newService(sampleApps())

	stats, err := svc.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus[models.StatusSubmitted])
	assert.Equal(t, int64(1), stats.ByStatus[models.StatusAccepted])
	assert.Equal(t, int64(0), stats.ByStatus[models.StatusDenied])
	assert.Len(t, stats.Recent, 3)
}

func TestListApplicationsFilter(t *testing.T) {
	svc, _, _ := newService(sampleApps())

	all, err := svc.ListApplications(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	accepted := models.StatusAccepted
	filtered, err := svc.ListApplications(&accepted)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "a3", filtered[0].ID)
}

func TestGetApplicationDetail(t *testing.T) {
	svc, confs, _ := newService(sampleApps())
	confs.confs["a3"] = &models.ProgramConfirmation{ApplicationID: "a3"}

	detail, err := svc.GetApplicationDetail("a3")
	require.NoError(t, err)
	assert.Equal(t, "a3", detail.Application.ID)
	assert.NotNil(t, detail.Confirmation)
	assert.Nil(t, detail.FinancialAid)

	_, err = svc.GetApplicationDetail("missing")
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestListFinancialAidSkipsOrphans(t *testing.T) {
	svc, _, aids := newService(sampleApps())
	aids.aids = []models.FinancialAidApplication{
		{ID: "f1", ApplicationID: "a3", Status: models.AidPending},
		{ID: "f2", ApplicationID: "gone", Status: models.AidPending},
	}

	rows, err := svc.ListFinancialAid()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mary Jackson", rows[0].StudentName)
	assert.Equal(t, models.StatusAccepted, rows[0].ApplicationStatus)
}

func TestUpdateAidStatus(t *testing.T) {
	svc, _, aids := newService(sampleApps())
	aids.aids = []models.FinancialAidApplication{{ID: "f1", ApplicationID: "a3", Status: models.AidPending}}

	require.NoError(t, svc.UpdateAidStatus("a3", models.AidApproved))
	assert.Equal(t, models.AidApproved, aids.updated["a3"])

	assert.ErrorIs(t, svc.UpdateAidStatus("missing", models.AidDenied), ErrAidNotFound)
	assert.Error(t, svc.UpdateAidStatus("a3", "MAYBE"))
}

func TestEmailRoster(t *testing.T) {
	svc, _, _ := newService(sampleApps())
	svc.ProfileRepo = &stubProfileRepo{profiles: map[string]*models.Profile{
		"u1": {UserID: "u1", ParentEmail: "parent1@example.com"},
	}}

	entries, err := svc.EmailRoster(models.StatusSubmitted)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "parent1@example.com", entries[0].ParentEmail)
	assert.Empty(t, entries[1].ParentEmail)

	_, err = svc.EmailRoster("NOPE")
	assert.Error(t, err)
}

func TestDeleteAllApplicationsCascades(t *testing.T) {
	svc, confs, aids := newService(sampleApps())
	confs.confs["a3"] = &models.ProgramConfirmation{ApplicationID: "a3"}
	aids.aids = []models.FinancialAidApplication{{ID: "f1", ApplicationID: "a3"}}

	result, err := svc.DeleteAllApplications()
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Applications)
	assert.Equal(t, int64(1), result.Confirmations)
	assert.Equal(t, int64(1), result.FinancialAid)

	// Children go first, keyed by the enumerated application IDs.
	assert.ElementsMatch(t, []string{"a1", "a2", "a3"}, confs.deleted)
	assert.ElementsMatch(t, []string{"a1", "a2", "a3"}, aids.deleted)
}

func TestExportCSV(t *testing.T) {
	svc, confs, _ := newService(sampleApps())
	confs.confs["a3"] = &models.ProgramConfirmation{ApplicationID: "a3", FinancialAidRequest: true}

	data, err := svc.ExportCSV()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + three rows
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "a1", records[1][0])
	assert.Equal(t, "SUBMITTED", records[1][1])
	assert.Equal(t, "true", records[3][11], "aid request flag from the confirmation")
}

func TestExportFinancialAidCSV(t *testing.T) {
	svc, _, aids := newService(sampleApps())
	aids.aids = []models.FinancialAidApplication{
		{ID: "f1", ApplicationID: "a3", Dependents: "2", HouseholdIncome: "40000", WillProvideReturns: true, Status: models.AidPending},
		{ID: "f2", ApplicationID: "gone", Status: models.AidPending},
	}

	data, err := svc.ExportFinancialAidCSV()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus the one joinable row")
	assert.Equal(t, aidExportHeader, records[0])
	assert.Equal(t, "a3", records[1][0])
	assert.Equal(t, "Mary Jackson", records[1][1])
	assert.Equal(t, "2", records[1][4])
	assert.Equal(t, "true", records[1][7])
	assert.Equal(t, string(models.AidPending), records[1][8])
}
