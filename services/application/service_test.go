package application

import (
	"testing"

	"podium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory repository fakes mirroring the conditional-write semantics of the
// Mongo implementations.

type fakeAppRepo struct {
	apps map[string]*models.Application // keyed by application ID
}

func newFakeAppRepo(apps ...*models.Application) *fakeAppRepo {
	r := &fakeAppRepo{apps: map[string]*models.Application{}}
	for _, a := range apps {
		cp := *a
		r.apps[a.ID] = &cp
	}
	return r
}

func (r *fakeAppRepo) GetByID(id string) (*models.Application, error) {
	if a, ok := r.apps[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeAppRepo) GetByUserID(userID string) (*models.Application, error) {
	for _, a := range r.apps {
		if a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAppRepo) GetAll() ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.apps {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAppRepo) GetByStatus(status models.ApplicationStatus) ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.apps {
		if a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppRepo) GetRecent(limit int) ([]models.Application, error) {
	all, _ := r.GetAll()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeAppRepo) Count() (int64, error) { return int64(len(r.apps)), nil }

func (r *fakeAppRepo) CountByStatus(status models.ApplicationStatus) (int64, error) {
	matched, _ := r.GetByStatus(status)
	return int64(len(matched)), nil
}

func (r *fakeAppRepo) Create(app *models.Application) error {
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *fakeAppRepo) UpdateContent(userID string, draft models.ApplicationDraft) (bool, error) {
	for _, a := range r.apps {
		if a.UserID == userID && a.Status == models.StatusInProgress {
			a.Name = draft.Name
			a.Email = draft.Email
			a.School = draft.School
			a.GradeLevel = draft.GradeLevel
			a.UDLStudent = draft.UDLStudent
			a.YearsOfExperience = draft.YearsOfExperience
			a.NumTournaments = draft.NumTournaments
			a.DebateExperience = draft.DebateExperience
			a.InterestEssay = draft.InterestEssay
			a.SelfAptitudeAssessment = draft.SelfAptitudeAssessment
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppRepo) UpdateStatus(id string, from, to models.ApplicationStatus) (bool, error) {
	if a, ok := r.apps[id]; ok && a.Status == from {
		a.Status = to
		return true, nil
	}
	return false, nil
}

func (r *fakeAppRepo) SetUDLStudent(id string, udl bool) error {
	if a, ok := r.apps[id]; ok {
		a.UDLStudent = udl
		return nil
	}
	return assert.AnError
}

func (r *fakeAppRepo) DeleteAll() (int64, error) {
	n := int64(len(r.apps))
	r.apps = map[string]*models.Application{}
	return n, nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile // keyed by user ID
}

func (r *fakeProfileRepo) GetByUserID(userID string) (*models.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProfileRepo) Upsert(profile *models.Profile) error {
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

type fakeConfRepo struct {
	confs map[string]*models.ProgramConfirmation // keyed by application ID
}

func (r *fakeConfRepo) GetByApplicationID(applicationID string) (*models.ProgramConfirmation, error) {
	if c, ok := r.confs[applicationID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeConfRepo) Upsert(conf *models.ProgramConfirmation) error {
	cp := *conf
	r.confs[conf.ApplicationID] = &cp
	return nil
}

func (r *fakeConfRepo) SetPayment(applicationID, orderID, paymentStatus string) error {
	if c, ok := r.confs[applicationID]; ok {
		c.OrderID = orderID
		c.PaymentStatus = paymentStatus
		return nil
	}
	return assert.AnError
}

func (r *fakeConfRepo) DeleteByApplicationIDs(applicationIDs []string) (int64, error) {
	var n int64
	for _, id := range applicationIDs {
		if _, ok := r.confs[id]; ok {
			delete(r.confs, id)
			n++
		}
	}
	return n, nil
}

type fakeAidRepo struct {
	aids map[string]*models.FinancialAidApplication // keyed by application ID
}

func (r *fakeAidRepo) GetByApplicationID(applicationID string) (*models.FinancialAidApplication, error) {
	if a, ok := r.aids[applicationID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeAidRepo) GetAll() ([]models.FinancialAidApplication, error) {
	var out []models.FinancialAidApplication
	for _, a := range r.aids {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAidRepo) Create(aid *models.FinancialAidApplication) error {
	cp := *aid
	r.aids[aid.ApplicationID] = &cp
	return nil
}

func (r *fakeAidRepo) UpdateStatus(applicationID string, status models.AidStatus) error {
	if a, ok := r.aids[applicationID]; ok {
		a.Status = status
		return nil
	}
	return assert.AnError
}

func (r *fakeAidRepo) DeleteByApplicationIDs(applicationIDs []string) (int64, error) {
	var n int64
	for _, id := range applicationIDs {
		if _, ok := r.aids[id]; ok {
			delete(r.aids, id)
			n++
		}
	}
	return n, nil
}

type dispatchedEdge struct {
	from, to models.ApplicationStatus
	conf     *models.ProgramConfirmation
}

type fakeDispatcher struct {
	edges []dispatchedEdge
}

func (d *fakeDispatcher) Dispatch(from, to models.ApplicationStatus, app *models.Application, conf *models.ProgramConfirmation, profile *models.Profile) {
	d.edges = append(d.edges, dispatchedEdge{from: from, to: to, conf: conf})
}

type fixture struct {
	svc        *DefaultApplicationService
	appRepo    *fakeAppRepo
	profiles   *fakeProfileRepo
	confs      *fakeConfRepo
	aids       *fakeAidRepo
	dispatcher *fakeDispatcher
}

func newFixture(apps ...*models.Application) *fixture {
	f := &fixture{
		appRepo:    newFakeAppRepo(apps...),
		profiles:   &fakeProfileRepo{profiles: map[string]*models.Profile{}},
		confs:      &fakeConfRepo{confs: map[string]*models.ProgramConfirmation{}},
		aids:       &fakeAidRepo{aids: map[string]*models.FinancialAidApplication{}},
		dispatcher: &fakeDispatcher{},
	}
	f.svc = &DefaultApplicationService{
		Repo:        f.appRepo,
		ProfileRepo: f.profiles,
		ConfRepo:    f.confs,
		AidRepo:     f.aids,
		Effects:     f.dispatcher,
		Logger:      zap.NewNop(),
	}
	return f
}

var (
	owner = Actor{UserID: "u1"}
	staff = Actor{UserID: "staff", IsAdmin: true}
)

func TestSaveDraftCreatesApplication(t *testing.T) {
	f := newFixture()

	app, err := f.svc.SaveDraft(owner, models.ApplicationDraft{Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, app.Status)
	assert.Equal(t, "u1", app.UserID)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, "Ada Lovelace", app.Name)
	assert.Empty(t, f.dispatcher.edges, "draft writes dispatch nothing")
}

func TestSaveDraftUpdatesInProgress(t *testing.T) {
	f := newFixture(completeApplication())

	app, err := f.svc.SaveDraft(owner, models.ApplicationDraft{Name: "Ada L.", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", app.Name)
	assert.Equal(t, models.StatusInProgress, app.Status)
}

func TestSaveDraftRejectedAfterSubmission(t *testing.T) {
	submitted := completeApplication()
	submitted.Status = models.StatusSubmitted
	f := newFixture(submitted)

	_, err := f.svc.SaveDraft(owner, models.ApplicationDraft{Name: "too late"})

	var ineligible *IneligibleActionError
	require.ErrorAs(t, err, &ineligible)
	assert.Equal(t, models.StatusSubmitted, ineligible.Status)

	stored, _ := f.appRepo.GetByUserID("u1")
	assert.Equal(t, "Ada Lovelace", stored.Name, "locked application must not change")
}

func TestSubmitHappyPath(t *testing.T) {
	f := newFixture(completeApplication())
	f.profiles.profiles["u1"] = completeProfile()

	app, err := f.svc.Submit(owner)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, app.Status)

	require.Len(t, f.dispatcher.edges, 1)
	assert.Equal(t, models.StatusSubmitted, f.dispatcher.edges[0].to)
}

func TestSubmitIncomplete(t *testing.T) {
	app := completeApplication()
	app.InterestEssay = ""
	f := newFixture(app)
	f.profiles.profiles["u1"] = completeProfile()

	_, err := f.svc.Submit(owner)

	var incomplete *IncompleteApplicationError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Missing, "interestEssay")

	stored, _ := f.appRepo.GetByUserID("u1")
	assert.Equal(t, models.StatusInProgress, stored.Status)
	assert.Empty(t, f.dispatcher.edges)
}

func TestSubmitWithoutProfile(t *testing.T) {
	f := newFixture(completeApplication())

	_, err := f.svc.Submit(owner)

	var incomplete *IncompleteApplicationError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"profile"}, incomplete.Missing)
}

func TestSubmitIdempotent(t *testing.T) {
	f := newFixture(completeApplication())
	f.profiles.profiles["u1"] = completeProfile()

	_, err := f.svc.Submit(owner)
	require.NoError(t, err)

	app, err := f.svc.Submit(owner)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, app.Status)
	assert.Len(t, f.dispatcher.edges, 1, "re-submit must not dispatch a second notification")
}

func TestSubmitNotStarted(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Submit(owner)
	assert.ErrorIs(t, err, ErrNotFound)
}

func completeConfirmationForm() ConfirmationForm {
	return ConfirmationForm{
		StudentName:       "Ada Lovelace",
		ParentName:        "Annabella Byron",
		EmergencyContact:  "555-0102",
		LiabilityWaiver:   true,
		MedicalRelease:    true,
		MediaRelease:      true,
		ProgramGuidelines: true,
	}
}

func TestSubmitConfirmationHappyPath(t *testing.T) {
	app := completeApplication()
	app.Status = models.StatusAccepted
	f := newFixture(app)
	f.profiles.profiles["u1"] = completeProfile()

	conf, err := f.svc.SubmitConfirmation(owner, completeConfirmationForm())
	require.NoError(t, err)
	assert.Equal(t, app.ID, conf.ApplicationID)
	assert.True(t, conf.ConsentsComplete())

	stored, _ := f.appRepo.GetByUserID("u1")
	assert.Equal(t, models.StatusConfirmed, stored.Status)

	require.Len(t, f.dispatcher.edges, 1)
	edge := f.dispatcher.edges[0]
	assert.Equal(t, models.StatusAccepted, edge.from)
	assert.Equal(t, models.StatusConfirmed, edge.to)
	require.NotNil(t, edge.conf)
	assert.False(t, edge.conf.FinancialAidRequest)
}

func TestSubmitConfirmationMissingConsent(t *testing.T) {
	app := completeApplication()
	app.Status = models.StatusAccepted
	f := newFixture(app)

	form := completeConfirmationForm()
	form.MedicalRelease = false

	_, err := f.svc.SubmitConfirmation(owner, form)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "medicalRelease")

	stored, _ := f.appRepo.GetByUserID("u1")
	assert.Equal(t, models.StatusAccepted, stored.Status)
	assert.Empty(t, f.confs.confs, "invalid form must not persist")
}

func TestSubmitConfirmationBeforeAcceptance(t *testing.T) {
	submitted := completeApplication()
	submitted.Status = models.StatusSubmitted
	f := newFixture(submitted)

	_, err := f.svc.SubmitConfirmation(owner, completeConfirmationForm())

	var ineligible *IneligibleActionError
	assert.ErrorAs(t, err, &ineligible)
}

// raceAppRepo simulates an admin transition winning between the form upsert
// and the conditional status write: the write reports no match and the stored
// row lands in the concurrent status.
type raceAppRepo struct {
	*fakeAppRepo
	winner models.ApplicationStatus
}

func (r *raceAppRepo) UpdateStatus(id string, from, to models.ApplicationStatus) (bool, error) {
	if a, ok := r.apps[id]; ok {
		a.Status = r.winner
	}
	return false, nil
}

func TestSubmitConfirmationLostRaceRollsBackForm(t *testing.T) {
	app := completeApplication()
	app.Status = models.StatusAccepted
	f := newFixture(app)
	f.svc.Repo = &raceAppRepo{fakeAppRepo: f.appRepo, winner: models.StatusWithdrawn}

	_, err := f.svc.SubmitConfirmation(owner, completeConfirmationForm())

	var ite *InvalidTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, models.StatusWithdrawn, ite.From)

	assert.Empty(t, f.confs.confs, "no confirmation record may survive outside ACCEPTED/CONFIRMED")
	assert.Empty(t, f.dispatcher.edges, "a failed transition owes no effects")
}

func TestSubmitConfirmationLostRaceToConfirmedKeepsRecord(t *testing.T) {
	// When the winning write was itself the CONFIRMED edge the stored form is
	// still valid and must not be rolled back.
	app := completeApplication()
	app.Status = models.StatusAccepted
	f := newFixture(app)
	f.svc.Repo = &raceAppRepo{fakeAppRepo: f.appRepo, winner: models.StatusConfirmed}

	_, err := f.svc.SubmitConfirmation(owner, completeConfirmationForm())

	var ite *InvalidTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, models.StatusConfirmed, ite.From)
	assert.Contains(t, f.confs.confs, app.ID)
}

func TestSubmitConfirmationResubmission(t *testing.T) {
	confirmed := completeApplication()
	confirmed.Status = models.StatusConfirmed
	f := newFixture(confirmed)

	_, err := f.svc.SubmitConfirmation(owner, completeConfirmationForm())

	var ineligible *IneligibleActionError
	require.ErrorAs(t, err, &ineligible)
	assert.Equal(t, models.StatusConfirmed, ineligible.Status)
}

func completeAidForm() FinancialAidForm {
	return FinancialAidForm{
		Dependents:         "3",
		HouseholdIncome:    "under-50k",
		Circumstances:      "Single income household.",
		WillProvideReturns: true,
	}
}

func TestSubmitFinancialAidHappyPath(t *testing.T) {
	app := completeApplication()
	app.Status = models.StatusConfirmed
	f := newFixture(app)
	f.confs.confs[app.ID] = &models.ProgramConfirmation{ApplicationID: app.ID, FinancialAidRequest: true}

	aid, err := f.svc.SubmitFinancialAid(owner, completeAidForm())
	require.NoError(t, err)
	assert.Equal(t, models.AidPending, aid.Status)
	assert.Equal(t, app.ID, aid.ApplicationID)
}

func TestSubmitFinancialAidWithoutRequestFlag(t *testing.T) {
	app := completeApplication()
	app.Status = models.StatusConfirmed
	f := newFixture(app)
	f.confs.confs[app.ID] = &models.ProgramConfirmation{ApplicationID: app.ID}

	_, err := f.svc.SubmitFinancialAid(owner, completeAidForm())

	var ineligible *IneligibleActionError
	assert.ErrorAs(t, err, &ineligible)
}

func TestSubmitFinancialAidLocksAfterFiling(t *testing.T) {
	app := completeApplication()
	app.Status = models.StatusConfirmed
	f := newFixture(app)
	f.confs.confs[app.ID] = &models.ProgramConfirmation{ApplicationID: app.ID, FinancialAidRequest: true}

	_, err := f.svc.SubmitFinancialAid(owner, completeAidForm())
	require.NoError(t, err)

	_, err = f.svc.SubmitFinancialAid(owner, completeAidForm())
	var ineligible *IneligibleActionError
	assert.ErrorAs(t, err, &ineligible)
}

func TestSubmitFinancialAidValidation(t *testing.T) {
	app := completeApplication()
	app.Status = models.StatusConfirmed
	f := newFixture(app)
	f.confs.confs[app.ID] = &models.ProgramConfirmation{ApplicationID: app.ID, FinancialAidRequest: true}

	form := completeAidForm()
	form.WillProvideReturns = false
	form.Dependents = ""

	_, err := f.svc.SubmitFinancialAid(owner, form)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "willProvideReturns")
	assert.Contains(t, validation.Fields, "dependents")
}

func TestDecideAccept(t *testing.T) {
	submitted := completeApplication()
	submitted.Status = models.StatusSubmitted
	f := newFixture(submitted)

	app, err := f.svc.Decide(staff, submitted.ID, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, app.Status)

	require.Len(t, f.dispatcher.edges, 1)
	assert.Equal(t, models.StatusSubmitted, f.dispatcher.edges[0].from)
	assert.Equal(t, models.StatusAccepted, f.dispatcher.edges[0].to)
}

func TestDecideRequiresAdmin(t *testing.T) {
	submitted := completeApplication()
	submitted.Status = models.StatusSubmitted
	f := newFixture(submitted)

	_, err := f.svc.Decide(owner, submitted.ID, models.StatusAccepted)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, f.dispatcher.edges)
}

func TestDecideInvalidEdge(t *testing.T) {
	denied := completeApplication()
	denied.Status = models.StatusDenied
	f := newFixture(denied)

	_, err := f.svc.Decide(staff, denied.ID, models.StatusAccepted)

	var ite *InvalidTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, models.StatusDenied, ite.From)
}

func TestDecideUnknownApplication(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Decide(staff, "missing", models.StatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecideWithdrawFromAnyNonTerminal(t *testing.T) {
	for _, status := range []models.ApplicationStatus{
		models.StatusInProgress, models.StatusSubmitted,
		models.StatusAccepted, models.StatusConfirmed,
	} {
		app := completeApplication()
		app.Status = status
		f := newFixture(app)

		got, err := f.svc.Decide(staff, app.ID, models.StatusWithdrawn)
		require.NoError(t, err, "withdraw from %s", status)
		assert.Equal(t, models.StatusWithdrawn, got.Status)
	}
}

func TestSetUDLStudent(t *testing.T) {
	app := completeApplication()
	f := newFixture(app)

	got, err := f.svc.SetUDLStudent(staff, app.ID, true)
	require.NoError(t, err)
	assert.True(t, got.UDLStudent)

	_, err = f.svc.SetUDLStudent(owner, app.ID, false)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetConfirmationGuard(t *testing.T) {
	app := completeApplication()
	app.Status = models.StatusSubmitted
	f := newFixture(app)

	_, err := f.svc.GetConfirmation(owner)
	var ineligible *IneligibleActionError
	assert.ErrorAs(t, err, &ineligible)
}

// Full lifecycle: draft -> submit -> accept -> confirm -> aid, checking
// dispatched edges along the way.
func TestFullLifecycle(t *testing.T) {
	f := newFixture()
	f.profiles.profiles["u1"] = completeProfile()

	draft := models.ApplicationDraft{
		Name:                   "Ada Lovelace",
		Email:                  "ada@example.com",
		School:                 "Lakeside High",
		GradeLevel:             "11",
		YearsOfExperience:      "3",
		NumTournaments:         "12",
		DebateExperience:       "Policy debate since freshman year.",
		InterestEssay:          "I want to sharpen my case construction.",
		SelfAptitudeAssessment: "Strong rebuttals, weaker cross-ex.",
	}

	app, err := f.svc.SaveDraft(owner, draft)
	require.NoError(t, err)

	_, err = f.svc.Submit(owner)
	require.NoError(t, err)

	_, err = f.svc.Decide(staff, app.ID, models.StatusAccepted)
	require.NoError(t, err)

	form := completeConfirmationForm()
	form.FinancialAidRequest = true
	_, err = f.svc.SubmitConfirmation(owner, form)
	require.NoError(t, err)

	aid, err := f.svc.SubmitFinancialAid(owner, completeAidForm())
	require.NoError(t, err)
	assert.Equal(t, models.AidPending, aid.Status)

	require.Len(t, f.dispatcher.edges, 3)
	assert.Equal(t, models.StatusSubmitted, f.dispatcher.edges[0].to)
	assert.Equal(t, models.StatusAccepted, f.dispatcher.edges[1].to)
	assert.Equal(t, models.StatusConfirmed, f.dispatcher.edges[2].to)
	require.NotNil(t, f.dispatcher.edges[2].conf)
	assert.True(t, f.dispatcher.edges[2].conf.FinancialAidRequest)
}
