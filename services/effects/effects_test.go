package effects

import (
	"testing"

	"podium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFees = FeeSchedule{FullCents: 59900, UDLCents: 29900}

func testApp() *models.Application {
	return &models.Application{
		ID:     "a1",
		UserID: "u1",
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
	}
}

func testProfile() *models.Profile {
	return &models.Profile{UserID: "u1", ParentEmail: "parent@example.com"}
}

func TestEffectsForSubmission(t *testing.T) {
	out := EffectsFor(models.StatusInProgress, models.StatusSubmitted, testApp(), nil, testProfile(), testFees)

	require.Len(t, out, 1)
	n := out[0].Notification
	require.NotNil(t, n)
	assert.Equal(t, models.NotifySubmitted, n.Kind)
	assert.Equal(t, []string{"ada@example.com", "parent@example.com"}, n.Recipients)
	assert.Equal(t, "a1", n.Data["applicationId"])
}

func TestEffectsForDecisions(t *testing.T) {
	tests := []struct {
		name string
		to   models.ApplicationStatus
		udl  bool
		kind models.NotificationKind
	}{
		{"accepted", models.StatusAccepted, false, models.NotifyAccepted},
		{"accepted udl", models.StatusAccepted, true, models.NotifyAcceptedUDL},
		{"waitlisted", models.StatusWaitlisted, false, models.NotifyWaitlisted},
		{"denied", models.StatusDenied, false, models.NotifyDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp()
			app.UDLStudent = tt.udl

			out := EffectsFor(models.StatusSubmitted, tt.to, app, nil, testProfile(), testFees)
			require.Len(t, out, 1)
			require.NotNil(t, out[0].Notification)
			assert.Equal(t, tt.kind, out[0].Notification.Kind)
		})
	}
}

func TestEffectsForConfirmation(t *testing.T) {
	conf := &models.ProgramConfirmation{
		ApplicationID: "a1",
		StudentName:   "Ada Lovelace",
		ParentName:    "Annabella Byron",
	}

	out := EffectsFor(models.StatusAccepted, models.StatusConfirmed, testApp(), conf, testProfile(), testFees)
	require.Len(t, out, 2)

	require.NotNil(t, out[0].Notification)
	assert.Equal(t, models.NotifyConfirmationReceived, out[0].Notification.Kind)

	inv := out[1].Invoice
	require.NotNil(t, inv)
	assert.Equal(t, "a1", inv.ApplicationID)
	assert.Equal(t, int64(59900), inv.AmountCents)
	assert.Equal(t, "parent@example.com", inv.ParentEmail)
	assert.Equal(t, "Annabella Byron", inv.ParentName)
}

func TestEffectsForConfirmationUDLFee(t *testing.T) {
	app := testApp()
	app.UDLStudent = true
	conf := &models.ProgramConfirmation{ApplicationID: "a1", StudentName: "Ada Lovelace"}

	out := EffectsFor(models.StatusAccepted, models.StatusConfirmed, app, conf, testProfile(), testFees)
	require.Len(t, out, 2)
	require.NotNil(t, out[1].Invoice)
	assert.Equal(t, int64(29900), out[1].Invoice.AmountCents)
}

func TestEffectsForConfirmationWithAidRequest(t *testing.T) {
	// An aid request defers billing: notification only, no invoice.
	conf := &models.ProgramConfirmation{ApplicationID: "a1", FinancialAidRequest: true}

	out := EffectsFor(models.StatusAccepted, models.StatusConfirmed, testApp(), conf, testProfile(), testFees)
	require.Len(t, out, 1)
	assert.NotNil(t, out[0].Notification)
}

func TestEffectsForSilentEdges(t *testing.T) {
	silent := []struct{ from, to models.ApplicationStatus }{
		{models.StatusNotStarted, models.StatusInProgress},
		{models.StatusInProgress, models.StatusWithdrawn},
		{models.StatusSubmitted, models.StatusWithdrawn},
		{models.StatusConfirmed, models.StatusCompleted},
		{models.StatusConfirmed, models.StatusWithdrawn},
	}
	for _, edge := range silent {
		out := EffectsFor(edge.from, edge.to, testApp(), nil, testProfile(), testFees)
		assert.Empty(t, out, "%s -> %s should owe nothing", edge.from, edge.to)
	}
}

func TestRecipientsDeduplicated(t *testing.T) {
	profile := &models.Profile{UserID: "u1", ParentEmail: "ada@example.com"}
	out := EffectsFor(models.StatusInProgress, models.StatusSubmitted, testApp(), nil, profile, testFees)

	require.Len(t, out, 1)
	assert.Equal(t, []string{"ada@example.com"}, out[0].Notification.Recipients)
}

func TestRecipientsWithoutProfile(t *testing.T) {
	out := EffectsFor(models.StatusInProgress, models.StatusSubmitted, testApp(), nil, nil, testFees)

	require.Len(t, out, 1)
	assert.Equal(t, []string{"ada@example.com"}, out[0].Notification.Recipients)
}

func TestTaskPayloadRoundTrip(t *testing.T) {
	task, err := NewNotifyTask(models.NotificationPayload{
		Kind:       models.NotifySubmitted,
		Recipients: []string{"ada@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, TypeNotifySend, task.Type())

	invTask, err := NewInvoiceTask(models.InvoiceRequest{ApplicationID: "a1", AmountCents: 59900})
	require.NoError(t, err)
	assert.Equal(t, TypeInvoiceCreate, invTask.Type())
}
