package effects

import "podium/models"

// FeeSchedule holds the invoice amounts for the two fee branches.
type FeeSchedule struct {
	FullCents int64
	UDLCents  int64
}

// Effect is a non-authoritative side action owed after a committed status
// transition. Exactly one of Notification or Invoice is set.
type Effect struct {
	Notification *models.NotificationPayload
	Invoice      *models.InvoiceRequest
}

// recipients returns the applicant address plus the parent address when one
// is on file and differs from the applicant's.
func recipients(app *models.Application, profile *models.Profile) []string {
	addrs := []string{app.Email}
	if profile != nil && profile.ParentEmail != "" && profile.ParentEmail != app.Email {
		addrs = append(addrs, profile.ParentEmail)
	}
	return addrs
}

func notify(kind models.NotificationKind, app *models.Application, profile *models.Profile) Effect {
	return Effect{Notification: &models.NotificationPayload{
		Kind:       kind,
		Recipients: recipients(app, profile),
		Data: map[string]string{
			"applicationId": app.ID,
			"name":          app.Name,
		},
	}}
}

// EffectsFor maps a committed transition to the side effects it owes. It is a
// pure lookup: no I/O, no queueing. Edges not listed owe nothing.
//
//	* -> SUBMITTED                        submitted notification
//	SUBMITTED -> ACCEPTED|WAITLISTED|DENIED  decision letter (UDL branch on ACCEPTED)
//	ACCEPTED -> CONFIRMED                 confirmation received; invoice unless
//	                                      financial aid was requested
func EffectsFor(from, to models.ApplicationStatus, app *models.Application, conf *models.ProgramConfirmation, profile *models.Profile, fees FeeSchedule) []Effect {
	var out []Effect

	switch {
	case to == models.StatusSubmitted:
		out = append(out, notify(models.NotifySubmitted, app, profile))

	case from == models.StatusSubmitted && to == models.StatusAccepted:
		kind := models.NotifyAccepted
		if app.UDLStudent {
			kind = models.NotifyAcceptedUDL
		}
		out = append(out, notify(kind, app, profile))

	case from == models.StatusSubmitted && to == models.StatusWaitlisted:
		out = append(out, notify(models.NotifyWaitlisted, app, profile))

	case from == models.StatusSubmitted && to == models.StatusDenied:
		out = append(out, notify(models.NotifyDenied, app, profile))

	case from == models.StatusAccepted && to == models.StatusConfirmed:
		out = append(out, notify(models.NotifyConfirmationReceived, app, profile))
		if conf != nil && !conf.FinancialAidRequest {
			amount := fees.FullCents
			if app.UDLStudent {
				amount = fees.UDLCents
			}
			parentEmail := app.Email
			if profile != nil && profile.ParentEmail != "" {
				parentEmail = profile.ParentEmail
			}
			out = append(out, Effect{Invoice: &models.InvoiceRequest{
				ApplicationID: app.ID,
				StudentName:   conf.StudentName,
				ParentName:    conf.ParentName,
				ParentEmail:   parentEmail,
				AmountCents:   amount,
			}})
		}
	}

	return out
}
