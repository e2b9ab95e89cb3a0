package models

import "time"

// ApplicationStatus is the lifecycle driver of an Application. It only ever
// moves along the edges in statusGraph.
type ApplicationStatus string

const (
	StatusNotStarted ApplicationStatus = "NOT_STARTED"
	StatusInProgress ApplicationStatus = "IN_PROGRESS"
	StatusSubmitted  ApplicationStatus = "SUBMITTED"
	StatusAccepted   ApplicationStatus = "ACCEPTED"
	StatusWaitlisted ApplicationStatus = "WAITLISTED"
	StatusDenied     ApplicationStatus = "DENIED"
	StatusConfirmed  ApplicationStatus = "CONFIRMED"
	StatusCompleted  ApplicationStatus = "COMPLETED"
	StatusWithdrawn  ApplicationStatus = "WITHDRAWN"
)

// statusGraph is the authoritative adjacency table. Every transition in the
// system is validated against this map and nothing else. WITHDRAWN is handled
// in CanTransitionTo so it stays reachable from every non-terminal state
// without being repeated per entry.
var statusGraph = map[ApplicationStatus][]ApplicationStatus{
	StatusNotStarted: {StatusInProgress},
	StatusInProgress: {StatusSubmitted},
	StatusSubmitted:  {StatusAccepted, StatusWaitlisted, StatusDenied},
	StatusAccepted:   {StatusConfirmed},
	StatusConfirmed:  {StatusCompleted},
	StatusWaitlisted: {},
	StatusDenied:     {},
	StatusCompleted:  {},
	StatusWithdrawn:  {},
}

// IsTerminal reports whether no further transitions are possible.
func (s ApplicationStatus) IsTerminal() bool {
	switch s {
	case StatusWaitlisted, StatusDenied, StatusCompleted, StatusWithdrawn:
		return true
	}
	return false
}

// IsValid reports whether s is a known status value.
func (s ApplicationStatus) IsValid() bool {
	_, ok := statusGraph[s]
	return ok
}

// CanTransitionTo reports whether the edge s -> to exists in the status graph.
func (s ApplicationStatus) CanTransitionTo(to ApplicationStatus) bool {
	if to == StatusWithdrawn {
		return !s.IsTerminal()
	}
	for _, next := range statusGraph[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Application is the applicant's single intake record. One per user.
type Application struct {
	ID         string            `bson:"id" json:"id"`
	UserID     string            `bson:"userId" json:"userId"`
	Status     ApplicationStatus `bson:"status" json:"status"`
	Name       string            `bson:"name" json:"name"`
	Email      string            `bson:"email" json:"email"`
	School     string            `bson:"school" json:"school"`
	GradeLevel string            `bson:"gradeLevel" json:"gradeLevel"`
	UDLStudent bool              `bson:"udlStudent" json:"udlStudent"`

	YearsOfExperience      string `bson:"yearsOfExperience" json:"yearsOfExperience"`
	NumTournaments         string `bson:"numTournaments" json:"numTournaments"`
	DebateExperience       string `bson:"debateExperience" json:"debateExperience"`
	InterestEssay          string `bson:"interestEssay" json:"interestEssay"`
	SelfAptitudeAssessment string `bson:"selfAptitudeAssessment" json:"selfAptitudeAssessment"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MissingFields returns the required submission fields that are still empty,
// in a stable order.
func (a *Application) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"email", a.Email},
		{"school", a.School},
		{"gradeLevel", a.GradeLevel},
		{"yearsOfExperience", a.YearsOfExperience},
		{"numTournaments", a.NumTournaments},
		{"debateExperience", a.DebateExperience},
		{"interestEssay", a.InterestEssay},
		{"selfAptitudeAssessment", a.SelfAptitudeAssessment},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ApplicationDraft carries the applicant-writable content fields for
// auto-save upserts. Status is deliberately absent: draft writes never touch
// the lifecycle.
type ApplicationDraft struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	School     string `json:"school"`
	GradeLevel string `json:"gradeLevel"`
	UDLStudent bool   `json:"udlStudent"`

	YearsOfExperience      string `json:"yearsOfExperience"`
	NumTournaments         string `json:"numTournaments"`
	DebateExperience       string `json:"debateExperience"`
	InterestEssay          string `json:"interestEssay"`
	SelfAptitudeAssessment string `json:"selfAptitudeAssessment"`
}
