// Package domain defines the error taxonomy shared by services, repositories
// and HTTP handlers. Handlers translate these into status codes; everything
// else just wraps and propagates.
package domain

import "fmt"

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing entity. Entity is a short noun
// ("request", "relationship", "user") used in the client-facing message.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// DuplicateRelationshipError is returned when a (client, therapist) pair
// is already assigned.
type DuplicateRelationshipError struct {
	ClientID    string
	TherapistID string
}

func (e *DuplicateRelationshipError) Error() string {
	return fmt.Sprintf("therapist %s already assigned to client %s", e.TherapistID, e.ClientID)
}

// CapacityExceededError is returned when a therapist is at the active
// relationship cap.
type CapacityExceededError struct {
	TherapistID string
	Limit       int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("therapist %s has reached the maximum of %d clients", e.TherapistID, e.Limit)
}

// NotATherapistError is returned when the target profile is missing or not
// flagged as a therapist.
type NotATherapistError struct {
	ID string
}

func (e *NotATherapistError) Error() string {
	return fmt.Sprintf("profile %s does not exist or is not a therapist", e.ID)
}

// QuestCooldownError is returned when a quest is completed again before
// its daily or weekly window has elapsed.
type QuestCooldownError struct {
	QuestName string
	Window    string
}

func (e *QuestCooldownError) Error() string {
	return fmt.Sprintf("quest %q already completed in the current %s window", e.QuestName, e.Window)
}

// InvalidTransitionError is returned when a request status change is not
// allowed from the request's current status. Transitions are restricted to
// pending -> accepted and pending -> declined.
type InvalidTransitionError struct {
	RequestID string
	From      string
	To        string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("request %s: cannot transition from %s to %s", e.RequestID, e.From, e.To)
}
