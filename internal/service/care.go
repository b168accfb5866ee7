// Package service holds the business workflows between the HTTP handlers
// and the repositories. Services validate input, enforce the request state
// machine and relationship rules, and emit notifications.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Amaan112005/mindmate/internal/domain"
	"github.com/Amaan112005/mindmate/internal/models"
	"github.com/Amaan112005/mindmate/internal/repository"
)

// CareService runs the therapist marketplace: the request ledger, the
// relationship registry and the notifications they produce.
type CareService struct {
	profiles      repository.ProfileRepository
	requests      repository.RequestRepository
	relationships repository.RelationshipRepository
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

func NewCareService(
	profiles repository.ProfileRepository,
	requests repository.RequestRepository,
	relationships repository.RelationshipRepository,
	notifications repository.NotificationRepository,
	logger *zap.Logger,
) *CareService {
	return &CareService{
		profiles:      profiles,
		requests:      requests,
		relationships: relationships,
		notifications: notifications,
		logger:        logger,
	}
}

// RequestInput carries the client's contact details and ask.
type RequestInput struct {
	ClientID    string
	TherapistID string
	Name        string
	Email       string
	Phone       string
	Description string
	PreferredAt *time.Time
}

// SubmitRequest appends a pending request to the ledger. Contact fields are
// required and a preferred appointment time must be strictly in the future.
func (s *CareService) SubmitRequest(ctx context.Context, in RequestInput) (*models.TherapistRequest, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	case strings.TrimSpace(in.Email) == "":
		return nil, &domain.ValidationError{Field: "email", Reason: "required"}
	case strings.TrimSpace(in.Phone) == "":
		return nil, &domain.ValidationError{Field: "phone", Reason: "required"}
	case in.TherapistID == "":
		return nil, &domain.ValidationError{Field: "therapist_id", Reason: "required"}
	}
	if in.PreferredAt != nil && !in.PreferredAt.After(time.Now()) {
		return nil, &domain.ValidationError{Field: "appointment_at", Reason: "must be in the future"}
	}

	therapist, err := s.profiles.GetByID(ctx, in.TherapistID)
	if err != nil {
		return nil, err
	}
	if therapist == nil || !therapist.IsTherapist {
		return nil, &domain.NotATherapistError{ID: in.TherapistID}
	}

	req := &models.TherapistRequest{
		ClientID:      in.ClientID,
		TherapistID:   in.TherapistID,
		ClientName:    strings.TrimSpace(in.Name),
		ClientEmail:   strings.TrimSpace(in.Email),
		ClientPhone:   strings.TrimSpace(in.Phone),
		Description:   in.Description,
		AppointmentAt: in.PreferredAt,
		Status:        models.RequestStatusPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("therapist request submitted",
		zap.String("request_id", req.ID),
		zap.String("client_id", req.ClientID),
		zap.String("therapist_id", req.TherapistID))
	return req, nil
}

func (s *CareService) ListPending(ctx context.Context, therapistID string) ([]models.TherapistRequest, error) {
	return s.requests.ListPendingByTherapist(ctx, therapistID)
}

func (s *CareService) ListPendingForClient(ctx context.Context, clientID string) ([]models.TherapistRequest, error) {
	return s.requests.ListPendingByClient(ctx, clientID)
}

// GetRequest returns a request or NotFoundError.
func (s *CareService) GetRequest(ctx context.Context, id string) (*models.TherapistRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, &domain.NotFoundError{Entity: "request"}
	}
	return req, nil
}

// transition moves a request out of pending. Any other move fails with
// InvalidTransitionError.
func (s *CareService) transition(ctx context.Context, id, to string) (*models.TherapistRequest, error) {
	if to != models.RequestStatusAccepted && to != models.RequestStatusDeclined {
		return nil, &domain.InvalidTransitionError{RequestID: id, To: to}
	}

	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	moved, err := s.requests.UpdateStatusFromPending(ctx, id, to)
	if err != nil {
		return nil, err
	}
	if !moved && req.Status != to {
		return nil, &domain.InvalidTransitionError{RequestID: id, From: req.Status, To: to}
	}
	req.Status = to
	return req, nil
}

// AcceptRequest is the accept saga: flip the request to accepted, assign the
// client to the therapist, notify the client. The whole workflow is
// idempotent per request id, so a retry after a partial failure converges
// instead of duplicating relationships or notifications. Only the therapist
// the request is addressed to may accept it.
func (s *CareService) AcceptRequest(ctx context.Context, requestID, therapistID string) (*models.TherapistRequest, error) {
	req, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.TherapistID != therapistID {
		// The request is addressed to another therapist; to the caller
		// it does not exist.
		return nil, &domain.NotFoundError{Entity: "request"}
	}
	if req.Status == models.RequestStatusDeclined {
		return nil, &domain.InvalidTransitionError{
			RequestID: requestID, From: req.Status, To: models.RequestStatusAccepted,
		}
	}

	if req.IsPending() {
		if _, err := s.transition(ctx, requestID, models.RequestStatusAccepted); err != nil {
			return nil, err
		}
		req.Status = models.RequestStatusAccepted
	}

	err = s.Assign(ctx, req.ClientID, req.TherapistID, req.ClientName, req.ClientEmail)
	if err != nil {
		var dup *domain.DuplicateRelationshipError
		if !errors.As(err, &dup) {
			return nil, err
		}
		// Already assigned on a previous attempt; carry on to the
		// notification, which is keyed by request id.
	}

	n := &models.Notification{
		UserID:    req.ClientID,
		Message:   "Your therapy request was accepted.",
		Type:      models.NotificationTypeRequestAccepted,
		RequestID: &req.ID,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}

	s.logger.Info("request accepted",
		zap.String("request_id", req.ID),
		zap.String("client_id", req.ClientID),
		zap.String("therapist_id", req.TherapistID))
	return req, nil
}

// DeclineRequest flips the request to declined and notifies the client.
// Only the addressed therapist may decline.
func (s *CareService) DeclineRequest(ctx context.Context, requestID, therapistID string) (*models.TherapistRequest, error) {
	req, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.TherapistID != therapistID {
		return nil, &domain.NotFoundError{Entity: "request"}
	}

	req, err = s.transition(ctx, requestID, models.RequestStatusDeclined)
	if err != nil {
		return nil, err
	}

	n := &models.Notification{
		UserID:    req.ClientID,
		Message:   "Your therapy request was declined.",
		Type:      models.NotificationTypeRequestDeclined,
		RequestID: &req.ID,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}

	s.logger.Info("request declined", zap.String("request_id", req.ID))
	return req, nil
}

// CancelRequest deletes the client's own still-pending request.
func (s *CareService) CancelRequest(ctx context.Context, requestID, clientID string) error {
	deleted, err := s.requests.DeletePending(ctx, requestID, clientID)
	if err != nil {
		return err
	}
	if !deleted {
		return &domain.NotFoundError{Entity: "request"}
	}
	return nil
}

// Assign registers an active relationship between a client and a therapist.
// A shadow client profile is upserted first so assignments can precede the
// client ever signing up.
func (s *CareService) Assign(ctx context.Context, clientID, therapistID, name, email string) error {
	if name == "" {
		name = "Client " + clientID
	}
	if email == "" {
		email = clientID + "@unknown.local"
	}
	if err := s.profiles.UpsertClient(ctx, &models.Profile{
		ID:          clientID,
		DisplayName: name,
		Email:       email,
		IsClient:    true,
	}); err != nil {
		return err
	}

	therapist, err := s.profiles.GetByID(ctx, therapistID)
	if err != nil {
		return err
	}
	if therapist == nil || !therapist.IsTherapist {
		return &domain.NotATherapistError{ID: therapistID}
	}

	exists, err := s.relationships.Exists(ctx, clientID, therapistID)
	if err != nil {
		return err
	}
	if exists {
		return &domain.DuplicateRelationshipError{ClientID: clientID, TherapistID: therapistID}
	}

	count, err := s.relationships.CountByTherapist(ctx, therapistID)
	if err != nil {
		return err
	}
	if count >= models.TherapistCapacity {
		return &domain.CapacityExceededError{TherapistID: therapistID, Limit: models.TherapistCapacity}
	}

	if err := s.relationships.Create(ctx, &models.Relationship{
		ClientID:    clientID,
		TherapistID: therapistID,
	}); err != nil {
		return err
	}

	s.logger.Info("client assigned",
		zap.String("client_id", clientID),
		zap.String("therapist_id", therapistID))
	return nil
}

// Unassign removes the relationship pair.
func (s *CareService) Unassign(ctx context.Context, clientID, therapistID string) error {
	deleted, err := s.relationships.Delete(ctx, clientID, therapistID)
	if err != nil {
		return err
	}
	if !deleted {
		return &domain.NotFoundError{Entity: "relationship"}
	}
	return nil
}

// TherapistFor returns the client's assigned therapist profile, nil when the
// client has no relationship.
func (s *CareService) TherapistFor(ctx context.Context, clientID string) (*models.Profile, error) {
	therapistID, err := s.relationships.FirstTherapistIDFor(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if therapistID == "" {
		return nil, nil
	}
	return s.profiles.GetByID(ctx, therapistID)
}

// ListClients pages through the therapist's active clients.
// VerifyClient fails with NotFoundError unless the client is assigned to
// the therapist. Handlers use it to gate per-client reads.
func (s *CareService) VerifyClient(ctx context.Context, therapistID, clientID string) error {
	assigned, err := s.relationships.Exists(ctx, clientID, therapistID)
	if err != nil {
		return err
	}
	if !assigned {
		return &domain.NotFoundError{Entity: "client"}
	}
	return nil
}

func (s *CareService) ListClients(ctx context.Context, therapistID string, limit, offset int) ([]models.ClientSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.relationships.ListClientSummaries(ctx, therapistID, limit, offset)
}

// ListTherapists returns the available-therapist directory.
func (s *CareService) ListTherapists(ctx context.Context, specialization string) ([]models.Profile, error) {
	return s.profiles.ListTherapists(ctx, specialization)
}
