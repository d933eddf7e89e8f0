package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/event"
	"jobboard/internal/domain/job"
)

// ApplicationService drives the application lifecycle. Applicants move
// APPLIED -> WITHDRAWN; reviewers move APPLIED/REVIEWED/SHORTLISTED between
// the review statuses. A withdrawn application is terminal for everyone.
type ApplicationService struct {
	apps   application.Repository
	jobs   job.Repository
	events event.Publisher
	logger Logger
}

func NewApplicationService(apps application.Repository, jobs job.Repository, events event.Publisher, logger Logger) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, events: events, logger: logger}
}

type ApplyInput struct {
	CoverLetter string
	ResumeURL   string
}

func (s *ApplicationService) Apply(ctx context.Context, actor authz.Actor, jobID common.UUID, in ApplyInput) (*application.Application, error) {
	if !authz.Evaluate(actor, authz.IsJobSeeker) {
		return nil, common.NewError(common.CodeForbidden, "only job seekers may apply", nil)
	}
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !posting.IsActive {
		return nil, common.NewValidationError("invalid application", map[string]string{"job_id": "job is no longer accepting applications"})
	}
	if _, err := s.apps.FindByJobAndApplicant(ctx, jobID, actor.ID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied to this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	created, err := s.apps.Create(ctx, application.Application{
		ApplicantID: actor.ID,
		JobID:       jobID,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		ResumeURL:   strings.TrimSpace(in.ResumeURL),
		Status:      application.StatusApplied,
	})
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("application created application_id=%s job_id=%s", created.ID, jobID))
	s.publish(event.Event{
		SubjectType: event.SubjectApplication,
		SubjectID:   created.ID,
		Name:        event.NameCreated,
		Payload: map[string]string{
			"job_id":       jobID.String(),
			"applicant_id": actor.ID.String(),
		},
	})
	return created, nil
}

// UpdateStatus is the reviewer path. Only the job owner or an admin may move
// an application, only into a review status, and never out of WITHDRAWN.
// Setting the current status again is accepted and still stamps reviewed_at.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor authz.Actor, id common.UUID, status application.Status) (*application.Application, error) {
	app, posting, err := s.loadForReview(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !authz.Evaluate(actor, authz.IsAdmin, authz.JobOwnerOf(posting)) {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another account", nil)
	}
	next := application.NormalizeStatus(status)
	if !application.KnownStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be REVIEWED, SHORTLISTED, ACCEPTED, or REJECTED"})
	}
	if !application.ReviewStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status cannot be set through review"})
	}
	if app.Status == application.StatusWithdrawn {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "application has been withdrawn"})
	}
	previous := app.Status
	now := time.Now().UTC()
	app.Status = next
	app.ReviewedAt = &now
	updated, err := s.apps.UpdateStatus(ctx, *app)
	if err != nil {
		return nil, err
	}
	if previous != next {
		s.logInfo(fmt.Sprintf("application status changed application_id=%s from=%s to=%s", id, previous, next))
		s.publish(event.Event{
			SubjectType: event.SubjectApplication,
			SubjectID:   id,
			Name:        event.NameStatusChanged,
			Payload: map[string]string{
				"from":         string(previous),
				"to":           string(next),
				"applicant_id": updated.ApplicantID.String(),
			},
		})
	}
	return updated, nil
}

// Withdraw is the applicant path. Only the applicant may withdraw, and only
// while the application is still in APPLIED.
func (s *ApplicationService) Withdraw(ctx context.Context, actor authz.Actor, id common.UUID) (*application.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if common.Is(err, common.CodeNotFound) && !actor.IsAdmin() {
			return nil, common.NewError(common.CodeForbidden, "application belongs to another account", nil)
		}
		return nil, err
	}
	if !authz.Evaluate(actor, authz.ApplicantOf(app)) {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another account", nil)
	}
	if app.Status != application.StatusApplied {
		return nil, common.NewValidationError("invalid withdrawal", map[string]string{"status": "only applications in APPLIED can be withdrawn"})
	}
	now := time.Now().UTC()
	app.Status = application.StatusWithdrawn
	app.WithdrawnAt = &now
	updated, err := s.apps.UpdateStatus(ctx, *app)
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("application withdrawn application_id=%s", id))
	s.publish(event.Event{
		SubjectType: event.SubjectApplication,
		SubjectID:   id,
		Name:        event.NameStatusChanged,
		Payload: map[string]string{
			"from":         string(application.StatusApplied),
			"to":           string(application.StatusWithdrawn),
			"applicant_id": updated.ApplicantID.String(),
		},
	})
	return updated, nil
}

// Get lets the applicant, the job owner, or an admin read an application.
func (s *ApplicationService) Get(ctx context.Context, actor authz.Actor, id common.UUID) (*application.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if common.Is(err, common.CodeNotFound) && !actor.IsAdmin() {
			return nil, common.NewError(common.CodeForbidden, "application belongs to another account", nil)
		}
		return nil, err
	}
	if authz.Evaluate(actor, authz.IsAdmin, authz.ApplicantOf(app)) {
		return app, nil
	}
	posting, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil && !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if !authz.Evaluate(actor, authz.JobOwnerOf(posting)) {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another account", nil)
	}
	return app, nil
}

// ListForJob returns the applications for a posting. The posting's owner and
// admins see every row; a job seeker sees only their own row. Non-admins
// cannot tell an absent job from a foreign one.
func (s *ApplicationService) ListForJob(ctx context.Context, actor authz.Actor, jobID common.UUID) ([]application.Application, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) && !actor.IsAdmin() {
			return nil, common.NewError(common.CodeForbidden, "job belongs to another account", nil)
		}
		return nil, err
	}
	if actor.IsJobSeeker() {
		own, err := s.apps.FindByJobAndApplicant(ctx, jobID, actor.ID)
		if err != nil {
			if common.Is(err, common.CodeNotFound) {
				return []application.Application{}, nil
			}
			return nil, err
		}
		return []application.Application{*own}, nil
	}
	if !authz.Evaluate(actor, authz.IsAdmin, authz.JobOwnerOf(posting)) {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another account", nil)
	}
	return s.apps.ListByJob(ctx, jobID)
}

func (s *ApplicationService) ListMine(ctx context.Context, actor authz.Actor) ([]application.Application, error) {
	if !authz.Evaluate(actor, authz.Authenticated) {
		return nil, common.NewError(common.CodeUnauthorized, "authentication required", nil)
	}
	return s.apps.ListByApplicant(ctx, actor.ID)
}

func (s *ApplicationService) loadForReview(ctx context.Context, actor authz.Actor, id common.UUID) (*application.Application, *job.Job, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if common.Is(err, common.CodeNotFound) && !actor.IsAdmin() {
			return nil, nil, common.NewError(common.CodeForbidden, "application belongs to another account", nil)
		}
		return nil, nil, err
	}
	posting, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			if actor.IsAdmin() {
				return app, nil, nil
			}
			return nil, nil, common.NewError(common.CodeForbidden, "application belongs to another account", nil)
		}
		return nil, nil, err
	}
	return app, posting, nil
}

func (s *ApplicationService) publish(e event.Event) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(e)
}

func (s *ApplicationService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
