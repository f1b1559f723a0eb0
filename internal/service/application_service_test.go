package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/jobboard-service/internal/domain"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

func newApplicationFixture(t *testing.T) (*ApplicationService, *fakeJobRepo, *fakeApplicationRepo, *fakeStatusChangeRepo) {
	t.Helper()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo(jobs)
	changes := &fakeStatusChangeRepo{}
	svc := NewApplicationService(ApplicationDependencies{
		ApplicationRepo:  apps,
		JobRepo:          jobs,
		StatusChangeRepo: changes,
	})
	return svc, jobs, apps, changes
}

func seedJob(t *testing.T, jobs *fakeJobRepo, ownerID, title string) *domain.Job {
	t.Helper()
	job := &domain.Job{Title: title, Company: "Acme", PostedBy: ownerID, IsActive: true}
	if err := jobs.Create(context.Background(), job); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func domainErrCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return de.Code
}

func TestApplyCreatesApplicationWithDefaults(t *testing.T) {
	svc, jobs, _, _ := newApplicationFixture(t)
	recruiter := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}
	seeker := &domain.User{ID: "seek-1", Role: domain.RoleSeeker}
	job := seedJob(t, jobs, recruiter.ID, "Backend Engineer")

	cover := "I love Acme"
	app, err := svc.Apply(context.Background(), seeker, ApplyInput{JobID: job.ID, CoverLetter: &cover})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if app.Status != domain.StatusApplied {
		t.Fatalf("Apply() status = %q, want %q", app.Status, domain.StatusApplied)
	}
	if app.ApplicantID != seeker.ID {
		t.Fatalf("Apply() applicant = %q, want %q", app.ApplicantID, seeker.ID)
	}
	if app.ResumeURL != nil {
		t.Fatalf("Apply() resume url = %v, want nil", *app.ResumeURL)
	}
}

func TestApplyRejectsDuplicate(t *testing.T) {
	svc, jobs, apps, _ := newApplicationFixture(t)
	recruiter := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}
	seeker := &domain.User{ID: "seek-1", Role: domain.RoleSeeker}
	job := seedJob(t, jobs, recruiter.ID, "Backend Engineer")

	if _, err := svc.Apply(context.Background(), seeker, ApplyInput{JobID: job.ID}); err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}
	_, err := svc.Apply(context.Background(), seeker, ApplyInput{JobID: job.ID})
	if code := domainErrCode(t, err); code != "CONFLICT" {
		t.Fatalf("second Apply() code = %q, want CONFLICT", code)
	}
	if len(apps.apps) != 1 {
		t.Fatalf("application count = %d, want 1", len(apps.apps))
	}
}

func TestApplyUnknownJob(t *testing.T) {
	svc, _, _, _ := newApplicationFixture(t)
	seeker := &domain.User{ID: "seek-1", Role: domain.RoleSeeker}

	_, err := svc.Apply(context.Background(), seeker, ApplyInput{JobID: "missing"})
	if code := domainErrCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("Apply() code = %q, want NOT_FOUND", code)
	}
}

func TestUpdateStatusRequiresJobOwnership(t *testing.T) {
	svc, jobs, apps, _ := newApplicationFixture(t)
	recruiter := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}
	stranger := &domain.User{ID: "rec-2", Role: domain.RoleRecruiter}
	seeker := &domain.User{ID: "seek-1", Role: domain.RoleSeeker}
	job := seedJob(t, jobs, recruiter.ID, "Backend Engineer")

	app, err := svc.Apply(context.Background(), seeker, ApplyInput{JobID: job.ID})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), recruiter, app.ID, domain.StatusShortlisted); err != nil {
		t.Fatalf("owner UpdateStatus() error = %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), stranger, app.ID, domain.StatusRejected)
	if code := domainErrCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("stranger UpdateStatus() code = %q, want FORBIDDEN", code)
	}
	if got := apps.apps[app.ID].Status; got != domain.StatusShortlisted {
		t.Fatalf("status after rejected update = %q, want %q", got, domain.StatusShortlisted)
	}
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	svc, jobs, _, _ := newApplicationFixture(t)
	recruiter := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}
	seeker := &domain.User{ID: "seek-1", Role: domain.RoleSeeker}
	job := seedJob(t, jobs, recruiter.ID, "Backend Engineer")

	app, err := svc.Apply(context.Background(), seeker, ApplyInput{JobID: job.ID})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// Applied -> Rejected directly, no intermediate states required.
	updated, err := svc.UpdateStatus(context.Background(), recruiter, app.ID, domain.StatusRejected)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.Status != domain.StatusRejected {
		t.Fatalf("status = %q, want %q", updated.Status, domain.StatusRejected)
	}

	// Back to Applied is not guarded either.
	if _, err := svc.UpdateStatus(context.Background(), recruiter, app.ID, domain.StatusApplied); err != nil {
		t.Fatalf("UpdateStatus() back to Applied error = %v", err)
	}
}

func TestUpdateStatusIdempotent(t *testing.T) {
	svc, jobs, _, changes := newApplicationFixture(t)
	recruiter := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}
	seeker := &domain.User{ID: "seek-1", Role: domain.RoleSeeker}
	job := seedJob(t, jobs, recruiter.ID, "Backend Engineer")

	app, err := svc.Apply(context.Background(), seeker, ApplyInput{JobID: job.ID})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		updated, err := svc.UpdateStatus(context.Background(), recruiter, app.ID, domain.StatusViewed)
		if err != nil {
			t.Fatalf("UpdateStatus() run %d error = %v", i+1, err)
		}
		if updated.Status != domain.StatusViewed {
			t.Fatalf("run %d status = %q, want %q", i+1, updated.Status, domain.StatusViewed)
		}
	}
	// Only the actual change is recorded in history.
	if len(changes.changes) != 1 {
		t.Fatalf("history entries = %d, want 1", len(changes.changes))
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc, jobs, _, _ := newApplicationFixture(t)
	recruiter := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}
	seeker := &domain.User{ID: "seek-1", Role: domain.RoleSeeker}
	job := seedJob(t, jobs, recruiter.ID, "Backend Engineer")

	app, err := svc.Apply(context.Background(), seeker, ApplyInput{JobID: job.ID})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), recruiter, app.ID, domain.ApplicationStatus("Archived"))
	if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("UpdateStatus() code = %q, want VALIDATION_FAILED", code)
	}
}

func TestUpdateStatusMissingApplication(t *testing.T) {
	svc, _, _, _ := newApplicationFixture(t)
	recruiter := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}

	_, err := svc.UpdateStatus(context.Background(), recruiter, "missing", domain.StatusViewed)
	if code := domainErrCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("UpdateStatus() code = %q, want NOT_FOUND", code)
	}
}

func TestListScopingPerRole(t *testing.T) {
	svc, jobs, _, _ := newApplicationFixture(t)
	recruiterA := &domain.User{ID: "rec-a", Role: domain.RoleRecruiter}
	recruiterB := &domain.User{ID: "rec-b", Role: domain.RoleRecruiter}
	seeker1 := &domain.User{ID: "seek-1", Role: domain.RoleSeeker}
	seeker2 := &domain.User{ID: "seek-2", Role: domain.RoleSeeker}

	jobA := seedJob(t, jobs, recruiterA.ID, "Backend Engineer")
	jobB := seedJob(t, jobs, recruiterB.ID, "Frontend Engineer")

	mustApply := func(actor *domain.User, jobID string) {
		t.Helper()
		if _, err := svc.Apply(context.Background(), actor, ApplyInput{JobID: jobID}); err != nil {
			t.Fatalf("Apply(%s, %s) error = %v", actor.ID, jobID, err)
		}
	}
	mustApply(seeker1, jobA.ID)
	mustApply(seeker1, jobB.ID)
	mustApply(seeker2, jobB.ID)

	mine, err := svc.ListMine(context.Background(), seeker1)
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("seeker1 applications = %d, want 2", len(mine))
	}
	for _, item := range mine {
		if item.Application.ApplicantID != seeker1.ID {
			t.Fatalf("ListMine() leaked application for %q", item.Application.ApplicantID)
		}
	}

	incoming, err := svc.ListIncoming(context.Background(), recruiterB)
	if err != nil {
		t.Fatalf("ListIncoming() error = %v", err)
	}
	if len(incoming) != 2 {
		t.Fatalf("recruiterB incoming = %d, want 2", len(incoming))
	}
	for _, item := range incoming {
		if item.Application.JobID != jobB.ID {
			t.Fatalf("ListIncoming() leaked application for job %q", item.Application.JobID)
		}
	}
}

func TestStatusHistoryVisibleToJobOwnerOnly(t *testing.T) {
	svc, jobs, _, _ := newApplicationFixture(t)
	recruiter := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}
	stranger := &domain.User{ID: "rec-2", Role: domain.RoleRecruiter}
	seeker := &domain.User{ID: "seek-1", Role: domain.RoleSeeker}
	job := seedJob(t, jobs, recruiter.ID, "Backend Engineer")

	app, err := svc.Apply(context.Background(), seeker, ApplyInput{JobID: job.ID})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), recruiter, app.ID, domain.StatusViewed); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	history, err := svc.ListStatusHistory(context.Background(), recruiter, app.ID)
	if err != nil {
		t.Fatalf("ListStatusHistory() error = %v", err)
	}
	if len(history) != 1 || history[0].NewStatus != domain.StatusViewed {
		t.Fatalf("history = %+v, want single Viewed entry", history)
	}

	_, err = svc.ListStatusHistory(context.Background(), stranger, app.ID)
	if code := domainErrCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("stranger ListStatusHistory() code = %q, want FORBIDDEN", code)
	}
}
