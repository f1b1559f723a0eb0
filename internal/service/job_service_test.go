package service

import (
	"context"
	"testing"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

func newJobFixture(t *testing.T) (*JobService, *fakeJobRepo) {
	t.Helper()
	jobs := newFakeJobRepo()
	svc := NewJobService(JobDependencies{JobRepo: jobs})
	return svc, jobs
}

func TestCreateJobRequiresRecruiter(t *testing.T) {
	svc, _ := newJobFixture(t)
	seeker := &domain.User{ID: "seek-1", Role: domain.RoleSeeker}

	_, err := svc.Create(context.Background(), seeker, JobCreateInput{Title: "Backend Engineer"})
	if code := domainErrCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("Create() code = %q, want FORBIDDEN", code)
	}
}

func TestCreateJobSetsOwnerFromPrincipal(t *testing.T) {
	svc, _ := newJobFixture(t)
	recruiter := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}

	job, err := svc.Create(context.Background(), recruiter, JobCreateInput{
		Title:   "Backend Engineer",
		Company: "Acme",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if job.PostedBy != recruiter.ID {
		t.Fatalf("PostedBy = %q, want %q", job.PostedBy, recruiter.ID)
	}
	if !job.IsActive {
		t.Fatalf("IsActive = false, want true")
	}
}

func TestCreateJobValidatesEmploymentType(t *testing.T) {
	svc, _ := newJobFixture(t)
	recruiter := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}
	bogus := domain.EmploymentType("Gig")

	_, err := svc.Create(context.Background(), recruiter, JobCreateInput{
		Title:          "Backend Engineer",
		EmploymentType: &bogus,
	})
	if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("Create() code = %q, want VALIDATION_FAILED", code)
	}
}

func TestUpdateJobOwnershipGate(t *testing.T) {
	svc, jobs := newJobFixture(t)
	owner := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}
	stranger := &domain.User{ID: "rec-2", Role: domain.RoleRecruiter}

	job, err := svc.Create(context.Background(), owner, JobCreateInput{Title: "Backend Engineer"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newTitle := "Platform Engineer"
	_, err = svc.Update(context.Background(), stranger, job.ID, JobPatch{Title: &newTitle})
	if code := domainErrCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("stranger Update() code = %q, want FORBIDDEN", code)
	}
	if got := jobs.jobs[job.ID].Title; got != "Backend Engineer" {
		t.Fatalf("title after forbidden update = %q, want unchanged", got)
	}

	updated, err := svc.Update(context.Background(), owner, job.ID, JobPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("owner Update() error = %v", err)
	}
	if updated.Title != newTitle {
		t.Fatalf("title = %q, want %q", updated.Title, newTitle)
	}
}

func TestUpdateJobPatchIsPartial(t *testing.T) {
	svc, _ := newJobFixture(t)
	owner := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}

	job, err := svc.Create(context.Background(), owner, JobCreateInput{
		Title:    "Backend Engineer",
		Company:  "Acme",
		Location: "Berlin",
		Skills:   []string{"go", "postgres"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	location := "Remote"
	updated, err := svc.Update(context.Background(), owner, job.ID, JobPatch{Location: &location})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Location != "Remote" {
		t.Fatalf("location = %q, want Remote", updated.Location)
	}
	if updated.Title != "Backend Engineer" || updated.Company != "Acme" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.PostedBy != owner.ID {
		t.Fatalf("PostedBy = %q, want %q", updated.PostedBy, owner.ID)
	}
}

func TestUpdateJobNotFound(t *testing.T) {
	svc, _ := newJobFixture(t)
	owner := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}

	title := "x"
	_, err := svc.Update(context.Background(), owner, "missing", JobPatch{Title: &title})
	if code := domainErrCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("Update() code = %q, want NOT_FOUND", code)
	}
}

func TestDeleteJobOwnershipGate(t *testing.T) {
	svc, jobs := newJobFixture(t)
	owner := &domain.User{ID: "rec-1", Role: domain.RoleRecruiter}
	stranger := &domain.User{ID: "rec-2", Role: domain.RoleRecruiter}

	job, err := svc.Create(context.Background(), owner, JobCreateInput{Title: "Backend Engineer"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err = svc.Delete(context.Background(), stranger, job.ID)
	if code := domainErrCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("stranger Delete() code = %q, want FORBIDDEN", code)
	}
	if _, ok := jobs.jobs[job.ID]; !ok {
		t.Fatalf("job removed by forbidden delete")
	}

	if err := svc.Delete(context.Background(), owner, job.ID); err != nil {
		t.Fatalf("owner Delete() error = %v", err)
	}
	if _, ok := jobs.jobs[job.ID]; ok {
		t.Fatalf("job still present after delete")
	}
}

func TestGetJobNotFound(t *testing.T) {
	svc, _ := newJobFixture(t)

	_, err := svc.Get(context.Background(), "missing")
	if code := domainErrCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("Get() code = %q, want NOT_FOUND", code)
	}
}
