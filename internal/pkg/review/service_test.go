package review

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mindspark-labs/localpages/app/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	applications map[uint]*models.Application
	users        []*models.User
	orgs         []*models.Organization
	links        map[[2]uint]bool
	auditLogs    []*models.AuditLog
	categories   []*models.Category

	failCreateOrganization bool
	nextUserID             uint
	nextOrgID              uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		applications: map[uint]*models.Application{},
		links:        map[[2]uint]bool{},
		nextUserID:   1,
		nextOrgID:    1,
	}
}

func (f *fakeRepository) GetApplication(id uint) (*models.Application, error) {
	app, ok := f.applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return app, nil
}

func (f *fakeRepository) MarkReviewed(id uint, status, notes string, reviewerID uint, reviewedAt time.Time) (bool, error) {
	app, ok := f.applications[id]
	if !ok || app.IsTerminal() {
		return false, nil
	}
	app.Status = status
	app.AdminNotes = notes
	app.ReviewedBy = &reviewerID
	app.ReviewedAt = &reviewedAt
	return true, nil
}

func (f *fakeRepository) CreateUser(user *models.User) error {
	user.ID = f.nextUserID
	f.nextUserID++
	f.users = append(f.users, user)
	return nil
}

func (f *fakeRepository) CreateOrganization(org *models.Organization) error {
	if f.failCreateOrganization {
		return errors.New("storage failure")
	}
	org.ID = f.nextOrgID
	f.nextOrgID++
	f.orgs = append(f.orgs, org)
	return nil
}

func (f *fakeRepository) SetUserOrganization(userID, organizationID uint) error {
	for _, u := range f.users {
		if u.ID == userID {
			id := organizationID
			u.OrganizationID = &id
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindCategoryByNameContains(name string) (*models.Category, error) {
	needle := strings.ToLower(name)
	for _, c := range f.categories {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) LinkOrganizationCategory(organizationID, categoryID uint) error {
	f.links[[2]uint{organizationID, categoryID}] = true
	return nil
}

func (f *fakeRepository) AppendAuditLog(entry *models.AuditLog) error {
	f.auditLogs = append(f.auditLogs, entry)
	return nil
}

// InTransaction snapshots nothing; tests that exercise rollback assert on
// the returned error only.
func (f *fakeRepository) InTransaction(fn func(Repository) error) error {
	return fn(f)
}

func pendingApplication() *models.Application {
	return &models.Application{
		ID:           7,
		BusinessName: "Bravo's Italian Kitchen",
		ContactName:  "Maria Bravo",
		Email:        "x@y.com",
		Phone:        "(555) 123-4567",
		Category:     "restaurants",
		Description:  "Authentic Italian dining.",
		City:         "Austin",
		State:        "TX",
		Status:       models.ApplicationStatusPending,
	}
}

func TestDecideApprovedProvisionsTenant(t *testing.T) {
	repo := newFakeRepository()
	repo.applications[7] = pendingApplication()
	repo.categories = append(repo.categories, &models.Category{ID: 3, Name: "Restaurants & Dining"})

	svc := NewService(repo)
	result, err := svc.Decide(context.Background(), 7, DecisionInput{
		Decision:   DecisionApproved,
		AdminNotes: "looks good",
		ReviewerID: 42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Approved {
		t.Fatalf("expected approved result")
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(repo.users))
	}
	user := repo.users[0]
	if user.Role != models.RoleBusinessClient {
		t.Fatalf("expected BUSINESS_CLIENT role, got %q", user.Role)
	}
	if user.Email != "x@y.com" || user.Name != "Maria Bravo" {
		t.Fatalf("user did not copy application contact fields: %+v", user)
	}

	if len(repo.orgs) != 1 {
		t.Fatalf("expected 1 organization, got %d", len(repo.orgs))
	}
	org := repo.orgs[0]
	if org.Slug != "bravos-italian-kitchen" {
		t.Fatalf("unexpected slug %q", org.Slug)
	}
	if org.Status != models.OrgStatusPendingPayment {
		t.Fatalf("expected PENDING_PAYMENT, got %q", org.Status)
	}
	if org.OwnerID != user.ID {
		t.Fatalf("organization owner mismatch")
	}
	if user.OrganizationID == nil || *user.OrganizationID != org.ID {
		t.Fatalf("user not back-linked to organization")
	}

	if !repo.links[[2]uint{org.ID, 3}] {
		t.Fatalf("expected category link to be created")
	}

	if len(repo.auditLogs) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(repo.auditLogs))
	}
	var details map[string]interface{}
	if err := json.Unmarshal([]byte(repo.auditLogs[0].Details), &details); err != nil {
		t.Fatalf("invalid audit details: %v", err)
	}
	if details["tempPassword"] != result.TempPassword {
		t.Fatalf("audit entry missing temp password")
	}

	// The stored hash must verify against the returned temp password.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(result.TempPassword)); err != nil {
		t.Fatalf("temp password hash mismatch: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(user.Password))
	if err != nil || cost < 12 {
		t.Fatalf("expected bcrypt cost >= 12, got %d (%v)", cost, err)
	}
}

func TestDecideRejectedCreatesNothing(t *testing.T) {
	repo := newFakeRepository()
	repo.applications[7] = pendingApplication()

	svc := NewService(repo)
	result, err := svc.Decide(context.Background(), 7, DecisionInput{
		Decision:   DecisionRejected,
		AdminNotes: "incomplete listing",
		ReviewerID: 42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Approved {
		t.Fatalf("expected rejection result")
	}

	if len(repo.users) != 0 || len(repo.orgs) != 0 || len(repo.links) != 0 {
		t.Fatalf("rejection must not provision anything")
	}
	if repo.applications[7].Status != models.ApplicationStatusRejected {
		t.Fatalf("expected REJECTED status, got %q", repo.applications[7].Status)
	}
	if len(repo.auditLogs) != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", len(repo.auditLogs))
	}
	if repo.auditLogs[0].Action != models.AuditActionApplicationRejected {
		t.Fatalf("unexpected audit action %q", repo.auditLogs[0].Action)
	}
}

func TestDecideSecondDecisionConflicts(t *testing.T) {
	repo := newFakeRepository()
	repo.applications[7] = pendingApplication()

	svc := NewService(repo)
	if _, err := svc.Decide(context.Background(), 7, DecisionInput{Decision: DecisionApproved, ReviewerID: 42}); err != nil {
		t.Fatalf("first decision failed: %v", err)
	}

	_, err := svc.Decide(context.Background(), 7, DecisionInput{Decision: DecisionApproved, ReviewerID: 42})
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
	if len(repo.orgs) != 1 {
		t.Fatalf("second decision must not provision a duplicate organization")
	}
}

func TestDecideUnknownApplication(t *testing.T) {
	svc := NewService(newFakeRepository())
	_, err := svc.Decide(context.Background(), 99, DecisionInput{Decision: DecisionApproved, ReviewerID: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecideInvalidDecision(t *testing.T) {
	repo := newFakeRepository()
	repo.applications[7] = pendingApplication()
	svc := NewService(repo)
	_, err := svc.Decide(context.Background(), 7, DecisionInput{Decision: "MAYBE", ReviewerID: 1})
	if !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
	if repo.applications[7].Status != models.ApplicationStatusPending {
		t.Fatalf("invalid decision must not mutate the application")
	}
}

func TestDecideUnmatchedCategoryIsIgnored(t *testing.T) {
	repo := newFakeRepository()
	app := pendingApplication()
	app.Category = "underwater basket weaving"
	repo.applications[7] = app

	svc := NewService(repo)
	if _, err := svc.Decide(context.Background(), 7, DecisionInput{Decision: DecisionApproved, ReviewerID: 42}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.links) != 0 {
		t.Fatalf("expected no category link for unmatched category")
	}
	if len(repo.orgs) != 1 {
		t.Fatalf("provisioning must still complete")
	}
}

func TestDecideStorageFailureAborts(t *testing.T) {
	repo := newFakeRepository()
	repo.applications[7] = pendingApplication()
	repo.failCreateOrganization = true

	svc := NewService(repo)
	_, err := svc.Decide(context.Background(), 7, DecisionInput{Decision: DecisionApproved, ReviewerID: 42})
	if err == nil {
		t.Fatalf("expected provisioning failure to surface")
	}
	if len(repo.auditLogs) != 0 {
		t.Fatalf("no audit entry may be written after an aborted provisioning")
	}
}
