package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/internal/pkg/utils"
	"gorm.io/gorm"
)

// Service processes admin decisions on business applications. Approval
// provisions the full tenant graph (user, organization, category link,
// audit entry) in one transaction.
type Service struct {
	repo Repository
}

// NewService creates a review service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a review service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Decide applies an admin's verdict to the application. The status
// transition is conditional on the application still being undecided, so a
// second decision (double-click, concurrent admin) fails with
// ErrAlreadyReviewed instead of provisioning a duplicate tenant.
func (s *Service) Decide(ctx context.Context, applicationID uint, in DecisionInput) (*DecisionResult, error) {
	_ = ctx
	if in.Decision != DecisionApproved && in.Decision != DecisionRejected {
		return nil, ErrInvalidDecision
	}

	app, err := s.repo.GetApplication(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	result := &DecisionResult{ApplicationID: app.ID}

	err = s.repo.InTransaction(func(tx Repository) error {
		transitioned, err := tx.MarkReviewed(app.ID, in.Decision, in.AdminNotes, in.ReviewerID, time.Now())
		if err != nil {
			return err
		}
		if !transitioned {
			return ErrAlreadyReviewed
		}

		if in.Decision == DecisionRejected {
			return s.logRejection(tx, app, in)
		}

		result.Approved = true
		return s.provision(tx, app, in, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// provision creates the tenant graph for an approved application. The user
// is created before the organization because Organization.OwnerID references
// it; the back-link is written afterwards.
func (s *Service) provision(tx Repository, app *models.Application, in DecisionInput, result *DecisionResult) error {
	tempPassword, err := models.GenerateTempPassword(10)
	if err != nil {
		return fmt.Errorf("generate temp password: %w", err)
	}
	hashed, err := models.HashPassword(tempPassword)
	if err != nil {
		return fmt.Errorf("hash temp password: %w", err)
	}

	user := &models.User{
		Name:     app.ContactName,
		Email:    app.Email,
		Password: hashed,
		Role:     models.RoleBusinessClient,
	}
	if err := tx.CreateUser(user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	org := &models.Organization{
		Name:        app.BusinessName,
		Slug:        utils.Slugify(app.BusinessName),
		Description: app.Description,
		Phone:       app.Phone,
		Email:       app.Email,
		Website:     app.Website,
		Address:     app.Address,
		City:        app.City,
		State:       app.State,
		Zip:         app.Zip,
		Status:      models.OrgStatusPendingPayment,
		OwnerID:     user.ID,
	}
	if err := tx.CreateOrganization(org); err != nil {
		return fmt.Errorf("create organization: %w", err)
	}

	if err := tx.SetUserOrganization(user.ID, org.ID); err != nil {
		return fmt.Errorf("link user to organization: %w", err)
	}

	if app.Category != "" {
		category, err := tx.FindCategoryByNameContains(app.Category)
		switch {
		case err == nil:
			if err := tx.LinkOrganizationCategory(org.ID, category.ID); err != nil {
				return fmt.Errorf("link category: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Free-text category with no match is silently ignored.
		default:
			return fmt.Errorf("find category: %w", err)
		}
	}

	details, _ := json.Marshal(map[string]interface{}{
		"organizationId": org.ID,
		"tempPassword":   tempPassword,
	})
	entry := &models.AuditLog{
		UserID:   in.ReviewerID,
		Action:   models.AuditActionApplicationApproved,
		Entity:   "Application",
		EntityID: fmt.Sprintf("%d", app.ID),
		Details:  models.JSON(details),
	}
	if err := tx.AppendAuditLog(entry); err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}

	result.OrganizationID = org.ID
	result.UserID = user.ID
	result.TempPassword = tempPassword
	return nil
}

func (s *Service) logRejection(tx Repository, app *models.Application, in DecisionInput) error {
	details, _ := json.Marshal(map[string]interface{}{
		"reason": in.AdminNotes,
	})
	entry := &models.AuditLog{
		UserID:   in.ReviewerID,
		Action:   models.AuditActionApplicationRejected,
		Entity:   "Application",
		EntityID: fmt.Sprintf("%d", app.ID),
		Details:  models.JSON(details),
	}
	if err := tx.AppendAuditLog(entry); err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}
