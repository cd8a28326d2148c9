package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/app/repository"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
)

var (
	ErrIssueNotFound    = errors.New("issue not found")
	ErrNotIssueReporter = errors.New("not the reporter of this issue")
	ErrInvalidIssueStatus = errors.New("invalid issue status")
)

type IssueService interface {
	Report(userID uint, orderID *uint, title, description string) (*model.Issue, error)
	GetByReference(reference string, actorID uint, actorRole model.UserRole) (*model.Issue, error)
	GetUserIssues(userID uint) ([]model.Issue, error)
	ListAll(status string) ([]model.Issue, error)
	Resolve(issueID uint, status model.IssueStatus) (*model.Issue, error)
}

type issueService struct {
	issueRepo repository.IssueRepository
	orderRepo repository.OrderRepository
}

func NewIssueService(
	issueRepo repository.IssueRepository,
	orderRepo repository.OrderRepository,
) IssueService {
	return &issueService{
		issueRepo: issueRepo,
		orderRepo: orderRepo,
	}
}

// Report files a new issue. When an order is referenced it must exist
// and belong to the reporter.
func (s *issueService) Report(userID uint, orderID *uint, title, description string) (*model.Issue, error) {
	logger.Info("Reporting issue", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
		"title":    title,
	})

	if orderID != nil {
		order, err := s.orderRepo.FindByID(*orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOrderNotFound
			}
			return nil, err
		}
		if order.ClientID != userID {
			logger.Warn("Issue rejected: order belongs to another user", map[string]interface{}{
				"user_id":  userID,
				"order_id": *orderID,
			})
			return nil, ErrNotOrderParticipant
		}
	}

	issue := &model.Issue{
		Reference:   uuid.NewString(),
		UserID:      userID,
		OrderID:     orderID,
		Title:       title,
		Description: description,
		Status:      model.IssueStatusOpen,
	}

	if err := s.issueRepo.Create(issue); err != nil {
		return nil, err
	}

	logger.Info("Issue reported", map[string]interface{}{
		"issue_id":  issue.ID,
		"reference": issue.Reference,
	})
	return issue, nil
}

func (s *issueService) GetByReference(reference string, actorID uint, actorRole model.UserRole) (*model.Issue, error) {
	issue, err := s.issueRepo.FindByReference(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}

	if actorRole != model.RoleAdmin && issue.UserID != actorID {
		logger.Warn("Issue access rejected", map[string]interface{}{
			"reference": reference,
			"actor_id":  actorID,
		})
		return nil, ErrNotIssueReporter
	}

	return issue, nil
}

func (s *issueService) GetUserIssues(userID uint) ([]model.Issue, error) {
	logger.Debug("Fetching user issues", map[string]interface{}{
		"user_id": userID,
	})

	return s.issueRepo.FindByUserID(userID)
}

func (s *issueService) ListAll(status string) ([]model.Issue, error) {
	logger.Debug("Listing all issues", map[string]interface{}{
		"status": status,
	})

	return s.issueRepo.FindAll(status)
}

// Resolve closes an issue as resolved or rejected. Admin only; the
// controller enforces the role.
func (s *issueService) Resolve(issueID uint, status model.IssueStatus) (*model.Issue, error) {
	logger.Info("Resolving issue", map[string]interface{}{
		"issue_id": issueID,
		"status":   status,
	})

	if status != model.IssueStatusResolved && status != model.IssueStatusRejected {
		return nil, ErrInvalidIssueStatus
	}

	issue, err := s.issueRepo.FindByID(issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}

	issue.Status = status
	if err := s.issueRepo.Update(issue); err != nil {
		return nil, err
	}

	logger.Info("Issue resolved", map[string]interface{}{
		"issue_id": issue.ID,
		"status":   issue.Status,
	})
	return issue, nil
}
