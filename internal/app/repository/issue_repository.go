package repository

import (
	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
)

type IssueRepository interface {
	Create(issue *model.Issue) error
	FindByID(id uint) (*model.Issue, error)
	FindByReference(reference string) (*model.Issue, error)
	FindByUserID(userID uint) ([]model.Issue, error)
	FindAll(status string) ([]model.Issue, error)
	Update(issue *model.Issue) error
}

type issueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(issue *model.Issue) error {
	logger.Debug("Creating issue in database", map[string]interface{}{
		"reference": issue.Reference,
		"user_id":   issue.UserID,
		"order_id":  issue.OrderID,
	})

	if err := r.db.Create(issue).Error; err != nil {
		logger.Error("Failed to create issue in database", err, map[string]interface{}{
			"reference": issue.Reference,
			"user_id":   issue.UserID,
		})
		return err
	}

	logger.Debug("Issue created in database", map[string]interface{}{
		"issue_id":  issue.ID,
		"reference": issue.Reference,
	})
	return nil
}

func (r *issueRepository) FindByID(id uint) (*model.Issue, error) {
	logger.Debug("Finding issue by ID in database", map[string]interface{}{
		"issue_id": id,
	})

	var issue model.Issue
	if err := r.db.Preload("Order").First(&issue, id).Error; err != nil {
		logger.Error("Failed to find issue by ID in database", err, map[string]interface{}{
			"issue_id": id,
		})
		return nil, err
	}

	return &issue, nil
}

func (r *issueRepository) FindByReference(reference string) (*model.Issue, error) {
	logger.Debug("Finding issue by reference in database", map[string]interface{}{
		"reference": reference,
	})

	var issue model.Issue
	if err := r.db.Where("reference = ?", reference).Preload("Order").First(&issue).Error; err != nil {
		logger.Error("Failed to find issue by reference in database", err, map[string]interface{}{
			"reference": reference,
		})
		return nil, err
	}

	return &issue, nil
}

func (r *issueRepository) FindByUserID(userID uint) ([]model.Issue, error) {
	logger.Debug("Finding issues by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var issues []model.Issue
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&issues).Error; err != nil {
		logger.Error("Failed to find issues by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Issues found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(issues),
	})
	return issues, nil
}

func (r *issueRepository) FindAll(status string) ([]model.Issue, error) {
	logger.Debug("Finding all issues in database", map[string]interface{}{
		"status": status,
	})

	query := r.db.Model(&model.Issue{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var issues []model.Issue
	if err := query.Order("created_at DESC").Find(&issues).Error; err != nil {
		logger.Error("Failed to find all issues in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}

	logger.Debug("Issues found in database", map[string]interface{}{
		"count": len(issues),
	})
	return issues, nil
}

func (r *issueRepository) Update(issue *model.Issue) error {
	logger.Debug("Updating issue in database", map[string]interface{}{
		"issue_id": issue.ID,
		"status":   issue.Status,
	})

	if err := r.db.Save(issue).Error; err != nil {
		logger.Error("Failed to update issue in database", err, map[string]interface{}{
			"issue_id": issue.ID,
		})
		return err
	}

	logger.Debug("Issue updated in database", map[string]interface{}{
		"issue_id": issue.ID,
		"status":   issue.Status,
	})
	return nil
}
