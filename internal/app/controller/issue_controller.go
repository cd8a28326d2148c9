package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/app/service"
	apperrors "github.com/artigianatoshop/artigianato-backend/internal/errors"
	"github.com/artigianatoshop/artigianato-backend/internal/middleware"
)

type IssueController struct {
	issueService service.IssueService
}

func NewIssueController(issueService service.IssueService) *IssueController {
	return &IssueController{
		issueService: issueService,
	}
}

type ReportIssueRequest struct {
	OrderID     *uint  `json:"order_id"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type ResolveIssueRequest struct {
	Status string `json:"status" binding:"required,oneof=resolved rejected"`
}

// ReportIssue files a new issue, optionally tied to one of the
// reporter's orders. The returned reference is the public handle.
// POST /api/v1/issues
func (ctrl *IssueController) ReportIssue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req ReportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid issue report request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid issue data")
		return
	}

	issue, err := ctrl.issueService.Report(userID, req.OrderID, req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrNotOrderParticipant):
			log.Warn("Issue report against someone else's order", map[string]interface{}{
				"user_id":  userID,
				"order_id": req.OrderID,
			})
			apperrors.Forbidden(c, "You can only report issues on your own orders")
		default:
			log.Error("Failed to report issue", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Issue reported successfully", map[string]interface{}{
		"user_id":   userID,
		"issue_id":  issue.ID,
		"reference": issue.Reference,
	})

	c.JSON(http.StatusCreated, gin.H{
		"issue": issue,
	})
}

// GetIssue looks up an issue by its public reference
// GET /api/v1/issues/:reference
func (ctrl *IssueController) GetIssue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	reference := c.Param("reference")

	issue, err := ctrl.issueService.GetByReference(reference, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIssueNotFound):
			apperrors.NotFound(c, apperrors.IssueNotFound, "Issue not found")
		case errors.Is(err, service.ErrNotIssueReporter):
			apperrors.Forbidden(c, "You can only view your own issues")
		default:
			log.Error("Failed to fetch issue", err, map[string]interface{}{
				"user_id":   userID,
				"reference": reference,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issue": issue,
	})
}

// GetMyIssues lists the authenticated user's issues
// GET /api/v1/issues
func (ctrl *IssueController) GetMyIssues(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	issues, err := ctrl.issueService.GetUserIssues(userID)
	if err != nil {
		log.Error("Failed to fetch issues", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issues": issues,
		"count":  len(issues),
	})
}

// ListIssues lists all issues, optionally filtered by status (admin only)
// GET /api/v1/admin/issues
func (ctrl *IssueController) ListIssues(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	issues, err := ctrl.issueService.ListAll(c.Query("status"))
	if err != nil {
		log.Error("Failed to list issues", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issues": issues,
		"count":  len(issues),
	})
}

// ResolveIssue closes an issue as resolved or rejected (admin only)
// PUT /api/v1/admin/issues/:id
func (ctrl *IssueController) ResolveIssue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid issue ID")
		return
	}

	var req ResolveIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid issue resolution request", map[string]interface{}{
			"issue_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid resolution data")
		return
	}

	issue, err := ctrl.issueService.Resolve(uint(id), model.IssueStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIssueNotFound):
			apperrors.NotFound(c, apperrors.IssueNotFound, "Issue not found")
		case errors.Is(err, service.ErrInvalidIssueStatus):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Issues can only be resolved or rejected")
		default:
			log.Error("Failed to resolve issue", err, map[string]interface{}{
				"issue_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Issue resolved", map[string]interface{}{
		"issue_id": issue.ID,
		"status":   issue.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"issue": issue,
	})
}
