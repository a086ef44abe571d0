package service

import (
	"strings"
	"time"

	"github.com/panaderia-next/internal/constants"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"
)

// IssueService records and resolves problems reported against orders.
type IssueService struct {
	issueRepo repository.OrderIssueRepository
	orderRepo repository.OrderRepository
}

// NewIssueService creates the issue service.
func NewIssueService(issueRepo repository.OrderIssueRepository, orderRepo repository.OrderRepository) *IssueService {
	return &IssueService{issueRepo: issueRepo, orderRepo: orderRepo}
}

var issueCategories = map[string]bool{
	constants.IssueCategoryQuality:    true,
	constants.IssueCategoryLate:       true,
	constants.IssueCategoryWrongItems: true,
	constants.IssueCategoryDamaged:    true,
	constants.IssueCategoryOther:      true,
}

var issuePriorities = map[string]bool{
	constants.IssuePriorityLow:    true,
	constants.IssuePriorityNormal: true,
	constants.IssuePriorityHigh:   true,
}

// maxIssuePhotos caps the photo attachments accepted per report.
const maxIssuePhotos = 5

// ReportIssueInput is the issue submission payload.
type ReportIssueInput struct {
	OrderID     uint
	Category    string
	Priority    string
	Description string
	ReportedBy  string
	PhotoURLs   []string
}

// Report files an issue against an order.
func (s *IssueService) Report(input ReportIssueInput) (*models.OrderIssue, error) {
	category := strings.TrimSpace(input.Category)
	if !issueCategories[category] {
		return nil, ErrValidationFailed
	}
	priority := strings.TrimSpace(input.Priority)
	if priority == "" {
		priority = constants.IssuePriorityNormal
	}
	if !issuePriorities[priority] {
		return nil, ErrValidationFailed
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrValidationFailed
	}
	photos := make(models.StringArray, 0, len(input.PhotoURLs))
	for _, raw := range input.PhotoURLs {
		url := strings.TrimSpace(raw)
		if url == "" {
			continue
		}
		photos = append(photos, url)
	}
	if len(photos) > maxIssuePhotos {
		return nil, ErrValidationFailed
	}
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if isTerminalStatus(order.Status) {
		return nil, ErrIssueClosedOrder
	}

	issue := &models.OrderIssue{
		OrderID:     order.ID,
		Category:    category,
		Priority:    priority,
		Status:      constants.IssueStatusOpen,
		Description: description,
		ReportedBy:  strings.TrimSpace(input.ReportedBy),
		PhotoURLs:   photos,
	}
	if err := s.issueRepo.Create(issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// List lists issues for the back office.
func (s *IssueService) List(filter repository.IssueListFilter) ([]models.OrderIssue, int64, error) {
	return s.issueRepo.List(filter)
}

// Get loads one issue.
func (s *IssueService) Get(id uint) (*models.OrderIssue, error) {
	issue, err := s.issueRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, ErrIssueNotFound
	}
	return issue, nil
}

// Resolve closes an issue with a resolution note.
func (s *IssueService) Resolve(actor Actor, issueID uint, resolution string) (*models.OrderIssue, error) {
	if !actor.IsStaff() {
		return nil, ErrPermissionDenied
	}
	issue, err := s.issueRepo.GetByID(issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, ErrIssueNotFound
	}
	if issue.Status == constants.IssueStatusResolved {
		return issue, nil
	}

	now := time.Now()
	staffID := actor.StaffID
	issue.Status = constants.IssueStatusResolved
	issue.Resolution = strings.TrimSpace(resolution)
	issue.ResolvedByID = &staffID
	issue.ResolvedAt = &now
	if err := s.issueRepo.Update(issue); err != nil {
		return nil, err
	}
	return issue, nil
}
