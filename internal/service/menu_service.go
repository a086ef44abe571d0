package service

import (
	"strings"

	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"
)

// MenuService manages the bakery's menu catalog.
type MenuService struct {
	menuRepo repository.MenuRepository
}

// NewMenuService creates the menu service.
func NewMenuService(menuRepo repository.MenuRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// MenuItemInput is the create/update payload.
type MenuItemInput struct {
	Name          string
	Description   string
	Category      string
	Price         string
	Available     *bool
	ImageURL      string
	SortOrder     int
	LeadTimeHours int
}

// ListPublic lists items visible on the storefront.
func (s *MenuService) ListPublic(filter repository.MenuListFilter) ([]models.MenuItem, int64, error) {
	filter.OnlyAvailable = true
	return s.menuRepo.List(filter)
}

// ListAdmin lists all items for the back office.
func (s *MenuService) ListAdmin(filter repository.MenuListFilter) ([]models.MenuItem, int64, error) {
	return s.menuRepo.List(filter)
}

// GetItem loads a single menu item.
func (s *MenuService) GetItem(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

// CreateItem adds a menu item.
func (s *MenuService) CreateItem(input MenuItemInput) (*models.MenuItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrValidationFailed
	}
	price, err := models.NewMoneyFromString(input.Price)
	if err != nil || price.IsNegative() {
		return nil, ErrValidationFailed
	}
	item := &models.MenuItem{
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		Category:      strings.TrimSpace(input.Category),
		Price:         price,
		Available:     true,
		ImageURL:      strings.TrimSpace(input.ImageURL),
		SortOrder:     input.SortOrder,
		LeadTimeHours: input.LeadTimeHours,
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	if err := s.menuRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem replaces a menu item's editable fields.
func (s *MenuService) UpdateItem(id uint, input MenuItemInput) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		item.Name = name
	}
	if strings.TrimSpace(input.Price) != "" {
		price, err := models.NewMoneyFromString(input.Price)
		if err != nil || price.IsNegative() {
			return nil, ErrValidationFailed
		}
		item.Price = price
	}
	item.Description = strings.TrimSpace(input.Description)
	if category := strings.TrimSpace(input.Category); category != "" {
		item.Category = category
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	item.ImageURL = strings.TrimSpace(input.ImageURL)
	item.SortOrder = input.SortOrder
	item.LeadTimeHours = input.LeadTimeHours
	if err := s.menuRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetAvailability toggles whether an item can be ordered.
func (s *MenuService) SetAvailability(id uint, available bool) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	item.Available = available
	if err := s.menuRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a menu item. Existing orders keep their snapshot
// of the item's name and price.
func (s *MenuService) DeleteItem(id uint) error {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrMenuItemNotFound
	}
	return s.menuRepo.Delete(id)
}
