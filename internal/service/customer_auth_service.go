package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/panaderia-next/internal/cache"
	"github.com/panaderia-next/internal/config"
	"github.com/panaderia-next/internal/i18n"
	"github.com/panaderia-next/internal/models"
	"github.com/panaderia-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CustomerAuthService handles customer accounts for the storefront.
// Accounts are optional: guests can order and track without one.
type CustomerAuthService struct {
	cfg          *config.Config
	customerRepo repository.CustomerRepository
}

// NewCustomerAuthService creates the customer auth service.
func NewCustomerAuthService(cfg *config.Config, customerRepo repository.CustomerRepository) *CustomerAuthService {
	return &CustomerAuthService{
		cfg:          cfg,
		customerRepo: customerRepo,
	}
}

// CustomerClaims are the JWT claims for customer tokens.
type CustomerClaims struct {
	CustomerID   uint   `json:"customer_id"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput is the customer sign-up payload.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Locale   string
}

// Register creates a customer account.
func (s *CustomerAuthService) Register(input RegisterInput) (*models.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidationFailed
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCustomerExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	customer := &models.Customer{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(input.Name),
		Phone:        strings.TrimSpace(input.Phone),
		Locale:       i18n.Normalize(input.Locale),
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Login authenticates a customer and returns a fresh token.
func (s *CustomerAuthService) Login(email, password string) (*models.Customer, string, time.Time, error) {
	customer, err := s.customerRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if customer == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(customer)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	customer.LastLoginAt = &now
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetCustomerAuthState(context.Background(), cache.BuildCustomerAuthState(customer))

	return customer, token, expiresAt, nil
}

// GenerateJWT signs a customer token.
func (s *CustomerAuthService) GenerateJWT(customer *models.Customer) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.CustomerJWT.ExpireHours) * time.Hour)

	claims := CustomerClaims{
		CustomerID:   customer.ID,
		TokenVersion: customer.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.CustomerJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT parses and validates a customer token.
func (s *CustomerAuthService) ParseJWT(tokenString string) (*CustomerClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &CustomerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.CustomerJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomerClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// UpdateProfile updates the customer's own profile fields.
func (s *CustomerAuthService) UpdateProfile(customerID uint, name, phone, defaultAddress, locale string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrInvalidCredentials
	}
	if strings.TrimSpace(name) != "" {
		customer.Name = strings.TrimSpace(name)
	}
	customer.Phone = strings.TrimSpace(phone)
	customer.DefaultAddress = strings.TrimSpace(defaultAddress)
	if strings.TrimSpace(locale) != "" {
		customer.Locale = i18n.Normalize(locale)
	}
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}
