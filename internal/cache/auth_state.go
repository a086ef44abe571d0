package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/panaderia-next/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// StaffAuthState is a server-side snapshot of a staff account's token
// validity, cached so the auth middleware does not hit the database on
// every request. token_invalid_before is a Unix timestamp, 0 when
// unset.
type StaffAuthState struct {
	StaffID            uint   `json:"staff_id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	Active             bool   `json:"active"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

// CustomerAuthState is the customer-facing counterpart of StaffAuthState.
type CustomerAuthState struct {
	CustomerID         uint   `json:"customer_id"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

func staffAuthStateKey(staffID uint) string {
	return fmt.Sprintf("auth:staff:%d", staffID)
}

func customerAuthStateKey(customerID uint) string {
	return fmt.Sprintf("auth:customer:%d", customerID)
}

// BuildStaffAuthState builds the snapshot from a staff row.
func BuildStaffAuthState(staff *models.Staff) *StaffAuthState {
	if staff == nil {
		return nil
	}
	state := &StaffAuthState{
		StaffID:      staff.ID,
		Username:     staff.Username,
		Role:         staff.Role,
		Active:       staff.Active,
		TokenVersion: staff.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if staff.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = staff.TokenInvalidBefore.Unix()
	}
	return state
}

// BuildCustomerAuthState builds the snapshot from a customer row.
func BuildCustomerAuthState(customer *models.Customer) *CustomerAuthState {
	if customer == nil {
		return nil
	}
	state := &CustomerAuthState{
		CustomerID:   customer.ID,
		TokenVersion: customer.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if customer.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = customer.TokenInvalidBefore.Unix()
	}
	return state
}

// GetStaffAuthState reads the cached staff snapshot.
func GetStaffAuthState(ctx context.Context, staffID uint) (*StaffAuthState, bool, error) {
	if staffID == 0 {
		return nil, false, nil
	}
	var state StaffAuthState
	hit, err := GetJSON(ctx, staffAuthStateKey(staffID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetStaffAuthState writes the staff snapshot.
func SetStaffAuthState(ctx context.Context, state *StaffAuthState) error {
	if state == nil || state.StaffID == 0 {
		return nil
	}
	return SetJSON(ctx, staffAuthStateKey(state.StaffID), state, authStateCacheTTL)
}

// DelStaffAuthState drops the staff snapshot.
func DelStaffAuthState(ctx context.Context, staffID uint) error {
	if staffID == 0 {
		return nil
	}
	return Del(ctx, staffAuthStateKey(staffID))
}

// GetCustomerAuthState reads the cached customer snapshot.
func GetCustomerAuthState(ctx context.Context, customerID uint) (*CustomerAuthState, bool, error) {
	if customerID == 0 {
		return nil, false, nil
	}
	var state CustomerAuthState
	hit, err := GetJSON(ctx, customerAuthStateKey(customerID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetCustomerAuthState writes the customer snapshot.
func SetCustomerAuthState(ctx context.Context, state *CustomerAuthState) error {
	if state == nil || state.CustomerID == 0 {
		return nil
	}
	return SetJSON(ctx, customerAuthStateKey(state.CustomerID), state, authStateCacheTTL)
}

// DelCustomerAuthState drops the customer snapshot.
func DelCustomerAuthState(ctx context.Context, customerID uint) error {
	if customerID == 0 {
		return nil
	}
	return Del(ctx, customerAuthStateKey(customerID))
}
