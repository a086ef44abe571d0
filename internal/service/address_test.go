package service

import (
	"testing"

	"github.com/panaderia-next/internal/models"
)

func TestApplyNormalizedAddressFull(t *testing.T) {
	order := &models.Order{}
	applyNormalizedAddress(order, "123 Calle Ocho, Apt 4B, Miami, FL 33135")

	if order.AddressStreet != "123 Calle Ocho" {
		t.Fatalf("street = %q", order.AddressStreet)
	}
	if order.AddressApartment != "4B" {
		t.Fatalf("apartment = %q", order.AddressApartment)
	}
	if order.AddressCity != "Miami" {
		t.Fatalf("city = %q", order.AddressCity)
	}
	if order.AddressState != "FL" {
		t.Fatalf("state = %q", order.AddressState)
	}
	if order.AddressZip != "33135" {
		t.Fatalf("zip = %q", order.AddressZip)
	}
	if !order.AddressVerified {
		t.Fatalf("address with street, city and zip should verify")
	}
	if order.AddressFull != "123 Calle Ocho, Apt 4B, Miami, FL 33135" {
		t.Fatalf("raw text must be kept: %q", order.AddressFull)
	}
	if order.DeliveryZone != "33135" {
		t.Fatalf("zone = %q, want the zip", order.DeliveryZone)
	}
}

func TestApplyNormalizedAddressZoneFallsBackToCity(t *testing.T) {
	order := &models.Order{}
	applyNormalizedAddress(order, "12 Flagler St, Hialeah")

	if order.DeliveryZone != "Hialeah" {
		t.Fatalf("zone = %q, want the city", order.DeliveryZone)
	}
}

func TestApplyNormalizedAddressPartial(t *testing.T) {
	order := &models.Order{}
	applyNormalizedAddress(order, "456 Oak Street")

	if order.AddressStreet != "456 Oak Street" {
		t.Fatalf("street = %q", order.AddressStreet)
	}
	if order.AddressVerified {
		t.Fatalf("street alone must not verify")
	}
}

func TestApplyNormalizedAddressZipPlusFour(t *testing.T) {
	order := &models.Order{}
	applyNormalizedAddress(order, "789 Pine Ave, Tampa, FL 33601-1234")

	if order.AddressZip != "33601" {
		t.Fatalf("zip = %q, want the 5-digit part", order.AddressZip)
	}
	if !order.AddressVerified {
		t.Fatalf("street, city and zip present, should verify")
	}
}

func TestApplyNormalizedAddressEmpty(t *testing.T) {
	order := &models.Order{}
	applyNormalizedAddress(order, "   ")
	if order.AddressFull != "" || order.AddressStreet != "" || order.AddressVerified {
		t.Fatalf("blank input must leave the address empty: %+v", order)
	}
}
