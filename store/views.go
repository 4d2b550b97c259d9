package store

import (
	"fmt"
	"strings"
	"time"
)

// ProductView is the read model of a product.
type ProductView struct {
	ID          int64
	Code        string
	Name        string
	Description string
	Price       string
	Inventory   int
	CreatedAt   time.Time
}

// ProductRecord is the archived form of a product.
type ProductRecord struct {
	ID         int64
	SKU        string
	Name       string
	PriceCents int64
	Inventory  int
	CreatedAt  time.Time
}

// CustomerSummary is a customer stripped of contact details.
type CustomerSummary struct {
	ID       int64
	Email    string
	Name     string
	IsActive bool
}

// CustomerCard only carries the contact address.
type CustomerCard struct {
	Email string
}

// LineView is a printable order line.
type LineView struct {
	ProductID int64
	Quantity  int64
	Title     string
	UnitPrice int64
}

// FormatPrice renders cents as a decimal amount.
func FormatPrice(cents *int64) string {
	return fmt.Sprintf("%d.%02d", *cents/100, *cents%100)
}

// MaskEmail hides the local part of an address.
func MaskEmail(email *string) string {
	return MaskEmailOwned(*email)
}

// MaskEmailOwned hides the local part of an address it owns.
func MaskEmailOwned(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return email
	}

	return local[:1] + "***@" + domain
}
