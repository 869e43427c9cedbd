package spring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Package spring is the nascente registry: location, property paperwork and
// protection status as declared at registration time. It does not cross-check
// owner ids against the account store; the registry trusts its callers.

var (
	ErrNotFound     = errors.New("spring: not found")
	ErrInvalidInput = errors.New("spring: invalid input")
)

// Location is a WGS84 point.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Spring is one registered water spring.
type Spring struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	OwnerName    string    `json:"ownerName"`
	Location     Location  `json:"location"`
	Altitude     float64   `json:"altitude"`
	Municipality string    `json:"municipality"`
	Reference    string    `json:"reference"`
	HasCAR       bool      `json:"hasCAR"`
	CARNumber    string    `json:"carNumber"`
	HasAPP       bool      `json:"hasAPP"`
	APPStatus    string    `json:"appStatus"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Update carries optional field changes; nil leaves a field untouched.
type Update struct {
	OwnerName    *string
	Location     *Location
	Altitude     *float64
	Municipality *string
	Reference    *string
	HasCAR       *bool
	CARNumber    *string
	HasAPP       *bool
	APPStatus    *string
}

// Service is the spring registry. Implementations return ErrNotFound for
// misses and ErrInvalidInput for rejected payloads.
type Service interface {
	Create(ctx context.Context, s Spring) (Spring, error)
	Get(ctx context.Context, id string) (Spring, error)
	List(ctx context.Context) ([]Spring, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Spring, error)
	Update(ctx context.Context, id string, upd Update) (Spring, error)
	Delete(ctx context.Context, id string) error
}

func validate(s Spring) error {
	if strings.TrimSpace(s.OwnerID) == "" {
		return fmt.Errorf("%w: ownerId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(s.Municipality) == "" {
		return fmt.Errorf("%w: municipality is required", ErrInvalidInput)
	}
	return validateLocation(s.Location)
}

// validateUpdate checks the fields an Update would change, so every
// implementation rejects a bad payload the same way regardless of how it
// applies the merge.
func validateUpdate(upd Update) error {
	if upd.Municipality != nil && strings.TrimSpace(*upd.Municipality) == "" {
		return fmt.Errorf("%w: municipality is required", ErrInvalidInput)
	}
	if upd.Location != nil {
		return validateLocation(*upd.Location)
	}
	return nil
}

func validateLocation(loc Location) error {
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("%w: latitude out of range", ErrInvalidInput)
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("%w: longitude out of range", ErrInvalidInput)
	}
	return nil
}
