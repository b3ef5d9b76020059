package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	domainErrors "github.com/polkiloo/ordermart/internal/domain/errors"
	"github.com/polkiloo/ordermart/internal/domain/model"
)

const (
	maxFieldLength = 128
	maxLineCount   = 1000
)

// ValidateShipping checks that every recipient field is filled in.
func ValidateShipping(info model.ShippingInfo) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", info.Name},
		{"phone number", info.PhoneNumber},
		{"street address", info.StreetAddress},
		{"city", info.City},
		{"state", info.State},
		{"postal code", info.PostalCode},
	}
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			return fmt.Errorf("%w: %s is required", domainErrors.ErrInvalidInput, f.name)
		}
		if utf8.RuneCountInString(v) > maxFieldLength {
			return fmt.Errorf("%w: %s is too long", domainErrors.ErrInvalidInput, f.name)
		}
	}
	return nil
}

// NormalizeLines validates requested lines and merges repeated products,
// keeping first-seen order.
func NormalizeLines(lines []model.OrderLine) ([]model.OrderLine, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order has no lines", domainErrors.ErrInvalidInput)
	}

	merged := make([]model.OrderLine, 0, len(lines))
	index := make(map[int64]int, len(lines))
	for _, l := range lines {
		if l.ProductID <= 0 {
			return nil, fmt.Errorf("%w: invalid product id %d", domainErrors.ErrInvalidInput, l.ProductID)
		}
		if l.Count <= 0 {
			return nil, fmt.Errorf("%w: count for product %d must be positive", domainErrors.ErrInvalidInput, l.ProductID)
		}
		if i, ok := index[l.ProductID]; ok {
			merged[i].Count += l.Count
		} else {
			index[l.ProductID] = len(merged)
			merged = append(merged, l)
		}
	}

	for _, l := range merged {
		if l.Count > maxLineCount {
			return nil, fmt.Errorf("%w: count for product %d exceeds %d", domainErrors.ErrInvalidInput, l.ProductID, maxLineCount)
		}
	}
	return merged, nil
}

func requireText(name, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", domainErrors.ErrInvalidInput, name)
	}
	if utf8.RuneCountInString(v) > maxFieldLength {
		return "", fmt.Errorf("%w: %s is too long", domainErrors.ErrInvalidInput, name)
	}
	return v, nil
}
