package usecase

import (
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/ordermart/internal/domain/errors"
	"github.com/polkiloo/ordermart/internal/domain/model"
	testhelpers "github.com/polkiloo/ordermart/internal/test"
)

func validShipping() model.ShippingInfo {
	return model.ShippingInfo{
		Name:          "Ada Lovelace",
		PhoneNumber:   "+44 20 1234 5678",
		StreetAddress: "12 St James's Square",
		City:          "London",
		State:         "Greater London",
		PostalCode:    "SW1Y 4JH",
	}
}

func TestValidateShipping(t *testing.T) {
	if err := ValidateShipping(validShipping()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]func(*model.ShippingInfo){
		"missing name":   func(s *model.ShippingInfo) { s.Name = "" },
		"blank phone":    func(s *model.ShippingInfo) { s.PhoneNumber = "   " },
		"missing street": func(s *model.ShippingInfo) { s.StreetAddress = "" },
		"missing city":   func(s *model.ShippingInfo) { s.City = "" },
		"missing state":  func(s *model.ShippingInfo) { s.State = "" },
		"missing postal": func(s *model.ShippingInfo) { s.PostalCode = "" },
		"long name":      func(s *model.ShippingInfo) { s.Name = strings.Repeat("a", maxFieldLength+1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			info := validShipping()
			mutate(&info)
			if err := ValidateShipping(info); !errors.Is(err, domainErrors.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestValidateShippingAcceptsGeneratedInfo(t *testing.T) {
	for i := 0; i < 20; i++ {
		info := testhelpers.RandomShippingInfo()
		if err := ValidateShipping(info); err != nil {
			t.Fatalf("generated %+v rejected: %v", info, err)
		}
	}

	long := testhelpers.RandomShippingInfo()
	long.City = testhelpers.RandomASCIIString(129, 129)
	if err := ValidateShipping(long); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for 129 characters, got %v", err)
	}
}

func TestNormalizeLinesMergesDuplicates(t *testing.T) {
	lines, err := NormalizeLines([]model.OrderLine{
		{ProductID: 2, Count: 3},
		{ProductID: 1, Count: 1},
		{ProductID: 2, Count: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != (model.OrderLine{ProductID: 2, Count: 7}) || lines[1] != (model.OrderLine{ProductID: 1, Count: 1}) {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestNormalizeLinesRejectsInvalid(t *testing.T) {
	cases := map[string][]model.OrderLine{
		"empty":          nil,
		"zero product":   {{ProductID: 0, Count: 1}},
		"zero count":     {{ProductID: 1, Count: 0}},
		"negative count": {{ProductID: 1, Count: -2}},
		"too many":       {{ProductID: 1, Count: 600}, {ProductID: 1, Count: 401}},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NormalizeLines(lines); !errors.Is(err, domainErrors.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
