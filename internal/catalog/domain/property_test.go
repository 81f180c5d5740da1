package domain

import "testing"

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		raw  string
		want PropertyType
	}{
		{"House", TypeHouse},
		{"apartment", TypeApartment},
		{"  Commercial ", TypeCommercial},
		{"LAND", TypeLand},
		{"", TypeHouse},
		{"castle", TypeHouse},
	}
	for _, tt := range tests {
		if got := NormalizeType(tt.raw); got != tt.want {
			t.Errorf("NormalizeType(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeListingType(t *testing.T) {
	tests := []struct {
		raw  string
		want ListingType
	}{
		{"rent", ListingRent},
		{"RENT", ListingRent},
		{"sale", ListingSale},
		{"", ListingSale},
		{"lease", ListingSale},
	}
	for _, tt := range tests {
		if got := NormalizeListingType(tt.raw); got != tt.want {
			t.Errorf("NormalizeListingType(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"available", StatusAvailable},
		{"reserved", StatusReserved},
		{"sold", StatusSold},
		{"rented", StatusRented},
		{"", StatusAvailable},
		{"pending", StatusAvailable},
	}
	for _, tt := range tests {
		if got := NormalizeStatus(tt.raw); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestStatusClosed(t *testing.T) {
	if !StatusSold.Closed() || !StatusRented.Closed() {
		t.Error("sold and rented should count as closed")
	}
	if StatusAvailable.Closed() || StatusReserved.Closed() {
		t.Error("available and reserved should not count as closed")
	}
}

func TestValidStatus(t *testing.T) {
	for _, valid := range []string{"available", "reserved", "sold", "rented"} {
		if !ValidStatus(valid) {
			t.Errorf("ValidStatus(%q) = false, want true", valid)
		}
	}
	if ValidStatus("archived") || ValidStatus("") {
		t.Error("unknown values should not validate")
	}
}
