// Cartwise - Product Catalog and Recommendation Service
// Copyright 2026 The Cartwise Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cartwise/cartwise

package catalog

import "testing"

func TestSellingPrice(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    float64
	}{
		{
			name:    "no discount",
			product: Product{Price: 100, Discount: 20, DiscountType: DiscountNone},
			want:    100,
		},
		{
			name:    "fixed discount subtracts amount",
			product: Product{Price: 100, Discount: 20, DiscountType: DiscountFixed},
			want:    80,
		},
		{
			name:    "unit discount subtracts percentage",
			product: Product{Price: 100, Discount: 20, DiscountType: DiscountUnit},
			want:    80,
		},
		{
			name:    "fixed discount larger than price clamps to zero",
			product: Product{Price: 10, Discount: 25, DiscountType: DiscountFixed},
			want:    0,
		},
		{
			name:    "zero price",
			product: Product{Price: 0, Discount: 10, DiscountType: DiscountUnit},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.SellingPrice(); got != tt.want {
				t.Errorf("SellingPrice() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDiscountTypeValid(t *testing.T) {
	for _, d := range []DiscountType{DiscountNone, DiscountFixed, DiscountUnit} {
		if !d.Valid() {
			t.Errorf("%s should be valid", d)
		}
	}
	if DiscountType("HALF").Valid() {
		t.Error("unknown discount type should be invalid")
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{UnitPrice: 19.5, Quantity: 3}
	if got := item.Subtotal(); got != 58.5 {
		t.Errorf("Subtotal() = %f, want 58.5", got)
	}
}
