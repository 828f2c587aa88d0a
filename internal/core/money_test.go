package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneySplitSumsExactly(t *testing.T) {
	cases := []struct {
		cents int64
		n     int
		parts []int64
	}{
		{30000, 3, []int64{10000, 10000, 10000}},
		{10000, 3, []int64{3333, 3333, 3334}},
		{100, 3, []int64{33, 33, 34}},
		{1, 2, []int64{0, 1}},
		{500, 1, []int64{500}},
	}
	for _, tc := range cases {
		got := Money{Cents: tc.cents}.Split(tc.n)
		if len(got) != len(tc.parts) {
			t.Fatalf("%d/%d: expected %d parts, got %d", tc.cents, tc.n, len(tc.parts), len(got))
		}
		var sum int64
		for i, p := range got {
			if p.Cents != tc.parts[i] {
				t.Fatalf("%d/%d part %d: expected %d, got %d", tc.cents, tc.n, i, tc.parts[i], p.Cents)
			}
			sum += p.Cents
		}
		if sum != tc.cents {
			t.Fatalf("%d/%d: parts sum to %d", tc.cents, tc.n, sum)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{123456, "R$ 1.234,56"},
		{100000000, "R$ 1.000.000,00"},
		{-9950, "-R$ 99,50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Format(); got != tc.want {
			t.Fatalf("%d: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMonthLabel(t *testing.T) {
	if got := (YearMonth{2025, 1}).Label(); got != "Janeiro 2025" {
		t.Fatalf("expected Janeiro 2025, got %q", got)
	}
	if got := (YearMonth{2024, 12}).Label(); got != "Dezembro 2024" {
		t.Fatalf("expected Dezembro 2024, got %q", got)
	}
}

func TestCategoryConfigCoversAllCategories(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Fatalf("category %q missing from config table", c)
		}
		cfg := c.Config()
		if cfg.Label == "" || cfg.Color == "" || cfg.Icon == "" {
			t.Fatalf("category %q has incomplete config: %+v", c, cfg)
		}
	}
	if Category("viagens").Valid() {
		t.Fatal("unknown category reported valid")
	}
	// Stale persisted data falls back to the generic config.
	if Category("viagens").Config() != CategoryOther.Config() {
		t.Fatal("unknown category should fall back to outros config")
	}
}
