package mapper

import (
	"encoding/json"
	"math/big"
	"reflect"
	"testing"
)

func TestExactToSafe(t *testing.T) {
	in := Object{
		"amount": int64(1500),
		"count":  7,
		"big":    big.NewInt(42),
		"num":    json.Number("12"),
		"frac":   json.Number("1.5"),
		"name":   "x",
		"ok":     true,
		"none":   nil,
		"list":   []any{int64(1), "2"},
	}

	got := ExactToSafe(in).(Object)

	want := Object{
		"amount": float64(1500),
		"count":  float64(7),
		"big":    float64(42),
		"num":    float64(12),
		"frac":   json.Number("1.5"),
		"name":   "x",
		"ok":     true,
		"none":   nil,
		"list":   []any{float64(1), "2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExactToSafe = %#v, want %#v", got, want)
	}
	if in["amount"] != int64(1500) {
		t.Error("input mutated")
	}
}

func TestSafeToExact(t *testing.T) {
	in := Object{
		"amount": float64(1500),
		"rate":   1.25,
		"num":    json.Number("99"),
		"huge":   1e300,
		"name":   "1500",
	}

	got := SafeToExact(in).(Object)

	if got["amount"] != int64(1500) {
		t.Errorf("amount = %#v", got["amount"])
	}
	if got["rate"] != 1.25 {
		t.Errorf("rate = %#v", got["rate"])
	}
	if got["num"] != int64(99) {
		t.Errorf("num = %#v", got["num"])
	}
	if got["huge"] != 1e300 {
		t.Errorf("huge = %#v", got["huge"])
	}
	if got["name"] != "1500" {
		t.Errorf("name = %#v", got["name"])
	}
}

func TestNumericBoundary(t *testing.T) {
	tests := []struct {
		name     string
		in       int64
		lossless bool
	}{
		{"zero", 0, true},
		{"negative", -123456789, true},
		{"below boundary", MaxSafeInteger - 1, true},
		{"boundary", MaxSafeInteger, true},
		{"above boundary", MaxSafeInteger + 1, false},
		{"negative above boundary", -(MaxSafeInteger + 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := SafeToExact(ExactToSafe(tt.in))
			got, ok := back.(int64)
			if !ok {
				t.Fatalf("round trip type = %T", back)
			}
			if (got == tt.in) != tt.lossless {
				t.Errorf("round trip of %d = %d, lossless=%v", tt.in, got, tt.lossless)
			}
		})
	}
}

func TestStringifyIntegers(t *testing.T) {
	in := Object{
		"amount": int64(9007199254740993),
		"nested": []any{Object{"u": uint64(18446744073709551615)}},
		"name":   "n",
		"rate":   0.5,
	}

	got := StringifyIntegers(in).(Object)

	if got["amount"] != "9007199254740993" {
		t.Errorf("amount = %#v", got["amount"])
	}
	u := got["nested"].([]any)[0].(Object)["u"]
	if u != "18446744073709551615" {
		t.Errorf("u = %#v", u)
	}
	if got["rate"] != 0.5 || got["name"] != "n" {
		t.Errorf("non-integer leaves changed: %#v", got)
	}
}

func TestStringifyIntegers_Struct(t *testing.T) {
	type money struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}

	got := StringifyIntegers(money{Amount: 9007199254740993, Currency: "USD"})

	obj, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("StringifyIntegers(struct) = %T", got)
	}
	if obj["amount"] != "9007199254740993" || obj["currency"] != "USD" {
		t.Errorf("got %#v", obj)
	}
}
