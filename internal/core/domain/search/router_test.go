package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_GroupedForm(t *testing.T) {
	tests := []struct {
		name string
		inv  Invocation
		want QueryIntent
	}{
		{
			name: "store by id",
			inv:  Invocation{Command: "search", Group: "store", Subcommand: "by-id", Options: []Option{IntegerOption("id", 12)}},
			want: QueryIntent{Kind: IntentStoreByID, ID: 12},
		},
		{
			name: "product by id from whole number",
			inv:  Invocation{Command: "search", Group: "product", Subcommand: "by-id", Options: []Option{NumberOption("id", 7)}},
			want: QueryIntent{Kind: IntentProductByID, ID: 7},
		},
		{
			name: "product by name trims text",
			inv:  Invocation{Command: "search", Group: "product", Subcommand: "by-name", Options: []Option{StringOption("name", "  Heat ")}},
			want: QueryIntent{Kind: IntentProductByName, Text: "Heat"},
		},
		{
			name: "product by barcode",
			inv:  Invocation{Command: "search", Group: "product", Subcommand: "by-barcode", Options: []Option{StringOption("barcode", "0123")}},
			want: QueryIntent{Kind: IntentProductByBarcode, Text: "0123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.inv))
		})
	}
}

func TestClassify_FlatFormPriority(t *testing.T) {
	all := []Option{
		StringOption("product_name", "Heat"),
		StringOption("barcode", "0123"),
		IntegerOption("product_id", 7),
		IntegerOption("store_id", 12),
	}

	got := Classify(Invocation{Command: "search", Options: all})
	assert.Equal(t, QueryIntent{Kind: IntentStoreByID, ID: 12}, got)

	got = Classify(Invocation{Command: "search", Options: all[:3]})
	assert.Equal(t, QueryIntent{Kind: IntentProductByID, ID: 7}, got)

	got = Classify(Invocation{Command: "search", Options: all[:2]})
	assert.Equal(t, QueryIntent{Kind: IntentProductByBarcode, Text: "0123"}, got)

	got = Classify(Invocation{Command: "search", Options: all[:1]})
	assert.Equal(t, QueryIntent{Kind: IntentProductByName, Text: "Heat"}, got)
}

func TestClassify_EmptyStringIsNotPopulated(t *testing.T) {
	got := Classify(Invocation{Command: "search", Options: []Option{
		StringOption("barcode", "   "),
		StringOption("product_name", "Heat"),
	}})
	assert.Equal(t, IntentProductByName, got.Kind)
}

func TestClassify_LookupAlias(t *testing.T) {
	got := Classify(Invocation{Command: "lookup", Options: []Option{IntegerOption("store_id", 44)}})
	assert.Equal(t, QueryIntent{Kind: IntentStoreByID, ID: 44}, got)
}

func TestClassify_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		inv        Invocation
		diagnostic string
	}{
		{"store bad sub-option", Invocation{Command: "search", Group: "store", Subcommand: "by-name"}, DiagnosticStoreSubOption},
		{"store missing id", Invocation{Command: "search", Group: "store", Subcommand: "by-id"}, DiagnosticStoreSubOption},
		{"product bad sub-option", Invocation{Command: "search", Group: "product", Subcommand: "by-color"}, DiagnosticProductSubOption},
		{"fractional id", Invocation{Command: "search", Group: "product", Subcommand: "by-id", Options: []Option{NumberOption("id", 1.5)}}, DiagnosticProductSubOption},
		{"unknown group", Invocation{Command: "search", Group: "vendor", Subcommand: "by-id"}, DiagnosticUnknownCommand},
		{"flat without options", Invocation{Command: "search"}, DiagnosticNoOptions},
		{"flat store_id not an integer", Invocation{Command: "search", Options: []Option{StringOption("store_id", "abc")}}, DiagnosticStoreSubOption},
		{"flat product_id fractional", Invocation{Command: "search", Options: []Option{NumberOption("product_id", 2.5), StringOption("barcode", "0123")}}, DiagnosticProductSubOption},
		{"flat blank store_id", Invocation{Command: "search", Options: []Option{StringOption("store_id", "  ")}}, DiagnosticNoOptions},
		{"unknown command", Invocation{Command: "order"}, DiagnosticUnknownCommand},
		{"lookup without id", Invocation{Command: "lookup"}, DiagnosticStoreSubOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.inv)
			assert.Equal(t, IntentMalformed, got.Kind)
			assert.Equal(t, tt.diagnostic, got.Diagnostic)
		})
	}
}

func TestQueryIntent_String(t *testing.T) {
	assert.Equal(t, "store-by-id(12)", QueryIntent{Kind: IntentStoreByID, ID: 12}.String())
	assert.Equal(t, "product-by-name(Heat)", QueryIntent{Kind: IntentProductByName, Text: "Heat"}.String())
}
