package search

import (
	"testing"

	core "catalog-lookup-bot/internal/core/domain/search"

	"github.com/stretchr/testify/assert"
)

func TestParseInvocation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want core.Invocation
	}{
		{
			name: "grouped by name",
			text: "/search product by-name Star Wars",
			want: core.Invocation{Command: "search", Group: "product", Subcommand: "by-name",
				Options: []core.Option{core.StringOption("name", "Star Wars")}},
		},
		{
			name: "grouped by id is an integer",
			text: "/search Store BY-ID 12",
			want: core.Invocation{Command: "search", Group: "store", Subcommand: "by-id",
				Options: []core.Option{core.IntegerOption("id", 12)}},
		},
		{
			name: "barcode keeps leading zeros",
			text: "/search product by-barcode 0012345",
			want: core.Invocation{Command: "search", Group: "product", Subcommand: "by-barcode",
				Options: []core.Option{core.StringOption("barcode", "0012345")}},
		},
		{
			name: "flat named option",
			text: "/search@CatalogBot store_id=12",
			want: core.Invocation{Command: "search",
				Options: []core.Option{core.IntegerOption("store_id", 12)}},
		},
		{
			name: "named value continues over words",
			text: "/search product_name=the lord of the rings",
			want: core.Invocation{Command: "search",
				Options: []core.Option{core.StringOption("product_name", "the lord of the rings")}},
		},
		{
			name: "several named options keep order",
			text: "/search barcode=123 product_id=7",
			want: core.Invocation{Command: "search",
				Options: []core.Option{core.StringOption("barcode", "123"), core.IntegerOption("product_id", 7)}},
		},
		{
			name: "flat positional text is a product name",
			text: `/search "alien"`,
			want: core.Invocation{Command: "search",
				Options: []core.Option{core.StringOption("product_name", "alien")}},
		},
		{
			name: "non numeric id stays a string",
			text: "/search store by-id abc",
			want: core.Invocation{Command: "search", Group: "store", Subcommand: "by-id",
				Options: []core.Option{core.StringOption("id", "abc")}},
		},
		{
			name: "lookup positional",
			text: "/lookup 44",
			want: core.Invocation{Command: "lookup",
				Options: []core.Option{core.IntegerOption("store_id", 44)}},
		},
		{
			name: "no options",
			text: "/search",
			want: core.Invocation{Command: "search"},
		},
		{
			name: "group without subcommand",
			text: "/search product name=x",
			want: core.Invocation{Command: "search", Group: "product",
				Options: []core.Option{core.StringOption("name", "x")}},
		},
		{
			name: "empty",
			text: "   ",
			want: core.Invocation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInvocation(tt.text))
		})
	}
}

func TestParseInvocation_ClassifiesAsExpected(t *testing.T) {
	tests := map[string]core.IntentKind{
		"/search store by-id 1":              core.IntentStoreByID,
		"/search product by-id 2":            core.IntentProductByID,
		"/search product by-name alien":      core.IntentProductByName,
		"/search product by-barcode 0123":    core.IntentProductByBarcode,
		"/search store_id=1":                 core.IntentStoreByID,
		"/search product_id=2":               core.IntentProductByID,
		"/search barcode=0123":               core.IntentProductByBarcode,
		"/search product_name=alien":         core.IntentProductByName,
		"/lookup 12":                         core.IntentStoreByID,
		"/search store by-name foo":          core.IntentMalformed,
		"/search product by-id":              core.IntentMalformed,
		"/search":                            core.IntentMalformed,
		"/search product_name=":              core.IntentMalformed,
		"/search store_id=1 product_name=x":  core.IntentStoreByID,
	}

	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			assert.Equal(t, want, core.Classify(ParseInvocation(text)).Kind)
		})
	}
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "search", CommandName("/search"))
	assert.Equal(t, "lookup", CommandName("/Lookup@catalog_bot"))
	assert.Equal(t, "ping", CommandName("ping"))
}

func TestCommandMention(t *testing.T) {
	assert.Equal(t, "catalog_bot", CommandMention("/Lookup@catalog_bot"))
	assert.Empty(t, CommandMention("/search"))
}
