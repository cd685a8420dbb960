// internal/core/domain/search/router.go
package search

import (
	"math"
	"strconv"
	"strings"
)

// Имена команд, групп и подкоманд
const (
	CommandSearch = "search"
	CommandLookup = "lookup"

	GroupStore   = "store"
	GroupProduct = "product"

	SubcommandByID      = "by-id"
	SubcommandByName    = "by-name"
	SubcommandByBarcode = "by-barcode"

	OptionID          = "id"
	OptionName        = "name"
	OptionBarcode     = "barcode"
	OptionStoreID     = "store_id"
	OptionProductID   = "product_id"
	OptionProductName = "product_name"
)

// Диагностика для нераспознанных вызовов
const (
	DiagnosticStoreSubOption   = "wtf, report this.. store search bad sub-option"
	DiagnosticProductSubOption = "wtf, report this.. product search bad sub-option"
	DiagnosticNoOptions        = "wtf, report this.. search called without options"
	DiagnosticUnknownCommand   = "Unknown Command"
)

// Classify переводит вызов команды в QueryIntent.
// Поддерживаются групповая форма (search product by-name), плоская форма
// (search с store_id/product_id/barcode/product_name) и lookup <store_id>.
// Любая другая форма дает IntentMalformed с диагностикой.
func Classify(inv Invocation) QueryIntent {
	opts := optionSet(inv.Options)

	switch strings.ToLower(inv.Command) {
	case CommandLookup:
		if inv.Group != "" || inv.Subcommand != "" {
			return malformed(DiagnosticUnknownCommand)
		}
		if id, ok := opts.integer(OptionStoreID); ok {
			return QueryIntent{Kind: IntentStoreByID, ID: id}
		}
		if id, ok := opts.integer(OptionID); ok {
			return QueryIntent{Kind: IntentStoreByID, ID: id}
		}
		return malformed(DiagnosticStoreSubOption)

	case CommandSearch:
		if inv.Group != "" {
			return classifyGrouped(strings.ToLower(inv.Group), strings.ToLower(inv.Subcommand), opts)
		}
		if inv.Subcommand != "" {
			return malformed(DiagnosticUnknownCommand)
		}
		return classifyFlat(opts)
	}

	return malformed(DiagnosticUnknownCommand)
}

func classifyGrouped(group, sub string, opts options) QueryIntent {
	switch group {
	case GroupStore:
		if sub == SubcommandByID {
			if id, ok := opts.integer(OptionID); ok {
				return QueryIntent{Kind: IntentStoreByID, ID: id}
			}
		}
		return malformed(DiagnosticStoreSubOption)

	case GroupProduct:
		switch sub {
		case SubcommandByID:
			if id, ok := opts.integer(OptionID); ok {
				return QueryIntent{Kind: IntentProductByID, ID: id}
			}
		case SubcommandByName:
			if text, ok := opts.text(OptionName); ok {
				return QueryIntent{Kind: IntentProductByName, Text: text}
			}
		case SubcommandByBarcode:
			if code, ok := opts.text(OptionBarcode); ok {
				return QueryIntent{Kind: IntentProductByBarcode, Text: code}
			}
		}
		return malformed(DiagnosticProductSubOption)
	}

	return malformed(DiagnosticUnknownCommand)
}

// classifyFlat первое заполненное поле в порядке store_id, product_id, barcode, product_name
func classifyFlat(opts options) QueryIntent {
	if id, ok := opts.integer(OptionStoreID); ok {
		return QueryIntent{Kind: IntentStoreByID, ID: id}
	}
	// заполненный, но не целый id - ошибка подопции, а не пустой вызов
	if opts.populated(OptionStoreID) {
		return malformed(DiagnosticStoreSubOption)
	}
	if id, ok := opts.integer(OptionProductID); ok {
		return QueryIntent{Kind: IntentProductByID, ID: id}
	}
	if opts.populated(OptionProductID) {
		return malformed(DiagnosticProductSubOption)
	}
	if code, ok := opts.text(OptionBarcode); ok {
		return QueryIntent{Kind: IntentProductByBarcode, Text: code}
	}
	if text, ok := opts.text(OptionProductName); ok {
		return QueryIntent{Kind: IntentProductByName, Text: text}
	}
	return malformed(DiagnosticNoOptions)
}

func malformed(diagnostic string) QueryIntent {
	return QueryIntent{Kind: IntentMalformed, Diagnostic: diagnostic}
}

// options опции по имени; при повторе имени берется первое
type options map[string]Option

func optionSet(list []Option) options {
	set := make(options, len(list))
	for _, o := range list {
		name := strings.ToLower(o.Name)
		if _, exists := set[name]; !exists {
			set[name] = o
		}
	}
	return set
}

// integer целое значение: integer, целое number или строка с целым числом
func (o options) integer(name string) (int64, bool) {
	opt, ok := o[name]
	if !ok {
		return 0, false
	}

	switch opt.Kind {
	case OptionInteger:
		return opt.Int, true
	case OptionNumber:
		if opt.Number != math.Trunc(opt.Number) || math.IsInf(opt.Number, 0) ||
			opt.Number >= math.MaxInt64 || opt.Number < math.MinInt64 {
			return 0, false
		}
		return int64(opt.Number), true
	case OptionString:
		v, err := strconv.ParseInt(strings.TrimSpace(opt.Str), 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// text строковое значение без пробелов по краям; пустая строка - не заполнено
func (o options) text(name string) (string, bool) {
	opt, ok := o[name]
	if !ok {
		return "", false
	}

	var s string
	switch opt.Kind {
	case OptionString:
		s = strings.TrimSpace(opt.Str)
	case OptionInteger:
		s = strconv.FormatInt(opt.Int, 10)
	case OptionNumber:
		s = strconv.FormatFloat(opt.Number, 'f', -1, 64)
	}
	return s, s != ""
}

func (o options) populated(name string) bool {
	_, ok := o.text(name)
	return ok
}
