// internal/core/domain/search/types.go
package search

import (
	"fmt"
	"strconv"
)

// OptionKind тип значения опции команды
type OptionKind int

const (
	OptionString OptionKind = iota
	OptionInteger
	OptionNumber
)

// Option именованное значение опции из вызова команды
type Option struct {
	Name   string
	Kind   OptionKind
	Int    int64
	Number float64
	Str    string
}

// StringOption, IntegerOption, NumberOption - конструкторы для адаптеров и тестов
func StringOption(name, value string) Option {
	return Option{Name: name, Kind: OptionString, Str: value}
}

func IntegerOption(name string, value int64) Option {
	return Option{Name: name, Kind: OptionInteger, Int: value}
}

func NumberOption(name string, value float64) Option {
	return Option{Name: name, Kind: OptionNumber, Number: value}
}

// Invocation вызов команды, уже проверенный транспортом
type Invocation struct {
	Command    string
	Group      string
	Subcommand string
	Options    []Option
	// Token привязывает ответы к исходному вызову
	Token  string
	UserID string
}

// IntentKind вид поискового запроса
type IntentKind int

const (
	IntentMalformed IntentKind = iota
	IntentStoreByID
	IntentProductByID
	IntentProductByName
	IntentProductByBarcode
)

func (k IntentKind) String() string {
	switch k {
	case IntentStoreByID:
		return "store-by-id"
	case IntentProductByID:
		return "product-by-id"
	case IntentProductByName:
		return "product-by-name"
	case IntentProductByBarcode:
		return "product-by-barcode"
	default:
		return "malformed"
	}
}

// QueryIntent классифицированный запрос: что искать и по какому значению
type QueryIntent struct {
	Kind IntentKind
	// ID для *-by-id
	ID int64
	// Text для by-name и by-barcode
	Text string
	// Diagnostic сообщение для пользователя, если Kind == IntentMalformed
	Diagnostic string
}

// Query значение запроса в том виде, в каком его ввел пользователь
func (q QueryIntent) Query() string {
	switch q.Kind {
	case IntentStoreByID, IntentProductByID:
		return strconv.FormatInt(q.ID, 10)
	default:
		return q.Text
	}
}

func (q QueryIntent) String() string {
	if q.Kind == IntentMalformed {
		return fmt.Sprintf("malformed(%s)", q.Diagnostic)
	}
	return fmt.Sprintf("%s(%s)", q.Kind, q.Query())
}
