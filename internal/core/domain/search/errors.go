// internal/core/domain/search/errors.go
package search

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable каталог не читается: единственная операционная ошибка
var ErrStoreUnavailable = errors.New("catalog store unavailable")

// NotFoundError по запросу ничего не найдено
type NotFoundError struct {
	Intent QueryIntent
	// BarcodeUnknown штрихкода нет в таблице штрихкодов
	BarcodeUnknown bool
}

func (e *NotFoundError) Error() string {
	q := e.Intent.Query()
	switch e.Intent.Kind {
	case IntentStoreByID:
		return fmt.Sprintf("Store with ID %s not found", q)
	case IntentProductByID:
		return fmt.Sprintf("Product with ID '%s' not found", q)
	case IntentProductByName:
		return fmt.Sprintf("Product with Name '%s' not found", q)
	case IntentProductByBarcode:
		if e.BarcodeUnknown {
			return fmt.Sprintf("Barcode '%s' not found", q)
		}
		return fmt.Sprintf("Product with Barcode '%s' not found", q)
	}
	return fmt.Sprintf("'%s' not found", q)
}

// TooManyResultsError результатов больше, чем можно показать
type TooManyResultsError struct {
	Query string
	Count int
	Max   int
	// Capped выборка обрезана на Max+1, точное количество неизвестно
	Capped bool
}

func (e *TooManyResultsError) Error() string {
	count := fmt.Sprintf("%d", e.Count)
	if e.Capped {
		count = fmt.Sprintf("%d+", e.Max)
	}
	return fmt.Sprintf("Found %s products matching '%s', please narrow your search (max %d)", count, e.Query, e.Max)
}

// MalformedInvocationError нераспознанная форма вызова
type MalformedInvocationError struct {
	Diagnostic string
}

func (e *MalformedInvocationError) Error() string {
	return e.Diagnostic
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
