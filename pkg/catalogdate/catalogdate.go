// pkg/catalogdate/catalogdate.go
package catalogdate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Ширины полей каталожной даты: YYYY MM DD HHMMSS (всего 14 цифр).
const (
	yearWidth  = 4
	monthWidth = 2
	dayWidth   = 2
	timeWidth  = 6

	EncodedLength = yearWidth + monthWidth + dayWidth + timeWidth

	// Placeholder выводится вместо даты, которую не удалось разобрать
	Placeholder = "N/A"
)

var ErrInvalidDate = errors.New("invalid catalog date")

// Decode разбирает дату каталога вида 20200115093000.
// Строка короче/длиннее 14 символов или с нецифровыми символами - ошибка.
func Decode(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != EncodedLength {
		return time.Time{}, fmt.Errorf("%w: %q has length %d", ErrInvalidDate, raw, len(raw))
	}

	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return time.Time{}, fmt.Errorf("%w: %q contains non-digit", ErrInvalidDate, raw)
		}
	}

	year := atoi(raw[0:4])
	month := atoi(raw[4:6])
	day := atoi(raw[6:8])
	hour := atoi(raw[8:10])
	minute := atoi(raw[10:12])
	second := atoi(raw[12:14])

	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("%w: %q out of range", ErrInvalidDate, raw)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	// 20230231... нормализуется в март - такую дату считаем некорректной
	if t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidDate, raw)
	}

	return t, nil
}

// Format возвращает дату в виде MM/DD/YYYY или "N/A"
func Format(raw string) string {
	raw = strings.TrimSpace(raw)
	if _, err := Decode(raw); err != nil {
		return Placeholder
	}
	return raw[4:6] + "/" + raw[6:8] + "/" + raw[0:4]
}

// Year возвращает первые четыре цифры (год) или "N/A"
func Year(raw string) string {
	raw = strings.TrimSpace(raw)
	if _, err := Decode(raw); err != nil {
		return Placeholder
	}
	return raw[:yearWidth]
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
