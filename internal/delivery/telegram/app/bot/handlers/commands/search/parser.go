// internal/delivery/telegram/app/bot/handlers/commands/search/parser.go
package search

import (
	"strconv"
	"strings"

	core "catalog-lookup-bot/internal/core/domain/search"
)

// integerOptions опции, которые схема команды считает целыми
var integerOptions = map[string]bool{
	core.OptionID:        true,
	core.OptionStoreID:   true,
	core.OptionProductID: true,
}

// ParseInvocation разбирает текст команды Telegram в вызов.
//
//	/search product by-name star wars   → group=product sub=by-name name="star wars"
//	/search store_id=12                 → store_id=12
//	/search product_name=star wars      → product_name="star wars"
//	/search star wars                   → product_name="star wars"
//	/lookup 12                          → store_id=12
//
// Позиционный текст становится значением опции по умолчанию для подкоманды;
// name=value задает опцию явно, последующие слова без = дописываются к ней.
func ParseInvocation(text string) core.Invocation {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return core.Invocation{}
	}

	inv := core.Invocation{Command: CommandName(tokens[0])}
	args := tokens[1:]

	if inv.Command == core.CommandSearch && len(args) > 0 && isGroup(args[0]) {
		inv.Group = strings.ToLower(args[0])
		args = args[1:]
		if len(args) > 0 && !isAssignment(args[0]) {
			inv.Subcommand = strings.ToLower(args[0])
			args = args[1:]
		}
	}

	var (
		positional []string
		named      []namedValue
	)
	for _, tok := range args {
		if name, value, ok := assignment(tok); ok {
			named = append(named, namedValue{name: name, words: nonEmpty(value)})
			continue
		}
		if len(named) > 0 {
			last := &named[len(named)-1]
			last.words = append(last.words, tok)
			continue
		}
		positional = append(positional, tok)
	}

	if len(positional) > 0 {
		if name := defaultOption(inv); name != "" {
			named = append([]namedValue{{name: name, words: positional}}, named...)
		}
	}

	for _, nv := range named {
		inv.Options = append(inv.Options, typedOption(nv.name, nv.value()))
	}
	return inv
}

// CommandName имя команды без / и без @имя_бота, в нижнем регистре
func CommandName(token string) string {
	token = strings.TrimPrefix(token, "/")
	if at := strings.IndexByte(token, '@'); at >= 0 {
		token = token[:at]
	}
	return strings.ToLower(token)
}

// CommandMention имя бота из /команда@имя_бота; пусто, если упоминания нет
func CommandMention(token string) string {
	if at := strings.IndexByte(token, '@'); at >= 0 {
		return token[at+1:]
	}
	return ""
}

type namedValue struct {
	name  string
	words []string
}

func (nv namedValue) value() string {
	v := strings.Join(nv.words, " ")
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		v = v[1 : len(v)-1]
	}
	return v
}

// defaultOption опция, в которую попадает позиционный текст
func defaultOption(inv core.Invocation) string {
	switch inv.Command {
	case core.CommandLookup:
		return core.OptionStoreID
	case core.CommandSearch:
		if inv.Group == "" {
			return core.OptionProductName
		}
		switch inv.Subcommand {
		case core.SubcommandByID:
			return core.OptionID
		case core.SubcommandByName:
			return core.OptionName
		case core.SubcommandByBarcode:
			return core.OptionBarcode
		}
	}
	return ""
}

func typedOption(name, value string) core.Option {
	if integerOptions[name] {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return core.IntegerOption(name, n)
		}
	}
	return core.StringOption(name, value)
}

func isGroup(tok string) bool {
	tok = strings.ToLower(tok)
	return tok == core.GroupStore || tok == core.GroupProduct
}

func isAssignment(tok string) bool {
	_, _, ok := assignment(tok)
	return ok
}

// assignment разбирает name=value; имя только из букв, цифр и _
func assignment(tok string) (name, value string, ok bool) {
	eq := strings.IndexByte(tok, '=')
	if eq <= 0 {
		return "", "", false
	}
	name = strings.ToLower(tok[:eq])
	for _, r := range name {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return "", "", false
		}
	}
	return name, tok[eq+1:], true
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
