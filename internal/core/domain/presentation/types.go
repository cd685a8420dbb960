// internal/core/domain/presentation/types.go
package presentation

import "fmt"

// Color цвет всех карточек
const Color = 0xC6162C

// Field поле карточки
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Attachment бинарное вложение сообщения
type Attachment struct {
	Name string
	Data []byte
}

// Unit платформо-независимая карточка одного результата
type Unit struct {
	Title       string
	Description string
	Color       int
	Fields      []Field
	Footer      string
	Image       *Attachment
	// ImageURL ссылка на вложение вида attachment://<имя файла>
	ImageURL string
	// Label короткая подпись для списка выбора
	Label string
}

// WithFooter копия карточки с другим футером
func (u Unit) WithFooter(footer string) Unit {
	u.Footer = footer
	return u
}

// AttachmentURL ссылка на вложение внутри сообщения
func AttachmentURL(name string) string {
	return "attachment://" + name
}

// Идентификаторы элементов управления пагинацией
const (
	ControlPrev   = "prev"
	ControlNext   = "next"
	ControlSelect = "select"
)

// Button кнопка с идентификатором, назначенным вызывающим кодом
type Button struct {
	ID       string
	Label    string
	Disabled bool
}

// SelectOption пункт списка выбора
type SelectOption struct {
	Label string
	Index int
}

// Controls набор элементов управления под сообщением
type Controls struct {
	// Selector пуст, если список выбора не показывается
	Selector    []SelectOption
	Placeholder string
	Buttons     []Button
}

// Empty true если показывать нечего
func (c *Controls) Empty() bool {
	return c == nil || (len(c.Selector) == 0 && len(c.Buttons) == 0)
}

// Message исходящее сообщение: текст, карточка и элементы управления
type Message struct {
	Content  string
	Unit     *Unit
	Controls *Controls
}

// Text сообщение только с текстом, без форматирования
func Text(s string) Message {
	return Message{Content: s}
}

// TextMessage сообщение только с текстом по шаблону fmt
func TextMessage(format string, args ...interface{}) Message {
	return Message{Content: fmt.Sprintf(format, args...)}
}

// MessageRef идентичность отправленного сообщения на платформе
type MessageRef struct {
	ChatID    string
	MessageID string
}

func (r MessageRef) String() string {
	return r.ChatID + "/" + r.MessageID
}
