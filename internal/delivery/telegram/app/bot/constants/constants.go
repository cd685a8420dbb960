// internal/delivery/telegram/app/bot/constants/constants.go
package constants

// Команды бота (без /)
const (
	CommandSearch = "search"
	CommandLookup = "lookup"
	CommandPing   = "ping"
	CommandHelp   = "help"
	CommandStart  = "start"
)

// CommandDescriptions содержит описания для команд меню
var CommandDescriptions = struct {
	Search string
	Lookup string
	Ping   string
	Help   string
}{
	Search: "Search the catalog for stores and products",
	Lookup: "Look up a store by ID",
	Ping:   "Check that the bot is alive",
	Help:   "Show usage",
}

// ButtonTexts содержит тексты для кнопок
var ButtonTexts = struct {
	// DisabledFormat подпись неактивной кнопки
	DisabledFormat string
	// SelectorFormat подпись пункта списка выбора: номер и название
	SelectorFormat string
}{
	DisabledFormat: "· %s ·",
	SelectorFormat: "%d. %s",
}

// MaxSelectorLabel длина подписи пункта списка выбора в символах
const MaxSelectorLabel = 48

// ParseModeHTML режим разметки всех исходящих сообщений
const ParseModeHTML = "HTML"

// Лимиты Bot API в символах
const (
	MaxMessageLength = 4096
	MaxCaptionLength = 1024
)

// Действия sendChatAction
const (
	ChatActionTyping      = "typing"
	ChatActionUploadPhoto = "upload_photo"
)

// PongMessage ответ на /ping
const PongMessage = "Pong!"

// HelpMessage ответ на /help и /start
const HelpMessage = `<b>Catalog lookup</b>

<code>/search store by-id 12</code>
<code>/search product by-id 345</code>
<code>/search product by-name star wars</code>
<code>/search product by-barcode 012345678905</code>
<code>/search store_id=12</code> (also <code>product_id=</code>, <code>barcode=</code>, <code>product_name=</code>)
<code>/lookup 12</code>

Use the buttons under a result list to page through it. Only the person who ran the search can use them.`
