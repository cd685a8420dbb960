// assets/assets.go
package assets

import _ "embed"

// Заглушки постеров для продуктов без картинки
const (
	MovieMissingImageName = "movie-missing-image.png"
	GameMissingImageName  = "game-missing-image.png"
)

//go:embed movie-missing-image.png
var MovieMissingImage []byte

//go:embed game-missing-image.png
var GameMissingImage []byte
