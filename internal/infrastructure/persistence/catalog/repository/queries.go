// internal/infrastructure/persistence/catalog/repository/queries.go
package repository

// Колонки каталога приводятся к snake_case, чтобы теги db одинаково
// работали для SQLite и PostgreSQL.
const storeColumns = `
	Id AS id, Address AS address, Address2 AS address2, City AS city,
	State AS state, County AS county, Zip AS zip,
	VendorId AS vendor_id, BannerId AS banner_id, OpenDate AS open_date`

const productColumns = `
	Id AS id, LongName AS long_name, Description AS description,
	ProductTypeId AS product_type_id, RatingId AS rating_id, GenreIds AS genre_ids,
	ReleaseDate AS release_date, MerchandiseDate AS merchandise_date,
	NationalStreetDate AS national_street_date, DoNotRentDate AS do_not_rent_date,
	ImageFile AS image_file, Studio AS studio, RunningTime AS running_time, Stars AS stars`

const (
	queryStoreByID = `SELECT` + storeColumns + ` FROM Store WHERE Id = ?`

	queryProductByID = `SELECT` + productColumns + ` FROM ProductCatalog WHERE Id = ?`

	queryProductsByExactName = `SELECT` + productColumns + `
	FROM ProductCatalog
	WHERE LongName = ?
	ORDER BY Id`

	queryProductsByName = `SELECT` + productColumns + `
	FROM ProductCatalog
	WHERE LOWER(LongName) LIKE '%' || LOWER(CAST(? AS TEXT)) || '%' ESCAPE '\'
	ORDER BY Id
	LIMIT ?`

	queryProductIDByBarcode = `SELECT ProductId FROM Barcodes WHERE Barcode = ?`

	queryVendorName      = `SELECT Name FROM Vendor WHERE Id = ?`
	queryBannerName      = `SELECT Name FROM Banner WHERE Id = ?`
	queryProductTypeName = `SELECT ProductTypeName FROM ProductType WHERE Id = ?`
	queryRatingName      = `SELECT Name FROM ProductRating WHERE Id = ?`
	queryGenreName       = `SELECT Name FROM Genres WHERE Id = ?`

	queryImage = `SELECT Data FROM Cache WHERE Name = ?`
)
