// Package catalog holds the analytical queries run against the Nashville housing
// dataset. The position of a query in the catalog selects its chart recipe.
package catalog

import "strconv"

const table = "CleaningPortfolioProject.dbo.NashvilleHousing"

// Query pairs a SQL statement with the short name used in logs and listings.
type Query struct {
	Name string
	SQL  string
}

var defaults = []Query{
	{
		Name: "Unique values from LandUse",
		SQL:  "SELECT LandUse, COUNT(*) AS Count FROM " + table + " GROUP BY LandUse ORDER BY Count DESC",
	},
	{
		Name: "Average sale price by land use",
		SQL:  "SELECT LandUse, AVG(SalePrice) AS AvgSalePrice FROM " + table + " GROUP BY LandUse ORDER BY AvgSalePrice DESC",
	},
	{
		Name: "Average sale price of single family houses by bedrooms",
		SQL: "SELECT LandUse, Bedrooms, AVG(SalePrice) AS AvgSalePrice FROM " + table +
			" WHERE LandUse = 'Single Family' AND Bedrooms IS NOT NULL GROUP BY LandUse, Bedrooms ORDER BY AvgSalePrice DESC",
	},
	{
		Name: "Distribution of number of bedrooms",
		SQL: "SELECT LandUse, Bedrooms, COUNT(*) AS Count FROM " + table +
			" WHERE LandUse = 'Single Family' AND Bedrooms IS NOT NULL GROUP BY LandUse, Bedrooms ORDER BY LandUse, Bedrooms",
	},
	{
		Name: "Average sale price by number of bathrooms",
		SQL: "SELECT FullBath, HalfBath, Bathrooms, AVG(SalePrice) AS AverageSalePrice FROM " + table +
			" WHERE FullBath IS NOT NULL AND HalfBath IS NOT NULL GROUP BY Bathrooms, FullBath, HalfBath ORDER BY Bathrooms ASC",
	},
	{
		Name: "Top 5 properties by total value",
		SQL: "SELECT DISTINCT TOP 5 YearBuilt, LandUse, PropertySplitAddress, PropertySplitCity, OwnerName, (LandValue + BuildingValue) AS TotalValue FROM " + table +
			" WHERE YEAR(SaleDateConverted) > 2008 ORDER BY TotalValue DESC",
	},
	{
		Name: "Most common years of construction by land use",
		SQL: "SELECT TOP 5 YearBuilt, COUNT(*) AS Count, LandUse FROM " + table +
			" WHERE YearBuilt IS NOT NULL GROUP BY YearBuilt, LandUse ORDER BY Count DESC",
	},
	{
		Name: "Sale price statistics by year of construction",
		SQL: "SELECT YearBuilt, COUNT(*) AS TotalSales, AVG(SalePrice) AS AvgSalePrice, MIN(SalePrice) AS MinSalePrice, MAX(SalePrice) AS MaxSalePrice FROM " + table +
			" GROUP BY YearBuilt ORDER BY YearBuilt",
	},
	{
		Name: "Average sale price by bedrooms and land use",
		SQL:  "SELECT LandUse, Bedrooms, AVG(SalePrice) AS AvgSalePrice FROM " + table + " GROUP BY LandUse, Bedrooms ORDER BY LandUse, Bedrooms",
	},
	{
		Name: "Properties sold per price range by year of construction",
		SQL: "SELECT YearBuilt, PriceRange, COUNT(*) AS SalesCount FROM (" +
			"SELECT YearBuilt, CASE" +
			" WHEN SalePrice < 50000 THEN '0-50k'" +
			" WHEN SalePrice >= 50000 AND SalePrice < 100000 THEN '50k-100K'" +
			" WHEN SalePrice >= 100000 AND SalePrice < 200000 THEN '100k-200k'" +
			" WHEN SalePrice >= 200000 AND SalePrice < 300000 THEN '200k-300k'" +
			" WHEN SalePrice >= 300000 AND SalePrice < 400000 THEN '300k-400k'" +
			" WHEN SalePrice >= 400000 AND SalePrice < 500000 THEN '400k-500k'" +
			" ELSE '500k+' END AS PriceRange FROM " + table + " WHERE YearBuilt > 2008" +
			") AS PriceRanges GROUP BY YearBuilt, PriceRange ORDER BY YearBuilt, PriceRange",
	},
}

// Default returns a copy of the built-in catalog.
func Default() []Query {
	out := make([]Query, len(defaults))
	copy(out, defaults)
	return out
}

// FromSQL wraps configured statements; names are positional.
func FromSQL(statements []string) []Query {
	out := make([]Query, len(statements))
	for i, s := range statements {
		out[i] = Query{Name: "query " + strconv.Itoa(i+1), SQL: s}
	}
	return out
}

// Resolve returns the configured statements when any are given, the defaults otherwise.
func Resolve(statements []string) []Query {
	if len(statements) == 0 {
		return Default()
	}
	return FromSQL(statements)
}

// SQL extracts the statements in order.
func SQL(queries []Query) []string {
	out := make([]string, len(queries))
	for i, q := range queries {
		out[i] = q.SQL
	}
	return out
}
