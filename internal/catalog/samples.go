package catalog

// Samples are literal SELECTs that need no tables. Each one returns the columns its
// chart recipe reads, so the whole chart set can be previewed against any driver that
// accepts UNION ALL, such as an in-memory sqlite database.
func Samples() []Query {
	return FromSQL([]string{
		"SELECT 'Single Family' AS LandUse, 34268 AS Count UNION ALL SELECT 'Residential Condo', 14063" +
			" UNION ALL SELECT 'Vacant Residential Land', 3543 UNION ALL SELECT 'Duplex', 1372",
		"SELECT 'Single Family' AS LandUse, 273000.5 AS AvgSalePrice UNION ALL SELECT 'Residential Condo', 245000.0" +
			" UNION ALL SELECT 'Duplex', 180000.0",
		"SELECT 'Single Family' AS LandUse, 2 AS Bedrooms, 180000.0 AS AvgSalePrice" +
			" UNION ALL SELECT 'Single Family', 3, 250000.0 UNION ALL SELECT 'Single Family', 4, 420000.0",
		"SELECT 'Single Family' AS LandUse, 1 AS Bedrooms, 400 AS Count UNION ALL SELECT 'Single Family', 2, 3000" +
			" UNION ALL SELECT 'Single Family', 3, 12000 UNION ALL SELECT 'Single Family', 4, 5000",
		"SELECT 1 AS FullBath, 0 AS HalfBath, 1.0 AS Bathrooms, 150000.0 AS AverageSalePrice" +
			" UNION ALL SELECT 2, 0, 2.0, 260000.0 UNION ALL SELECT 2, 1, 2.5, 320000.0 UNION ALL SELECT 3, 1, 3.5, 540000.0",
		"SELECT 2010 AS YearBuilt, 'Single Family' AS LandUse, '1 Main St' AS PropertySplitAddress," +
			" 'Nashville' AS PropertySplitCity, 'Owner A' AS OwnerName, 12000000.0 AS TotalValue" +
			" UNION ALL SELECT 1998, 'Single Family', '20 Oak Ave', 'Brentwood', 'Owner B', 9500000.0" +
			" UNION ALL SELECT 2004, 'Single Family', '7 Hill Rd', 'Nashville', 'Owner C', 8100000.0",
		"SELECT 2005 AS YearBuilt, 900 AS Count, 'Single Family' AS LandUse UNION ALL SELECT 2006, 850, 'Single Family'" +
			" UNION ALL SELECT 2004, 820, 'Single Family'",
		"SELECT 1950 AS YearBuilt, 400 AS TotalSales, 150000.0 AS AvgSalePrice, 100.0 AS MinSalePrice, 2000000.0 AS MaxSalePrice" +
			" UNION ALL SELECT 1980, 700, 210000.0, 500.0, 4000000.0 UNION ALL SELECT 2000, 900, 300000.0, 1000.0, 9000000.0",
		"SELECT 'Duplex' AS LandUse, 2 AS Bedrooms, 150000.0 AS AvgSalePrice UNION ALL SELECT 'Duplex', 4, 210000.0" +
			" UNION ALL SELECT 'Single Family', 3, 250000.0 UNION ALL SELECT 'Single Family', 4, 390000.0",
		"SELECT 2009 AS YearBuilt, '0-50k' AS PriceRange, 3 AS SalesCount UNION ALL SELECT 2009, '100k-200k', 12" +
			" UNION ALL SELECT 2010, '100k-200k', 9 UNION ALL SELECT 2010, '500k+', 4",
	})
}
