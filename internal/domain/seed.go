package domain

func intPtr(v int) *int { return &v }

// SeedProducts returns the starter catalog loaded on first run and by the
// seed CLI, so a fresh install has something to chart.
func SeedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Organic Milk", PurchasePrice: 2.50, SellingPrice: 4.50, UnitsSoldWeek: 100, Category: "Dairy", StockLevel: intPtr(50), Supplier: "Farm Fresh Inc."},
		{ID: 2, Name: "Artisan Bread", PurchasePrice: 1.80, SellingPrice: 3.99, UnitsSoldWeek: 80, Category: "Bakery", StockLevel: intPtr(40), Supplier: "Local Breads Co."},
		{ID: 3, Name: "Gourmet Coffee", PurchasePrice: 8.00, SellingPrice: 15.00, UnitsSoldWeek: 50, Category: "Pantry", StockLevel: intPtr(60), Supplier: "Global Beans"},
		{ID: 4, Name: "Imported Cheese", PurchasePrice: 5.50, SellingPrice: 9.75, UnitsSoldWeek: 40, Category: "Dairy", StockLevel: intPtr(25), Supplier: "Cheese Masters"},
		{ID: 5, Name: "Craft Soda", PurchasePrice: 1.00, SellingPrice: 2.25, UnitsSoldWeek: 150, Category: "Drinks", StockLevel: intPtr(120), Supplier: "Fizz Pop Beverages"},
		{ID: 6, Name: "Hass Avocados", PurchasePrice: 0.90, SellingPrice: 1.99, UnitsSoldWeek: 200, Category: "Produce", StockLevel: intPtr(150), Supplier: "Green Valley Farms"},
		{ID: 7, Name: "Organic Chicken Breast", PurchasePrice: 6.50, SellingPrice: 11.99, UnitsSoldWeek: 60, Category: "Meat", StockLevel: intPtr(30), Supplier: "Ethical Meats Co."},
		{ID: 8, Name: "Ginger Kombucha", PurchasePrice: 2.00, SellingPrice: 4.25, UnitsSoldWeek: 90, Category: "Drinks", StockLevel: intPtr(70), Supplier: "Healthy Brews"},
		{ID: 9, Name: "Sourdough Loaf", PurchasePrice: 2.50, SellingPrice: 5.50, UnitsSoldWeek: 75, Category: "Bakery", StockLevel: intPtr(35), Supplier: "Local Breads Co."},
		{ID: 10, Name: "Greek Yogurt 500g", PurchasePrice: 3.00, SellingPrice: 5.49, UnitsSoldWeek: 110, Category: "Dairy", StockLevel: intPtr(80), Supplier: "Farm Fresh Inc."},
		{ID: 11, Name: "Organic Quinoa", PurchasePrice: 4.00, SellingPrice: 7.99, UnitsSoldWeek: 45, Category: "Pantry", StockLevel: intPtr(55), Supplier: "Global Beans"},
		{ID: 12, Name: "Margherita Frozen Pizza", PurchasePrice: 3.50, SellingPrice: 6.99, UnitsSoldWeek: 85, Category: "Frozen", StockLevel: intPtr(100), Supplier: "Quick Meals LLC"},
		{ID: 13, Name: "Cabernet Sauvignon", PurchasePrice: 12.00, SellingPrice: 22.50, UnitsSoldWeek: 30, Category: "Alcohol", StockLevel: intPtr(40), Supplier: "Vintage Estates"},
		{ID: 14, Name: "Extra Virgin Olive Oil", PurchasePrice: 7.00, SellingPrice: 13.50, UnitsSoldWeek: 55, Category: "Pantry", StockLevel: intPtr(65), Supplier: "Mediterranean Gold"},
		{ID: 15, Name: "Dark Chocolate 70%", PurchasePrice: 1.50, SellingPrice: 3.49, UnitsSoldWeek: 120, Category: "Snacks", StockLevel: intPtr(100), Supplier: "Sweet Treats Inc."},
		{ID: 16, Name: "Unsweetened Almond Milk", PurchasePrice: 2.20, SellingPrice: 3.99, UnitsSoldWeek: 95, Category: "Dairy", StockLevel: intPtr(70), Supplier: "Nutty Beverages"},
		{ID: 17, Name: "Fresh Fettuccine", PurchasePrice: 3.00, SellingPrice: 5.99, UnitsSoldWeek: 50, Category: "Deli", StockLevel: intPtr(20), Supplier: "Pasta Masters"},
		{ID: 18, Name: "Cage-Free Organic Eggs", PurchasePrice: 3.50, SellingPrice: 5.99, UnitsSoldWeek: 130, Category: "Dairy", StockLevel: intPtr(90), Supplier: "Happy Hen Farms"},
		{ID: 19, Name: "Wildflower Local Honey", PurchasePrice: 6.00, SellingPrice: 11.25, UnitsSoldWeek: 40, Category: "Pantry", StockLevel: intPtr(50), Supplier: "Local B Hive"},
		{ID: 20, Name: "Plant-Based Burger Patties", PurchasePrice: 4.50, SellingPrice: 8.49, UnitsSoldWeek: 65, Category: "Frozen", StockLevel: intPtr(75), Supplier: "Green Cuisine"},
	}
}
