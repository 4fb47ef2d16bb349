package catalog

import "github.com/shopspring/decimal"

// Fallback is the static catalog used when the feed cannot be fetched. It is
// deterministic and always passes Validate.
func Fallback() []Product {
	return []Product{
		{ID: 1, Title: "Fresh Mango (1 kg)", Price: decimal.NewFromInt(180), Category: "fruits", Image: "https://i.ibb.co.com/fallback/mango.jpg", Rating: &Rating{Rate: 4.6, Count: 120}},
		{ID: 2, Title: "Green Apple (1 kg)", Price: decimal.NewFromInt(260), Category: "fruits", Image: "https://i.ibb.co.com/fallback/apple.jpg", Rating: &Rating{Rate: 4.3, Count: 86}},
		{ID: 3, Title: "Banana (12 pcs)", Price: decimal.NewFromInt(120), Category: "fruits", Image: "https://i.ibb.co.com/fallback/banana.jpg", Rating: &Rating{Rate: 4.1, Count: 64}},
		{ID: 4, Title: "Mustard Oil (1 L)", Price: decimal.NewFromInt(320), Category: "grocery", Image: "https://i.ibb.co.com/fallback/oil.jpg", Rating: &Rating{Rate: 4.5, Count: 210}},
		{ID: 5, Title: "Dish Wash Liquid (500 ml)", Price: decimal.RequireFromString("99.50"), Category: "cleaning", Image: "https://i.ibb.co.com/fallback/dishwash.jpg", Rating: &Rating{Rate: 4.0, Count: 41}},
		{ID: 6, Title: "Potato Chips (Family Pack)", Price: decimal.NewFromInt(55), Category: "snacks", Image: "https://i.ibb.co.com/fallback/chips.jpg"},
	}
}
