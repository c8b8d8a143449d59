package seed

import "teslo/internal/models"

func price(v float64) *float64 { return &v }
func stock(v int) *int         { return &v }
func text(v string) *string    { return &v }

// Catalog returns the seed products. Each call builds fresh values.
func Catalog() []models.CreateProductInput {
	return []models.CreateProductInput{
		{
			Title:       "Men's Chill Crew Neck Sweatshirt",
			Description: text("Introducing the Tesla Chill Collection. The Men's Chill Crew Neck Sweatshirt has a premium, heavyweight exterior and soft fleece interior for comfort in any season."),
			Price:       price(75),
			Stock:       stock(7),
			Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
			Gender:      "men",
			Tags:        []string{"sweatshirt"},
			Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
		},
		{
			Title:       "Men's Quilted Shirt Jacket",
			Description: text("The Men's Quilted Shirt Jacket features a uniquely fit, quilted design for warmth and mobility in cold weather seasons."),
			Price:       price(200),
			Stock:       stock(5),
			Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
			Gender:      "men",
			Tags:        []string{"jacket"},
			Images:      []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
		},
		{
			Title:       "Men's Raven Lightweight Zip Up Bomber Jacket",
			Description: text("Introducing the Tesla Raven Collection. The Men's Raven Lightweight Zip Up Bomber has a premium, modern silhouette made from a sustainable bamboo cotton blend."),
			Price:       price(130),
			Stock:       stock(10),
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
			Gender:      "men",
			Tags:        []string{"shirt"},
			Images:      []string{"1740250-00-A_0_2000.jpg", "1740250-00-A_1.jpg"},
		},
		{
			Title:       "Women's Cybertruck Graffiti Hoodie",
			Description: text("As with all Cybertruck merch, the Women's Cybertruck Graffiti Hoodie is a relaxed fit pullover with Cybertruck graffiti graphics on the front and back."),
			Price:       price(60),
			Stock:       stock(0),
			Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
			Gender:      "women",
			Tags:        []string{"hoodie"},
			Images:      []string{"7654393-00-A_1.jpg", "7654393-00-A_2.jpg"},
		},
		{
			Title:       "Kids Cybertruck Long Sleeve Tee",
			Description: text("Designed for fit, comfort and style, the Kids Cybertruck Graffiti Long Sleeve Tee features a water-based Cybertruck graffiti wordmark across the chest."),
			Price:       price(30),
			Stock:       stock(10),
			Sizes:       []string{"XS", "S", "M"},
			Gender:      "kid",
			Tags:        []string{"shirt"},
			Images:      []string{"1742694-00-A_1_2000.jpg", "1742694-00-A_3.jpg"},
		},
		{
			Title:  "Unisex Cyberquad Hat",
			Price:  price(35),
			Stock:  stock(15),
			Sizes:  []string{"M"},
			Gender: "unisex",
			Tags:   []string{"hats"},
			Images: []string{"1657916-00-A_0_2000.jpg"},
		},
	}
}
