package service

import (
	"time"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/google/uuid"
)

type seedProduct struct {
	name, category, description, image string
	cents                              int64
	stock                              int
}

var starterLineup = []seedProduct{
	{
		name:        "Nike Air Max 270",
		category:    "Lifestyle",
		description: "The Nike Air Max 270 delivers unrivaled comfort with its iconic Air unit. Features a breathable mesh upper and lightweight foam midsole for all-day wear.",
		image:       "/shoes/shoe-1.jpg",
		cents:       15000,
		stock:       35,
	},
	{
		name:        "Nike Zoom Fly 5",
		category:    "Running",
		description: "The Nike Zoom Fly 5 combines responsive ZoomX foam with a carbon fiber plate for explosive speed. Perfect for tempo runs and race day performance.",
		image:       "/shoes/shoe-2.webp",
		cents:       16000,
		stock:       28,
	},
	{
		name:        "Nike Air Jordan 1 Low",
		category:    "Lifestyle",
		description: "The iconic Air Jordan 1 Low features premium leather construction and classic basketball styling. A timeless design that works for any occasion.",
		image:       "/shoes/shoe-3.webp",
		cents:       11000,
		stock:       22,
	},
	{
		name:        "Nike React Infinity Run 3",
		category:    "Running",
		description: "The Nike React Infinity Run 3 offers superior cushioning and stability for long-distance runs. Features React foam technology and a supportive heel clip.",
		image:       "/shoes/shoe-4.webp",
		cents:       16000,
		stock:       18,
	},
	{
		name:        "Nike Dunk High",
		category:    "Lifestyle",
		description: "The Nike Dunk High elevates the classic basketball silhouette with premium materials and retro styling. Perfect for streetwear and casual looks.",
		image:       "/shoes/shoe-5.avif",
		cents:       11500,
		stock:       25,
	},
	{
		name:        "Nike Vaporfly",
		category:    "Running",
		description: "The Nike Vaporfly is engineered for record-breaking performance with ZoomX foam and a carbon fiber plate. The ultimate racing shoe.",
		image:       "/shoes/shoe-6.avif",
		cents:       25000,
		stock:       15,
	},
	{
		name:        "Nike Air Force 1 '07",
		category:    "Lifestyle",
		description: "The Nike Air Force 1 '07 maintains the classic basketball aesthetic with premium leather and Air-Sole unit for lightweight cushioning.",
		image:       "/shoes/shoe-7.avif",
		cents:       10000,
		stock:       30,
	},
	{
		name:        "Nike ZoomX Invincible Run",
		category:    "Running",
		description: "The Nike ZoomX Invincible Run delivers maximum cushioning with ZoomX foam and a supportive heel clip. Ideal for recovery runs and easy miles.",
		image:       "/shoes/shoe-8.avif",
		cents:       18000,
		stock:       20,
	},
	{
		name:        "Nike SB Dunk Low Pro",
		category:    "Skateboarding",
		description: "The Nike SB Dunk Low Pro features a padded tongue and Zoom Air unit for skateboarding performance. Durable construction meets classic style.",
		image:       "/shoes/shoe-9.avif",
		cents:       9500,
		stock:       18,
	},
	{
		name:        "Nike Air Zoom Tempo",
		category:    "Running",
		description: "The Nike Air Zoom Tempo combines ZoomX foam with Zoom Air units for responsive training. Perfect for tempo runs and workouts.",
		image:       "/shoes/shoe-10.avif",
		cents:       20000,
		stock:       16,
	},
	{
		name:        "Nike Blazer Mid '77",
		category:    "Lifestyle",
		description: "The Nike Blazer Mid '77 features a classic basketball-inspired design with premium leather construction. Timeless style meets modern comfort.",
		image:       "/shoes/shoe-11.avif",
		cents:       8500,
		stock:       24,
	},
	{
		name:        "Nike Zoom Fly 4",
		category:    "Running",
		description: "The Nike Zoom Fly 4 offers responsive cushioning with React foam and a carbon fiber plate. Ideal for tempo runs and race preparation.",
		image:       "/shoes/shoe-12.avif",
		cents:       14000,
		stock:       19,
	},
	{
		name:        "Nike Air Max 90",
		category:    "Lifestyle",
		description: "The Nike Air Max 90 features the iconic Air unit and classic design elements. Premium materials and timeless style for everyday wear.",
		image:       "/shoes/shoe-13.avif",
		cents:       13000,
		stock:       26,
	},
	{
		name:        "Nike React Miler 2",
		category:    "Running",
		description: "The Nike React Miler 2 provides stable cushioning with React foam technology. Perfect for daily training and long-distance runs.",
		image:       "/shoes/shoe-14.avif",
		cents:       12000,
		stock:       21,
	},
	{
		name:        "Nike Air Jordan 1 Mid",
		category:    "Lifestyle",
		description: "The Nike Air Jordan 1 Mid elevates the classic basketball silhouette with premium materials and iconic styling. A must-have for sneaker enthusiasts.",
		image:       "/shoes/shoe-15.avif",
		cents:       12500,
		stock:       17,
	},
}

// seedProducts expands starterLineup into products stamped one millisecond
// apart from start so featured ordering follows the lineup.
func seedProducts(start time.Time) []domain.Product {
	out := make([]domain.Product, len(starterLineup))
	for i, sp := range starterLineup {
		at := start.Add(time.Duration(i) * time.Millisecond)
		out[i] = domain.Product{
			ID:          uuid.NewString(),
			Name:        sp.name,
			Brand:       "Nike",
			Category:    sp.category,
			PriceCents:  sp.cents,
			Description: sp.description,
			ImageURL:    sp.image,
			InStock:     sp.stock,
			CreatedAt:   at,
			UpdatedAt:   at,
		}
	}
	return out
}
