package state

import "e-shopping/internal/domain"

// SeedCatalog returns the storefront catalog used when nothing else is given
func SeedCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Iphone 13 Pro Max",
			Description: "IOS 16 avec écran 6.5 pouces et 128GB stockage.",
			Price:       850000,
			ImageURL:    "https://specs.yugatech.com/wp-content/uploads/2022/08/main1.jpg",
			Rating:      4.5,
			ReviewCount: 120,
			InStock:     15,
			Category:    "Electronics",
		},
		{
			ID:          "2",
			Name:        "Chaussures Nike Air",
			Description: "Chaussures de sport confortables et légères.",
			Price:       250000,
			ImageURL:    "https://tse2.mm.bing.net/th/id/OIP.A6zNkRVpB4u3Hr7MUUKQlAHaFi?rs=1&pid=ImgDetMain&o=7&rm=3",
			Rating:      4.8,
			ReviewCount: 89,
			InStock:     30,
			Category:    "Fashion",
		},
		{
			ID:          "3",
			Name:        "Sac à main Femme",
			Description: "Sac élégant en cuir pour usage quotidien.",
			Price:       120000,
			ImageURL:    "https://images.unsplash.com/photo-1584917865442-de89df76afd3?auto=format&fit=crop&w=1200&q=80",
			Rating:      4.2,
			ReviewCount: 45,
			InStock:     20,
			Category:    "Accessoires",
		},
		{
			ID:          "4",
			Name:        "TV LED 43 pouces",
			Description: "Télévision Full HD avec connexion HDMI et USB.",
			Price:       1200000,
			ImageURL:    "https://images.unsplash.com/photo-1593784991095-a205069470b6?auto=format&fit=crop&w=1200&q=80",
			Rating:      4.6,
			ReviewCount: 60,
			InStock:     10,
			Category:    "Electronics",
		},
		{
			ID:          "5",
			Name:        "Casque Bluetooth",
			Description: "Casque sans fil avec réduction de bruit.",
			Price:       150000,
			ImageURL:    "https://images.unsplash.com/photo-1518444028785-8c6f4c8f6c7d?auto=format&fit=crop&w=1200&q=80",
			Rating:      4.3,
			ReviewCount: 75,
			InStock:     25,
			Category:    "Electronics",
		},
	}
}
