package catalog

import "tourguide/internal/types"

// fallbackAttractions is the fixed built-in dataset for the operating region,
// served whenever the live attraction data source is unreachable. The catalog
// never empty-returns to callers because of a source outage.
func fallbackAttractions() []types.Attraction {
	return []types.Attraction{
		{
			Name:         "Marina Bay Sands",
			Description:  "Iconic integrated resort with infinity pool, casino, shopping mall, and observation deck offering panoramic city views",
			Category:     "Architecture",
			Address:      "10 Bayfront Ave, Singapore 018956",
			Latitude:     1.2834,
			Longitude:    103.8607,
			ImageURL:     "/architecture.jpg",
			Rating:       4.5,
			Website:      "https://www.marinabaysands.com",
			OpeningHours: "24 hours",
			ContactInfo:  "+65 6688 8888",
		},
		{
			Name:         "Gardens by the Bay",
			Description:  "Futuristic botanical gardens featuring the iconic Supertree Grove and climate-controlled conservatories",
			Category:     "Nature & Wildlife",
			Address:      "18 Marina Gardens Dr, Singapore 018953",
			Latitude:     1.2816,
			Longitude:    103.8636,
			ImageURL:     "/nature&wildlife.jpg",
			Rating:       4.6,
			Website:      "https://www.gardensbythebay.com.sg",
			OpeningHours: "5:00 AM - 2:00 AM daily",
			ContactInfo:  "+65 6420 6848",
		},
		{
			Name:         "Singapore Zoo",
			Description:  "World-renowned open-concept zoo home to over 2,800 animals from around the world",
			Category:     "Nature & Wildlife",
			Address:      "80 Mandai Lake Rd, Singapore 729826",
			Latitude:     1.4043,
			Longitude:    103.7930,
			ImageURL:     "/nature&wildlife.jpg",
			Rating:       4.4,
			Website:      "https://www.wrs.com.sg/singapore-zoo",
			OpeningHours: "8:30 AM - 6:00 PM daily",
			ContactInfo:  "+65 6269 3411",
		},
		{
			Name:         "Universal Studios Singapore",
			Description:  "Southeast Asia's first and only Universal Studios theme park with thrilling rides and movie-themed attractions",
			Category:     "Family",
			Address:      "8 Sentosa Gateway, Singapore 098269",
			Latitude:     1.2540,
			Longitude:    103.8239,
			ImageURL:     "/universal.jpg",
			Rating:       4.3,
			Website:      "https://www.rwsentosa.com/en/attractions/universal-studios-singapore",
			OpeningHours: "10:00 AM - 7:00 PM (varies by season)",
			ContactInfo:  "+65 6577 8899",
		},
		{
			Name:         "Singapore Art Museum",
			Description:  "Premier contemporary art museum showcasing Southeast Asian and international contemporary art",
			Category:     "Art & Museums",
			Address:      "71 Bras Basah Rd, Singapore 189555",
			Latitude:     1.2966,
			Longitude:    103.8520,
			ImageURL:     "/art-musuem.jpg",
			Rating:       4.2,
			Website:      "https://www.singaporeartmuseum.sg",
			OpeningHours: "10:00 AM - 7:00 PM (Closed Mondays)",
			ContactInfo:  "+65 6332 3222",
		},
		{
			Name:         "Chinatown Heritage Centre",
			Description:  "Historic ethnic quarter featuring traditional shophouses, temples, and authentic Chinese cultural experiences",
			Category:     "Cultural",
			Address:      "48 Pagoda St, Singapore 059207",
			Latitude:     1.2831,
			Longitude:    103.8448,
			ImageURL:     "/cultural.jpg",
			Rating:       4.1,
			Website:      "https://www.chinatownheritagecentre.com.sg",
			OpeningHours: "9:00 AM - 8:00 PM daily",
			ContactInfo:  "+65 6325 2878",
		},
		{
			Name:         "Clarke Quay",
			Description:  "Vibrant riverside entertainment district with restaurants, bars, and exciting nightlife along the Singapore River",
			Category:     "Nightlife",
			Address:      "3 River Valley Rd, Singapore 179024",
			Latitude:     1.2884,
			Longitude:    103.8465,
			ImageURL:     "/nightlife.jpg",
			Rating:       4.0,
			OpeningHours: "6:00 PM - 2:00 AM (varies by establishment)",
			ContactInfo:  "+65 6337 3292",
		},
		{
			Name:         "Sentosa Beach",
			Description:  "Popular beach resort island with sandy beaches, water sports, and recreational activities",
			Category:     "Beach",
			Address:      "Sentosa Island, Singapore",
			Latitude:     1.2494,
			Longitude:    103.8303,
			ImageURL:     "/beach.jpg",
			Rating:       4.2,
			Website:      "https://www.sentosa.com.sg",
			OpeningHours: "24 hours (beach access)",
			ContactInfo:  "+65 1800 736 8672",
		},
		{
			Name:         "Buddha Tooth Relic Temple",
			Description:  "Magnificent Buddhist temple housing sacred relics and showcasing Buddhist art and culture",
			Category:     "Religious",
			Address:      "288 South Bridge Rd, Singapore 058840",
			Latitude:     1.2807,
			Longitude:    103.8454,
			ImageURL:     "/religion.jpg",
			Rating:       4.3,
			Website:      "https://www.btrts.org.sg",
			OpeningHours: "7:00 AM - 7:00 PM daily",
			ContactInfo:  "+65 6220 0220",
		},
		{
			Name:         "National Museum of Singapore",
			Description:  "Singapore's oldest museum featuring the country's history, culture, and heritage",
			Category:     "Historical",
			Address:      "93 Stamford Rd, Singapore 178897",
			Latitude:     1.2966,
			Longitude:    103.8484,
			ImageURL:     "/historical.jpg",
			Rating:       4.1,
			Website:      "https://www.nationalmuseum.sg",
			OpeningHours: "10:00 AM - 7:00 PM daily",
			ContactInfo:  "+65 6332 3659",
		},
	}
}
