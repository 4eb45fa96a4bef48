// Package catalog holds the static reference tables a seed run draws from.
// Every accessor returns a fresh copy, so callers may not mutate shared state.
package catalog

import "github.com/mohamedhosni23/apple-store-bi-project/models"

// Reference bundles the tables passed explicitly into the seeder.
type Reference struct {
	Users     []UserSeed
	Products  []models.Product
	Locations []Location
	Streets   []string
}

// Default returns the Apple Store Sousse demo dataset.
func Default() Reference {
	return Reference{
		Users:     Users(),
		Products:  Products(),
		Locations: Locations(),
		Streets:   StreetNames(),
	}
}
