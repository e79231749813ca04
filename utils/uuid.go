package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a random UUID string. Offers, trades, shipments,
// payments and disputes all draw their primary keys from here; trade
// references derive their short suffix from it as well.
func GenerateID() string {
	return uuid.New().String()
}
