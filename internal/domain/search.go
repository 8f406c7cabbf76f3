package domain

import (
	"strconv"
	"time"
)

// SearchableProduct is the document shape stored in the full-text index.
// One document per (product, channel, locale), mirroring the flat projection.
type SearchableProduct struct {
	ProductID           int64     `json:"product_id"`
	Channel             string    `json:"channel"`
	Locale              string    `json:"locale"`
	Name                string    `json:"name"`
	ShortDescription    string    `json:"short_description"`
	URLKey              string    `json:"url_key,omitempty"`
	Status              bool      `json:"status"`
	VisibleIndividually bool      `json:"visible_individually"`
	MinPrice            float64   `json:"min_price"`
	CreatedAt           time.Time `json:"created_at"`
}

// DocumentID returns the unique index document id for the product within its
// storefront scope.
func (p *SearchableProduct) DocumentID() string {
	return p.Channel + ":" + p.Locale + ":" + strconv.FormatInt(p.ProductID, 10)
}

// ToFlat converts an index document back into the flat projection shape used
// by the shared Page result type.
func (p *SearchableProduct) ToFlat() FlatProduct {
	fp := FlatProduct{
		ProductID:           p.ProductID,
		Channel:             p.Channel,
		Locale:              p.Locale,
		Name:                p.Name,
		ShortDescription:    p.ShortDescription,
		Status:              p.Status,
		VisibleIndividually: p.VisibleIndividually,
		CreatedAt:           p.CreatedAt,
	}
	if p.URLKey != "" {
		key := p.URLKey
		fp.URLKey = &key
	}
	if p.MinPrice > 0 {
		min := p.MinPrice
		fp.MinPrice = &min
	}
	return fp
}
