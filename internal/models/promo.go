package models

// Participant represents a person registered into a promo.
type Participant struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Prize represents a single prize registered into a promo.
type Prize struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Promo is a campaign record. It owns the ordered association lists,
// not the participant and prize records themselves.
type Promo struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	ParticipantIDs []int   `json:"participantIds"`
	PrizeIDs       []int   `json:"prizeIds"`
}

// Summary projects the promo without its membership.
func (p Promo) Summary() PromoSummary {
	return PromoSummary{ID: p.ID, Name: p.Name, Description: p.Description}
}

// PromoSummary is the short view returned by list and update.
type PromoSummary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// FullPromo is a promo with every associated id resolved to its record,
// in association order.
type FullPromo struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Description  *string       `json:"description"`
	Prizes       []Prize       `json:"prizes"`
	Participants []Participant `json:"participants"`
}

// RaffleResult links a winner to the prize drawn for them.
type RaffleResult struct {
	Winner Participant `json:"winner"`
	Prize  Prize       `json:"prize"`
}

// StoreStats reports registry sizes, including records no promo references.
type StoreStats struct {
	Promos             int `json:"promos"`
	Participants       int `json:"participants"`
	Prizes             int `json:"prizes"`
	OrphanParticipants int `json:"orphanParticipants"`
	OrphanPrizes       int `json:"orphanPrizes"`
}
