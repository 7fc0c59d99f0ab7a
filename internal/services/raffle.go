package services

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"

	"raffle/internal/models"
)

// RaffleEngine pairs a promo's participants with its prizes at random.
// It keeps no history; every call draws a fresh pairing.
type RaffleEngine struct {
	store *Store

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRaffleEngine creates an engine over the store. A zero seed picks a
// random one from crypto/rand.
func NewRaffleEngine(store *Store, seed int64) (*RaffleEngine, error) {
	if seed == 0 {
		var err error
		seed, err = NewSeed()
		if err != nil {
			return nil, err
		}
	}
	return &RaffleEngine{
		store: store,
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Raffle draws one winner per prize. Participants and prizes are shuffled
// independently and paired by position. The promo's stored order is left
// untouched.
func (e *RaffleEngine) Raffle(promoID int) ([]models.RaffleResult, error) {
	winners, prizes, err := e.store.rosterSnapshot(promoID)
	if err != nil {
		return nil, err
	}

	switch {
	case len(winners) == 0:
		return nil, &UnavailableError{PromoID: promoID, Reason: ReasonNoParticipants}
	case len(prizes) == 0:
		return nil, &UnavailableError{PromoID: promoID, Reason: ReasonNoPrizes}
	case len(winners) != len(prizes):
		return nil, &UnavailableError{PromoID: promoID, Reason: ReasonCountMismatch}
	}

	e.mu.Lock()
	e.rng.Shuffle(len(winners), func(i, j int) { winners[i], winners[j] = winners[j], winners[i] })
	e.rng.Shuffle(len(prizes), func(i, j int) { prizes[i], prizes[j] = prizes[j], prizes[i] })
	e.mu.Unlock()

	results := make([]models.RaffleResult, len(winners))
	for i := range winners {
		results[i] = models.RaffleResult{Winner: winners[i], Prize: prizes[i]}
	}
	return results, nil
}
