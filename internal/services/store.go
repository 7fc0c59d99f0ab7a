package services

import (
	"slices"
	"sync"

	"raffle/internal/models"

	"github.com/google/logger"
)

// Store holds the promo, participant and prize registries.
// Each registry issues its own ids from a counter that only grows,
// so an id is never handed out twice even after deletions.
type Store struct {
	mu sync.RWMutex

	promos       map[int]*models.Promo
	participants map[int]models.Participant
	prizes       map[int]models.Prize

	lastPromoID       int
	lastParticipantID int
	lastPrizeID       int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		promos:       make(map[int]*models.Promo),
		participants: make(map[int]models.Participant),
		prizes:       make(map[int]models.Prize),
	}
}

// CreatePromo stores a new promo with empty membership and returns its id.
func (s *Store) CreatePromo(name string, description *string) (int, error) {
	if name == "" {
		return 0, &InvalidInputError{Field: "name"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastPromoID++
	promo := &models.Promo{
		ID:             s.lastPromoID,
		Name:           name,
		ParticipantIDs: make([]int, 0),
		PrizeIDs:       make([]int, 0),
	}
	if description != nil {
		d := *description
		promo.Description = &d
	}
	s.promos[promo.ID] = promo
	return promo.ID, nil
}

// GetPromo returns a copy of the promo with the given id.
func (s *Store) GetPromo(id int) (models.Promo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	promo, ok := s.promos[id]
	if !ok {
		return models.Promo{}, &NotFoundError{Kind: KindPromo, ID: id}
	}
	return clonePromo(promo), nil
}

// ListPromos returns the summary of every promo, ordered by id.
func (s *Store) ListPromos() []models.PromoSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.promos))
	for id := range s.promos {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]models.PromoSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, clonePromo(s.promos[id]).Summary())
	}
	return out
}

// UpdatePromo replaces name and description when they are given and
// non-empty. Absent or empty fields keep their current value.
func (s *Store) UpdatePromo(id int, name, description *string) (models.Promo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	promo, ok := s.promos[id]
	if !ok {
		return models.Promo{}, &NotFoundError{Kind: KindPromo, ID: id}
	}
	if name != nil && *name != "" {
		promo.Name = *name
	}
	if description != nil && *description != "" {
		d := *description
		promo.Description = &d
	}
	return clonePromo(promo), nil
}

// DeletePromo removes the promo and its association lists. Participant and
// prize records stay in their registries.
func (s *Store) DeletePromo(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.promos[id]; !ok {
		return &NotFoundError{Kind: KindPromo, ID: id}
	}
	delete(s.promos, id)
	return nil
}

// GetParticipant looks a participant up in the global registry.
func (s *Store) GetParticipant(id int) (models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participants[id]
	if !ok {
		return models.Participant{}, &NotFoundError{Kind: KindParticipant, ID: id}
	}
	return p, nil
}

// GetPrize looks a prize up in the global registry.
func (s *Store) GetPrize(id int) (models.Prize, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prizes[id]
	if !ok {
		return models.Prize{}, &NotFoundError{Kind: KindPrize, ID: id}
	}
	return p, nil
}

// Stats reports registry sizes and how many records no promo references.
func (s *Store) Stats() models.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usedParticipants, usedPrizes := s.referencedLocked()
	return models.StoreStats{
		Promos:             len(s.promos),
		Participants:       len(s.participants),
		Prizes:             len(s.prizes),
		OrphanParticipants: len(s.participants) - len(usedParticipants),
		OrphanPrizes:       len(s.prizes) - len(usedPrizes),
	}
}

// PurgeOrphans deletes participant and prize records that no promo
// references and returns how many of each were removed.
func (s *Store) PurgeOrphans() (participants, prizes int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	usedParticipants, usedPrizes := s.referencedLocked()
	for id := range s.participants {
		if _, ok := usedParticipants[id]; !ok {
			delete(s.participants, id)
			participants++
		}
	}
	for id := range s.prizes {
		if _, ok := usedPrizes[id]; !ok {
			delete(s.prizes, id)
			prizes++
		}
	}
	if participants > 0 || prizes > 0 {
		logger.Infof("Purged %d orphaned participants and %d orphaned prizes", participants, prizes)
	}
	return participants, prizes
}

// referencedLocked collects every id held by some promo. Callers hold s.mu.
func (s *Store) referencedLocked() (map[int]struct{}, map[int]struct{}) {
	participants := make(map[int]struct{})
	prizes := make(map[int]struct{})
	for _, promo := range s.promos {
		for _, id := range promo.ParticipantIDs {
			participants[id] = struct{}{}
		}
		for _, id := range promo.PrizeIDs {
			prizes[id] = struct{}{}
		}
	}
	return participants, prizes
}

// lookupPromoLocked returns the live promo record. Callers hold s.mu.
func (s *Store) lookupPromoLocked(id int) (*models.Promo, error) {
	promo, ok := s.promos[id]
	if !ok {
		return nil, &NotFoundError{Kind: KindPromo, ID: id}
	}
	return promo, nil
}

func clonePromo(p *models.Promo) models.Promo {
	out := *p
	if p.Description != nil {
		d := *p.Description
		out.Description = &d
	}
	out.ParticipantIDs = slices.Clone(p.ParticipantIDs)
	out.PrizeIDs = slices.Clone(p.PrizeIDs)
	return out
}
