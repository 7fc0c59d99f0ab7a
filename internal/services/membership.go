package services

import (
	"slices"
	"strings"

	"raffle/internal/models"
)

// AddParticipant registers a new participant and appends it to the promo.
func (s *Store) AddParticipant(promoID int, name string) (int, error) {
	if name == "" {
		return 0, &InvalidInputError{Field: "name"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	promo, err := s.lookupPromoLocked(promoID)
	if err != nil {
		return 0, err
	}
	return s.appendParticipantLocked(promo, name), nil
}

// RemoveParticipant drops the participant from the promo's roster.
// The participant record itself is kept.
func (s *Store) RemoveParticipant(promoID, participantID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	promo, err := s.lookupPromoLocked(promoID)
	if err != nil {
		return err
	}
	idx := slices.Index(promo.ParticipantIDs, participantID)
	if idx < 0 {
		return &NotFoundError{Kind: KindParticipant, ID: participantID, PromoID: promoID}
	}
	promo.ParticipantIDs = slices.Delete(promo.ParticipantIDs, idx, idx+1)
	return nil
}

// AddPrize registers a new prize and appends it to the promo.
func (s *Store) AddPrize(promoID int, description string) (int, error) {
	if description == "" {
		return 0, &InvalidInputError{Field: "description"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	promo, err := s.lookupPromoLocked(promoID)
	if err != nil {
		return 0, err
	}
	return s.appendPrizeLocked(promo, description), nil
}

// RemovePrize drops the prize from the promo's pool.
// The prize record itself is kept.
func (s *Store) RemovePrize(promoID, prizeID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	promo, err := s.lookupPromoLocked(promoID)
	if err != nil {
		return err
	}
	idx := slices.Index(promo.PrizeIDs, prizeID)
	if idx < 0 {
		return &NotFoundError{Kind: KindPrize, ID: prizeID, PromoID: promoID}
	}
	promo.PrizeIDs = slices.Delete(promo.PrizeIDs, idx, idx+1)
	return nil
}

// ImportParticipants appends one participant per non-blank name, in order.
// Nothing is written when the promo does not exist.
func (s *Store) ImportParticipants(promoID int, names []string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	promo, err := s.lookupPromoLocked(promoID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ids = append(ids, s.appendParticipantLocked(promo, name))
	}
	return ids, nil
}

// ImportPrizes appends one prize per non-blank description, in order.
// Nothing is written when the promo does not exist.
func (s *Store) ImportPrizes(promoID int, descriptions []string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	promo, err := s.lookupPromoLocked(promoID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(descriptions))
	for _, description := range descriptions {
		description = strings.TrimSpace(description)
		if description == "" {
			continue
		}
		ids = append(ids, s.appendPrizeLocked(promo, description))
	}
	return ids, nil
}

// GetFullPromo returns the promo with its participants and prizes resolved.
func (s *Store) GetFullPromo(promoID int) (models.FullPromo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	promo, err := s.lookupPromoLocked(promoID)
	if err != nil {
		return models.FullPromo{}, err
	}
	summary := clonePromo(promo).Summary()
	return models.FullPromo{
		ID:           summary.ID,
		Name:         summary.Name,
		Description:  summary.Description,
		Prizes:       s.resolvePrizesLocked(promo.PrizeIDs),
		Participants: s.resolveParticipantsLocked(promo.ParticipantIDs),
	}, nil
}

// rosterSnapshot copies the promo's current membership as full records.
func (s *Store) rosterSnapshot(promoID int) ([]models.Participant, []models.Prize, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	promo, err := s.lookupPromoLocked(promoID)
	if err != nil {
		return nil, nil, err
	}
	return s.resolveParticipantsLocked(promo.ParticipantIDs), s.resolvePrizesLocked(promo.PrizeIDs), nil
}

func (s *Store) appendParticipantLocked(promo *models.Promo, name string) int {
	s.lastParticipantID++
	p := models.Participant{ID: s.lastParticipantID, Name: name}
	s.participants[p.ID] = p
	promo.ParticipantIDs = append(promo.ParticipantIDs, p.ID)
	return p.ID
}

func (s *Store) appendPrizeLocked(promo *models.Promo, description string) int {
	s.lastPrizeID++
	p := models.Prize{ID: s.lastPrizeID, Description: description}
	s.prizes[p.ID] = p
	promo.PrizeIDs = append(promo.PrizeIDs, p.ID)
	return p.ID
}

func (s *Store) resolveParticipantsLocked(ids []int) []models.Participant {
	out := make([]models.Participant, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.participants[id])
	}
	return out
}

func (s *Store) resolvePrizesLocked(ids []int) []models.Prize {
	out := make([]models.Prize, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.prizes[id])
	}
	return out
}
