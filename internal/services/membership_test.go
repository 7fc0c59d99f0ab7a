package services

import (
	"errors"
	"testing"
)

func TestStore_Membership(t *testing.T) {
	store := NewStore()
	promoID, _ := store.CreatePromo("Spring Sale", nil)
	otherID, _ := store.CreatePromo("Other", nil)

	names := []string{"Alice", "Bob", "Charlie"}
	var participantIDs []int
	for _, name := range names {
		id, err := store.AddParticipant(promoID, name)
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		participantIDs = append(participantIDs, id)
	}
	mugID, _ := store.AddPrize(promoID, "Mug")
	capID, _ := store.AddPrize(promoID, "Cap")
	strangerID, _ := store.AddParticipant(otherID, "Stranger")

	t.Run("Full promo keeps insertion order", func(t *testing.T) {
		full, err := store.GetFullPromo(promoID)
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if len(full.Participants) != len(names) {
			t.Fatalf("Expected %d participants, but got %d", len(names), len(full.Participants))
		}
		for i, p := range full.Participants {
			if p.ID != participantIDs[i] || p.Name != names[i] {
				t.Errorf("Expected participant %d to be %d/%s, but got %+v", i, participantIDs[i], names[i], p)
			}
		}
		if len(full.Prizes) != 2 || full.Prizes[0].ID != mugID || full.Prizes[1].Description != "Cap" {
			t.Errorf("Expected prizes [Mug Cap], but got %+v", full.Prizes)
		}
	})

	t.Run("Participant ids are global across promos", func(t *testing.T) {
		if strangerID != participantIDs[len(participantIDs)-1]+1 {
			t.Errorf("Expected next global id %d, but got %d", participantIDs[len(participantIDs)-1]+1, strangerID)
		}
	})

	t.Run("Remove fails distinctly for missing promo and missing association", func(t *testing.T) {
		var nf *NotFoundError

		err := store.RemoveParticipant(99, participantIDs[0])
		if !errors.As(err, &nf) || nf.Kind != KindPromo || nf.InPromo() {
			t.Errorf("Expected promo not found, but got %v", err)
		}

		// The stranger exists globally but is not part of this promo.
		err = store.RemoveParticipant(promoID, strangerID)
		if !errors.As(err, &nf) || nf.Kind != KindParticipant || !nf.InPromo() {
			t.Errorf("Expected participant not found in promo, but got %v", err)
		}
		if err.Error() != "Participant 4 in promo 1 not found" {
			t.Errorf("Unexpected message %q", err.Error())
		}

		err = store.RemovePrize(promoID, 77)
		if !errors.As(err, &nf) || nf.Kind != KindPrize || nf.PromoID != promoID {
			t.Errorf("Expected prize not found in promo, but got %v", err)
		}
	})

	t.Run("Remove drops only the association", func(t *testing.T) {
		if err := store.RemoveParticipant(promoID, participantIDs[1]); err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if err := store.RemovePrize(promoID, capID); err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}

		full, _ := store.GetFullPromo(promoID)
		if len(full.Participants) != 2 || full.Participants[0].Name != "Alice" || full.Participants[1].Name != "Charlie" {
			t.Errorf("Expected [Alice Charlie], but got %+v", full.Participants)
		}
		if len(full.Prizes) != 1 || full.Prizes[0].ID != mugID {
			t.Errorf("Expected [Mug], but got %+v", full.Prizes)
		}

		if p, err := store.GetParticipant(participantIDs[1]); err != nil || p.Name != "Bob" {
			t.Errorf("Expected Bob's record to persist, but got %+v, %v", p, err)
		}
		if p, err := store.GetPrize(capID); err != nil || p.Description != "Cap" {
			t.Errorf("Expected Cap's record to persist, but got %+v, %v", p, err)
		}

		if err := store.RemoveParticipant(promoID, participantIDs[1]); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected second removal to fail, but got %v", err)
		}
	})

	t.Run("Add rejects missing promo and empty fields", func(t *testing.T) {
		if _, err := store.AddParticipant(99, "Ghost"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, but got %v", err)
		}
		if _, err := store.AddPrize(99, "Ghost prize"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, but got %v", err)
		}
		if _, err := store.AddParticipant(promoID, ""); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput, but got %v", err)
		}
		if _, err := store.AddPrize(promoID, ""); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput, but got %v", err)
		}
	})

	t.Run("Deleting the promo keeps records", func(t *testing.T) {
		if err := store.DeletePromo(promoID); err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if _, err := store.GetFullPromo(promoID); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, but got %v", err)
		}
		if _, err := store.GetParticipant(participantIDs[0]); err != nil {
			t.Errorf("Expected participant record to outlive its promo, but got %v", err)
		}
	})
}

func TestStore_Import(t *testing.T) {
	store := NewStore()
	promoID, _ := store.CreatePromo("Bulk", nil)

	ids, err := store.ImportParticipants(promoID, []string{"Alice", "  ", "", " Bob "})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("Expected ids [1 2], but got %v", ids)
	}

	ids, err = store.ImportPrizes(promoID, []string{"Mug", "Cap", "Pen"})
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("Expected 3 prize ids, but got %v", ids)
	}

	full, _ := store.GetFullPromo(promoID)
	if full.Participants[1].Name != "Bob" {
		t.Errorf("Expected trimmed name Bob, but got %q", full.Participants[1].Name)
	}
	if full.Prizes[2].Description != "Pen" {
		t.Errorf("Expected last prize Pen, but got %q", full.Prizes[2].Description)
	}

	if _, err := store.ImportParticipants(99, []string{"Ghost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, but got %v", err)
	}
	if stats := store.Stats(); stats.Participants != 2 {
		t.Errorf("Expected failed import to write nothing, but registry holds %d", stats.Participants)
	}
}
