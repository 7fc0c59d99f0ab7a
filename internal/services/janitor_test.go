package services

import (
	"testing"
	"time"
)

func TestJanitor(t *testing.T) {
	t.Run("Rejects non-positive interval", func(t *testing.T) {
		if _, err := NewJanitor(NewStore(), 0); err == nil {
			t.Fatal("Expected an error for a zero interval, but got nil")
		}
	})

	t.Run("Sweep purges orphans", func(t *testing.T) {
		store := NewStore()
		promoID, _ := store.CreatePromo("Spring Sale", nil)
		id, _ := store.AddParticipant(promoID, "Alice")
		_ = store.RemoveParticipant(promoID, id)

		janitor, err := NewJanitor(store, time.Hour)
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		janitor.Start()
		defer janitor.Shutdown()

		janitor.Sweep()
		if stats := store.Stats(); stats.Participants != 0 {
			t.Errorf("Expected orphan to be purged, but registry holds %d", stats.Participants)
		}
	})

	t.Run("Start runs the sweep on schedule", func(t *testing.T) {
		store := NewStore()
		promoID, _ := store.CreatePromo("Spring Sale", nil)
		id, _ := store.AddPrize(promoID, "Mug")
		_ = store.RemovePrize(promoID, id)

		janitor, err := NewJanitor(store, 10*time.Millisecond)
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		janitor.Start()
		defer janitor.Shutdown()

		deadline := time.Now().Add(2 * time.Second)
		for store.Stats().Prizes != 0 {
			if time.Now().After(deadline) {
				t.Fatalf("Expected scheduled sweep to purge the orphaned prize, but registry holds %d", store.Stats().Prizes)
			}
			time.Sleep(5 * time.Millisecond)
		}
	})
}
