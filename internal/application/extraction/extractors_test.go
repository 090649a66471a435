package extraction

import (
	"testing"

	"storyverse-api/internal/domain/entity"
)

func TestExtractLocationsFromSluglines(t *testing.T) {
	locations := extractLocations(screenplaySample, ServerProfile())
	found := map[string]entity.LocationType{}
	for _, loc := range locations {
		found[loc.Name] = loc.LocationType
	}
	if typ, ok := found["KITCHEN"]; !ok {
		t.Fatalf("KITCHEN missing, got %v", found)
	} else if typ != entity.LocationBuilding {
		t.Errorf("KITCHEN type = %q, want building", typ)
	}
	if typ, ok := found["GARDEN"]; !ok {
		t.Fatalf("GARDEN missing, got %v", found)
	} else if typ != entity.LocationNatural {
		t.Errorf("GARDEN type = %q, want natural", typ)
	}
}

func TestExtractLocationsDeduplicates(t *testing.T) {
	text := "INT. KITCHEN - DAY\nINT. KITCHEN - NIGHT\nEXT. KITCHEN - DAY"
	locations := extractLocations(text, ServerProfile())
	if len(locations) != 1 {
		t.Fatalf("got %d locations, want 1 deduplicated", len(locations))
	}
}

func TestExtractLocationsProse(t *testing.T) {
	text := "She waited for him in the Old Mill, then walked to the forest."
	locations := extractLocations(text, ServerProfile())
	found := map[string]bool{}
	for _, loc := range locations {
		found[loc.Name] = true
	}
	if !found["Old Mill"] {
		t.Errorf("prefix-phrase location missing: %v", found)
	}
	if !found["forest"] {
		t.Errorf("indicator-word location missing: %v", found)
	}
}

func TestExtractItems(t *testing.T) {
	text := "He draws the sword slowly. She carries a lantern and reads the book by its light. The sword gleams."
	items := extractItems(text, ServerProfile())
	found := map[string]entity.ItemType{}
	for _, it := range items {
		found[it.Name] = it.ItemType
	}
	if typ, ok := found["sword"]; !ok {
		t.Fatalf("sword missing, got %v", found)
	} else if typ != entity.ItemWeapon {
		t.Errorf("sword type = %q, want weapon", typ)
	}
	if _, ok := found["book"]; !ok {
		t.Errorf("book missing, got %v", found)
	}
	if len(items) != len(found) {
		t.Error("duplicate item entries")
	}
}

func TestExtractEventsSequence(t *testing.T) {
	text := "The army attacked at dawn. Later, the survivors fled across the river. Meanwhile, the king discovered the betrayal. EVENT: The coronation"
	events := extractEvents(text, ServerProfile())
	if len(events) < 3 {
		t.Fatalf("got %d events, want at least 3", len(events))
	}
	for i, ev := range events {
		if ev.SequenceNumber != i+1 {
			t.Errorf("event %d sequence = %d, want contiguous from 1", i, ev.SequenceNumber)
		}
		if ev.Confidence < 0 || ev.Confidence > 1 {
			t.Errorf("event %q confidence out of range: %f", ev.Title, ev.Confidence)
		}
	}
}

func TestExtractEventsClientProfileStep(t *testing.T) {
	text := "EVENT: The duel\nEVENT: The escape"
	events := extractEvents(text, ClientProfile())
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].SequenceNumber != 10 || events[1].SequenceNumber != 20 {
		t.Errorf("sequence numbers = %d, %d, want 10, 20",
			events[0].SequenceNumber, events[1].SequenceNumber)
	}
}

func TestExtractEventsMarker(t *testing.T) {
	events := extractEvents("EVENT: The fall of the tower", ServerProfile())
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Title != "The fall of the tower" {
		t.Errorf("title = %q", events[0].Title)
	}
}

func TestAssignEventParticipants(t *testing.T) {
	hero := entity.NewCharacter("Anna", entity.RoleProtagonist, 0.9)
	extra := entity.NewCharacter("Bert", entity.RoleBackground, 0.6)
	ev := entity.NewEvent("Anna escaped the tower", 1, 0.65)
	ev.Description = "Anna escaped the tower while Bert watched."

	assignEventParticipants([]*entity.Event{ev}, []*entity.Character{hero, extra}, nil)
	if len(ev.Participants) != 2 {
		t.Fatalf("got %d participants, want 2", len(ev.Participants))
	}
	byName := map[string]int{}
	for _, p := range ev.Participants {
		byName[p.CharacterName] = p.Importance
	}
	if byName["Anna"] != 8 {
		t.Errorf("protagonist importance = %d, want 8", byName["Anna"])
	}
	if byName["Bert"] != 3 {
		t.Errorf("background importance = %d, want 3", byName["Bert"])
	}
}

func TestExtractPlotlinesHeaders(t *testing.T) {
	text := "CHAPTER ONE\nsome text\nACT II\nmore text\nSUBPLOT: The stolen crown"
	plotlines := extractPlotlines(text, ServerProfile())
	if len(plotlines) != 3 {
		t.Fatalf("got %d plotlines, want 3", len(plotlines))
	}
	var subplot *entity.Plotline
	for _, pl := range plotlines {
		if pl.Title == "The stolen crown" {
			subplot = pl
		}
	}
	if subplot == nil {
		t.Fatal("SUBPLOT marker not extracted")
	}
	if subplot.PlotlineType != entity.PlotlineSubplot {
		t.Errorf("subplot type = %q", subplot.PlotlineType)
	}
}

func TestExtractPlotlinesFallback(t *testing.T) {
	plotlines := extractPlotlines("The Long Road Home\n\nIt was raining when they left.", ServerProfile())
	if len(plotlines) != 1 {
		t.Fatalf("got %d plotlines, want single fallback", len(plotlines))
	}
	if plotlines[0].Title != "Main Plot" {
		t.Errorf("fallback title = %q, want Main Plot", plotlines[0].Title)
	}
	if plotlines[0].PlotlineType != entity.PlotlineMain {
		t.Errorf("fallback type = %q, want main", plotlines[0].PlotlineType)
	}
}
