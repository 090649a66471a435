package extraction

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"storyverse-api/internal/domain/entity"
	apperrors "storyverse-api/pkg/errors"
)

type fakeLookup struct {
	existing map[string]bool
	err      error
}

func (f *fakeLookup) ExistsByName(_ context.Context, _ string, name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.existing[name], nil
}

func TestExtractRejectsEmptyText(t *testing.T) {
	p := NewPipeline(ServerProfile(), nil, nil)
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := p.Extract(context.Background(), Input{StoryText: text}, DefaultOptions())
		if err == nil {
			t.Fatalf("Extract(%q) expected error", text)
		}
		appErr := apperrors.AsAppError(err)
		if appErr == nil || appErr.Code != apperrors.CodeEmptyStoryText {
			t.Fatalf("Extract(%q) error = %v, want empty-story-text", text, err)
		}
	}
}

func TestExtractEndToEndAntagonistCue(t *testing.T) {
	text := "RUFUS walked into the forest. STUPUS followed him, smirking. 'I will take Alyssa from you,' said STUPUS."
	p := NewPipeline(ServerProfile(), nil, nil)
	result, err := p.Extract(context.Background(), Input{StoryText: text}, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	rufus := result.FindCharacter("Rufus")
	stupus := result.FindCharacter("Stupus")
	if rufus == nil || stupus == nil {
		t.Fatalf("expected Rufus and Stupus candidates, got %v", names(result.Characters))
	}
	if rufus.Confidence < 0.6 {
		t.Errorf("Rufus confidence = %f, want >= 0.6", rufus.Confidence)
	}
	if stupus.Confidence < 0.6 {
		t.Errorf("Stupus confidence = %f, want >= 0.6", stupus.Confidence)
	}
	if stupus.Role != entity.RoleAntagonist {
		t.Errorf("Stupus role = %q, want antagonist", stupus.Role)
	}
}

func TestExtractScreenplayLocations(t *testing.T) {
	p := NewPipeline(ServerProfile(), nil, nil)
	result, err := p.Extract(context.Background(), Input{StoryText: screenplaySample}, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if result.Format != string(FormatScreenplay) && result.Format != string(FormatFountain) {
		t.Fatalf("format = %q, want screenplay or fountain", result.Format)
	}

	var kitchen *entity.Location
	for _, loc := range result.Locations {
		if loc.Name == "KITCHEN" {
			kitchen = loc
		}
	}
	if kitchen == nil {
		t.Fatalf("KITCHEN not extracted, got %d locations", len(result.Locations))
	}
	if kitchen.LocationType != entity.LocationBuilding {
		t.Errorf("KITCHEN type = %q, want building", kitchen.LocationType)
	}
}

func TestExtractNovelLineMarkers(t *testing.T) {
	text := `Chapter 1

EVENT: The coronation

Anna walked slowly through the empty hall, thinking about the crown and what it would cost her family.

Chapter 2

Anna rested by the window while the bells rang on.
`
	p := NewPipeline(ServerProfile(), nil, nil)
	result, err := p.Extract(context.Background(), Input{StoryText: text}, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if result.Format != string(FormatNovel) {
		t.Fatalf("format = %q, want novel", result.Format)
	}

	var coronation *entity.Event
	for _, ev := range result.Events {
		if ev.Title == "The coronation" {
			coronation = ev
		}
	}
	if coronation == nil {
		t.Fatalf("EVENT: marker not extracted, got %d events", len(result.Events))
	}

	plotlineTitles := map[string]bool{}
	for _, pl := range result.Plotlines {
		plotlineTitles[pl.Title] = true
		if len(pl.Title) > 80 {
			t.Errorf("plotline title swallowed surrounding text: %q", pl.Title)
		}
	}
	if !plotlineTitles["Chapter 1"] || !plotlineTitles["Chapter 2"] {
		t.Errorf("chapter headers not extracted as plotlines, got %v", plotlineTitles)
	}
}

func TestExtractIdempotent(t *testing.T) {
	p := NewPipeline(ServerProfile(), nil, nil)
	first, err := p.Extract(context.Background(), Input{StoryText: novelSample}, DefaultOptions())
	if err != nil {
		t.Fatalf("first Extract() error = %v", err)
	}
	second, err := p.Extract(context.Background(), Input{StoryText: novelSample}, DefaultOptions())
	if err != nil {
		t.Fatalf("second Extract() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different structured output")
	}
}

func TestExtractOptionsDisableStages(t *testing.T) {
	opts := DefaultOptions()
	opts.ExtractRelationships = false
	opts.ExtractScenes = false
	opts.ExtractArcs = false

	p := NewPipeline(ServerProfile(), nil, nil)
	result, err := p.Extract(context.Background(), Input{StoryText: novelSample}, opts)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(result.CharacterRelationships) != 0 {
		t.Error("relationships produced despite disabled toggle")
	}
	if len(result.Scenes) != 0 {
		t.Error("scenes produced despite disabled toggle")
	}
	if len(result.CharacterArcs) != 0 {
		t.Error("arcs produced despite disabled toggle")
	}
}

func TestMarkDuplicates(t *testing.T) {
	p := NewPipeline(ServerProfile(), nil, &fakeLookup{existing: map[string]bool{"Elizabeth": true}})
	result, err := p.Extract(context.Background(), Input{StoryText: novelSample, StoryWorldID: "w1"}, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	elizabeth := result.FindCharacter("Elizabeth")
	if elizabeth == nil {
		t.Fatalf("Elizabeth not detected, got %v", names(result.Characters))
	}
	if elizabeth.IsNew {
		t.Error("existing character flagged as new")
	}
	for _, c := range result.Characters {
		if c.Name != "Elizabeth" && !c.IsNew {
			t.Errorf("character %q flagged as existing", c.Name)
		}
	}
}

func TestMarkDuplicatesFailOpen(t *testing.T) {
	p := NewPipeline(ServerProfile(), nil, &fakeLookup{err: errors.New("db down")})
	result, err := p.Extract(context.Background(), Input{StoryText: novelSample}, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract() must not fail on duplicate-check errors, got %v", err)
	}
	for _, c := range result.Characters {
		if c.IsNew {
			t.Errorf("character %q flagged new despite failed duplicate check", c.Name)
		}
	}
}
