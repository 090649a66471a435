package extraction

import (
	"strings"
	"testing"

	"storyverse-api/internal/domain/entity"
)

func TestInferRelationshipsPairBounds(t *testing.T) {
	text := "Ada and Ben argued. Ben and Cal fought as enemies. Ada trusted Cal like a friend."
	chars := []*entity.Character{
		entity.NewCharacter("Ada", entity.RoleSupporting, 0.8),
		entity.NewCharacter("Ben", entity.RoleSupporting, 0.8),
		entity.NewCharacter("Cal", entity.RoleSupporting, 0.8),
	}
	rels := inferRelationships(text, chars)

	max := len(chars) * (len(chars) - 1) / 2
	if len(rels) > max {
		t.Fatalf("got %d relationships, max is %d", len(rels), max)
	}
	seen := map[string]bool{}
	for _, rel := range rels {
		if rel.Character1 == rel.Character2 {
			t.Errorf("self-paired relationship for %q", rel.Character1)
		}
		key := rel.Character1 + "|" + rel.Character2
		reverse := rel.Character2 + "|" + rel.Character1
		if seen[key] || seen[reverse] {
			t.Errorf("duplicate pair %s / %s", rel.Character1, rel.Character2)
		}
		seen[key] = true
		if rel.Intensity < 1 || rel.Intensity > 10 {
			t.Errorf("intensity %d out of [1,10]", rel.Intensity)
		}
	}
}

func TestInferRelationshipsSkipsLowConfidence(t *testing.T) {
	text := "Ada and Ben walked together every day as friends."
	chars := []*entity.Character{
		entity.NewCharacter("Ada", entity.RoleSupporting, 0.8),
		entity.NewCharacter("Ben", entity.RoleSupporting, 0.6),
	}
	if rels := inferRelationships(text, chars); len(rels) != 0 {
		t.Fatalf("low-confidence character paired: %d relationships", len(rels))
	}
}

func TestInferRelationshipsSkipsWithoutCoMention(t *testing.T) {
	text := "Ada stayed home. Ben went to sea."
	chars := []*entity.Character{
		entity.NewCharacter("Ada", entity.RoleSupporting, 0.9),
		entity.NewCharacter("Ben", entity.RoleSupporting, 0.9),
	}
	if rels := inferRelationships(text, chars); len(rels) != 0 {
		t.Fatalf("pair without co-mention produced %d relationships", len(rels))
	}
}

func TestInferRelationshipsClassification(t *testing.T) {
	tests := []struct {
		text string
		want entity.RelationshipType
	}{
		{"Ada fought Ben as her sworn enemy and attacked him at dawn.", entity.RelationshipEnemy},
		{"Ada loved Ben and kissed him under the bridge.", entity.RelationshipRomantic},
		{"Ada is the sister of Ben and their family stayed close.", entity.RelationshipFamily},
		// 无类别关键词命中时归为 other
		{"Ada saw Ben across the square.", entity.RelationshipOther},
	}
	for _, tt := range tests {
		rel := inferPairRelationship(tt.text, "Ada", "Ben")
		if rel == nil {
			t.Fatalf("no relationship inferred from %q", tt.text)
		}
		if rel.Type != tt.want {
			t.Errorf("text %q: type = %q, want %q", tt.text, rel.Type, tt.want)
		}
		if rel.Description == "" || !strings.Contains(rel.Description, "Ada") {
			t.Errorf("description not templated: %q", rel.Description)
		}
	}
}

func TestInferDependenciesChain(t *testing.T) {
	for _, m := range []int{0, 1, 2, 5, 9} {
		events := make([]*entity.Event, 0, m)
		for i := 1; i <= m; i++ {
			events = append(events, entity.NewEvent("event", i, 0.65))
		}
		deps := inferDependencies(events)

		wantLen := 0
		if m > 1 {
			wantLen = m - 1
		}
		if len(deps) != wantLen {
			t.Fatalf("M=%d: got %d dependencies, want %d", m, len(deps), wantLen)
		}
		for i, dep := range deps {
			if dep.PredecessorSequence != i+1 || dep.SuccessorSequence != i+2 {
				t.Errorf("M=%d dep %d: %d -> %d, want %d -> %d",
					m, i, dep.PredecessorSequence, dep.SuccessorSequence, i+1, i+2)
			}
			if dep.Strength != 5 {
				t.Errorf("strength = %d, want fixed 5", dep.Strength)
			}
			if dep.DependencyType != entity.DependencyChronological {
				t.Errorf("type = %q, want chronological", dep.DependencyType)
			}
		}
	}
}

func TestInferPlotlines(t *testing.T) {
	hero := entity.NewCharacter("Anna", entity.RoleProtagonist, 0.9)
	villain := entity.NewCharacter("Vex", entity.RoleAntagonist, 0.85)
	events := []*entity.Event{entity.NewEvent("The duel", 1, 0.65)}
	events[0].AddParticipant("Anna", 8)

	plotlines := inferPlotlines([]*entity.Character{hero, villain}, events, 0, ServerProfile())
	if len(plotlines) != 2 {
		t.Fatalf("got %d plotlines, want main + subplot", len(plotlines))
	}
	if plotlines[0].Title != "Anna's Journey" || plotlines[0].PlotlineType != entity.PlotlineMain {
		t.Errorf("main plotline = %q (%q)", plotlines[0].Title, plotlines[0].PlotlineType)
	}
	if plotlines[1].PlotlineType != entity.PlotlineSubplot {
		t.Errorf("antagonist plotline type = %q, want subplot", plotlines[1].PlotlineType)
	}
}

func TestInferPlotlinesAntagonistOnly(t *testing.T) {
	villain := entity.NewCharacter("Vex", entity.RoleAntagonist, 0.85)
	plotlines := inferPlotlines([]*entity.Character{villain}, nil, 0, ServerProfile())
	if len(plotlines) != 1 {
		t.Fatalf("got %d plotlines, want 1", len(plotlines))
	}
	if plotlines[0].PlotlineType != entity.PlotlineMain {
		t.Errorf("without protagonist, antagonist plotline should be main, got %q", plotlines[0].PlotlineType)
	}
}

func TestInferPlotlinesFallback(t *testing.T) {
	events := []*entity.Event{entity.NewEvent("The flood", 1, 0.65)}
	plotlines := inferPlotlines(nil, events, 0, ServerProfile())
	if len(plotlines) != 1 || plotlines[0].Title != "Main Story" {
		t.Fatalf("fallback plotline missing: %+v", plotlines)
	}

	// 已有情节线时不补 fallback
	if got := inferPlotlines(nil, events, 2, ServerProfile()); len(got) != 0 {
		t.Fatalf("fallback emitted despite existing plotlines: %d", len(got))
	}
}

func TestInferArcs(t *testing.T) {
	hero := entity.NewCharacter("Anna", entity.RoleProtagonist, 0.9)
	minor := entity.NewCharacter("Bert", entity.RoleBackground, 0.6)
	events := make([]*entity.Event, 0, 3)
	for i := 1; i <= 3; i++ {
		ev := entity.NewEvent("event", i, 0.65)
		ev.AddParticipant("Anna", 8)
		ev.AddParticipant("Bert", 3)
		events = append(events, ev)
	}

	arcs := inferArcs([]*entity.Character{hero, minor}, events)
	if len(arcs) != 1 {
		t.Fatalf("got %d arcs, want 1 (protagonist only)", len(arcs))
	}
	arc := arcs[0]
	if arc.CharacterName != "Anna" {
		t.Errorf("arc character = %q", arc.CharacterName)
	}
	if len(arc.EventTitles) != 3 {
		t.Errorf("arc event titles = %d, want 3", len(arc.EventTitles))
	}
	if arc.StartingState == "" || arc.EndingState == "" {
		t.Error("arc states not templated")
	}
}

func TestInferArcsRequiresThreeEvents(t *testing.T) {
	hero := entity.NewCharacter("Anna", entity.RoleProtagonist, 0.9)
	events := []*entity.Event{entity.NewEvent("event", 1, 0.65)}
	events[0].AddParticipant("Anna", 8)
	if arcs := inferArcs([]*entity.Character{hero}, events); len(arcs) != 0 {
		t.Fatalf("arc generated with fewer than 3 events: %d", len(arcs))
	}
}

func TestGenerateSynopsisEmptyConditions(t *testing.T) {
	hero := entity.NewCharacter("Anna", entity.RoleProtagonist, 0.9)
	event := entity.NewEvent("The flood", 1, 0.65)

	if got := generateSynopsis(nil, nil, []*entity.Event{event}); got != "" {
		t.Errorf("synopsis without characters = %q, want empty", got)
	}
	if got := generateSynopsis([]*entity.Character{hero}, nil, nil); got != "" {
		t.Errorf("synopsis without events = %q, want empty", got)
	}
	if got := generateSynopsis([]*entity.Character{hero}, nil, []*entity.Event{event}); got == "" {
		t.Error("synopsis empty despite characters and events")
	}
}

func TestGenerateSynopsisEventTrajectory(t *testing.T) {
	hero := entity.NewCharacter("Anna", entity.RoleProtagonist, 0.9)
	events := []*entity.Event{
		entity.NewEvent("The Flood", 1, 0.65),
		entity.NewEvent("The March", 2, 0.65),
		entity.NewEvent("The Siege", 3, 0.65),
		entity.NewEvent("The Truce", 4, 0.65),
	}
	got := generateSynopsis([]*entity.Character{hero}, nil, events)
	for _, want := range []string{"the flood", "the siege", "the truce"} {
		if !strings.Contains(got, want) {
			t.Errorf("synopsis missing %q: %q", want, got)
		}
	}
}

func TestGenerateSynopsisLimitsMainCharacters(t *testing.T) {
	chars := []*entity.Character{}
	for _, name := range []string{"Anna", "Ben", "Cara", "Dov"} {
		chars = append(chars, entity.NewCharacter(name, entity.RoleProtagonist, 0.9))
	}
	got := generateSynopsis(chars, nil, []*entity.Event{entity.NewEvent("The flood", 1, 0.65)})
	if strings.Contains(got, "Dov") {
		t.Errorf("more than 3 main characters listed: %q", got)
	}
}
