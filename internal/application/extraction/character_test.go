package extraction

import (
	"testing"

	"storyverse-api/internal/domain/entity"
)

func TestIsLikelyCharacterName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"DR SMITH", true},
		{"MRS WILSON", true},
		{"CAPTAIN REYNOLDS", true},
		{"SARAH", true},
		{"RUFUS", true},
		{"KITCHEN", false},
		{"FOREST", false},
		{"SWORD", false},
		{"THE", false},
		{"INT", false},
		{"DARK FIGURE", false},
		{"FADE OUT", false},
		{"BANG", false},
		{"", false},
		// 称谓前缀自动通过，即使后面跟着地点词
		{"DR KITCHEN", true},
	}
	for _, tt := range tests {
		if got := isLikelyCharacterName(tt.name); got != tt.want {
			t.Errorf("isLikelyCharacterName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsLikelyCharacterNameConsistent(t *testing.T) {
	for i := 0; i < 10; i++ {
		if isLikelyCharacterName("KITCHEN") {
			t.Fatal("location stoplist word accepted as character name")
		}
		if !isLikelyCharacterName("DR SMITH") {
			t.Fatal("honorific-prefixed name rejected")
		}
	}
}

func TestExtractCharactersConfidenceBounds(t *testing.T) {
	chars := extractCharacters(screenplaySample, FormatScreenplay, ServerProfile(), 0.5, nil)
	if len(chars) == 0 {
		t.Fatal("expected character candidates from screenplay sample")
	}
	for _, c := range chars {
		if c.Confidence < 0 || c.Confidence > 1 {
			t.Errorf("character %q confidence %f out of [0,1]", c.Name, c.Confidence)
		}
		if c.Confidence < 0.5 {
			t.Errorf("character %q below discard floor: %f", c.Name, c.Confidence)
		}
	}
}

func TestExtractCharactersScreenplayCues(t *testing.T) {
	chars := extractCharacters(screenplaySample, FormatScreenplay, ServerProfile(), 0.5, nil)
	byName := map[string]*entity.Character{}
	for _, c := range chars {
		byName[c.Name] = c
	}
	sarah, ok := byName["Sarah"]
	if !ok {
		t.Fatalf("Sarah not detected, got %v", names(chars))
	}
	// 两次提示行出现：基础 0.8 + 0.05
	if sarah.Confidence < 0.8 {
		t.Errorf("Sarah confidence = %f, want >= 0.8", sarah.Confidence)
	}
	if _, ok := byName["John"]; !ok {
		t.Fatalf("John not detected, got %v", names(chars))
	}
	if _, ok := byName["Kitchen"]; ok {
		t.Error("slugline location leaked into character list")
	}
}

func TestExtractCharactersConfidenceCaps(t *testing.T) {
	text := ""
	for i := 0; i < 20; i++ {
		text += "WORF\nFire the torpedoes.\n\n"
	}
	chars := extractCharacters(text, FormatScreenplay, ServerProfile(), 0.5, nil)
	for _, c := range chars {
		if c.Name == "Worf" && c.Confidence > 0.95 {
			t.Errorf("cue confidence exceeded cap: %f", c.Confidence)
		}
	}
}

func TestExtractCharactersRespectsThreshold(t *testing.T) {
	// 频次候选置信度 0.6，阈值 0.65 应将其过滤
	text := "Alice met Bob. Alice smiled. Alice left. Bob waved. Bob ran. Bob sat. Alice returned."
	low := extractCharacters(text, FormatNovel, ServerProfile(), 0.5, nil)
	high := extractCharacters(text, FormatNovel, ServerProfile(), 0.65, nil)
	if len(low) == 0 {
		t.Fatal("expected frequency-based candidates at floor 0.5")
	}
	for _, c := range high {
		if c.Confidence < 0.65 {
			t.Errorf("character %q confidence %f below requested threshold", c.Name, c.Confidence)
		}
	}
}

func TestIdentifyCharacterRoleOverrides(t *testing.T) {
	overrides := map[string]CharacterOverride{
		"Greg": {Role: "protagonist", Logline: "Greg, a reluctant hero."},
	}
	role := identifyCharacterRole("Greg", "Greg waved once.", 1, overrides)
	if role != entity.RoleProtagonist {
		t.Errorf("override role = %q, want protagonist", role)
	}
	if got := generateLogline("Greg", role, overrides); got != "Greg, a reluctant hero." {
		t.Errorf("override logline not applied: %q", got)
	}
}

func TestIdentifyCharacterRoleHeuristics(t *testing.T) {
	text := "Mara sneered at the villagers, plotting her revenge."
	if got := identifyCharacterRole("Mara", text, 2, nil); got != entity.RoleAntagonist {
		t.Errorf("negative-sentiment adjacency: got %q, want antagonist", got)
	}
	if got := identifyCharacterRole("Pim", "Pim waved.", 6, nil); got != entity.RoleSupporting {
		t.Errorf("mention count > 5: got %q, want supporting", got)
	}
	if got := identifyCharacterRole("Pim", "Pim waved.", 1, nil); got != entity.RoleBackground {
		t.Errorf("low mention count: got %q, want background", got)
	}
}

func TestTitleCaseName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"RUFUS", "Rufus"},
		{"DR SMITH", "Dr Smith"},
		{"sarah", "Sarah"},
		{"DARK LORD VEX", "Dark Lord Vex"},
	}
	for _, tt := range tests {
		if got := titleCaseName(tt.in); got != tt.want {
			t.Errorf("titleCaseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func names(chars []*entity.Character) []string {
	out := make([]string, len(chars))
	for i, c := range chars {
		out[i] = c.Name
	}
	return out
}
