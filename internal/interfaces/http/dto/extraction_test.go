package dto

import (
	"testing"

	"storyverse-api/internal/application/extraction"
	"storyverse-api/internal/domain/entity"
)

func TestToOptionsDefaultsToAllStages(t *testing.T) {
	req := &ExtractionRequest{StoryText: "text"}
	opts := req.ToOptions()

	if opts != extraction.DefaultOptions() {
		t.Errorf("nil options should map to defaults, got %+v", opts)
	}
}

func TestToOptionsAppliesToggles(t *testing.T) {
	off := false
	req := &ExtractionRequest{
		StoryText: "text",
		Options: &ExtractionOptions{
			ExtractScenes:       &off,
			ExtractArcs:         &off,
			ConfidenceThreshold: 0.75,
		},
	}
	opts := req.ToOptions()

	if opts.ExtractScenes || opts.ExtractArcs {
		t.Error("disabled stages should be off")
	}
	if !opts.ExtractCharacters || !opts.ExtractEvents {
		t.Error("unspecified stages should default to on")
	}
	if opts.ConfidenceThreshold != 0.75 {
		t.Errorf("ConfidenceThreshold = %v, want 0.75", opts.ConfidenceThreshold)
	}
}

func TestOptionsFingerprintDistinguishesOptions(t *testing.T) {
	base := extraction.DefaultOptions()

	noScenes := base
	noScenes.ExtractScenes = false

	raised := base
	raised.ConfidenceThreshold = 0.8

	seen := map[string]string{}
	for name, opts := range map[string]extraction.Options{
		"default":   base,
		"no_scenes": noScenes,
		"raised":    raised,
	} {
		fp := OptionsFingerprint(opts)
		if prev, ok := seen[fp]; ok {
			t.Errorf("fingerprint collision between %s and %s: %q", prev, name, fp)
		}
		seen[fp] = name
	}

	if OptionsFingerprint(base) != OptionsFingerprint(extraction.DefaultOptions()) {
		t.Error("identical options should produce identical fingerprints")
	}
}

func TestImportRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ImportRequest
		wantErr bool
	}{
		{"neither", ImportRequest{}, true},
		{"text only", ImportRequest{StoryText: "Once upon a time."}, false},
		{"result only", ImportRequest{Result: entity.NewExtractionResult("novel")}, false},
		{"both", ImportRequest{Result: entity.NewExtractionResult("novel"), StoryText: "text"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
