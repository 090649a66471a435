package extraction

import (
	"fmt"
	"strings"
	"testing"

	"storyverse-api/internal/domain/entity"
)

func TestSegmentScreenplayScenes(t *testing.T) {
	scenes := segmentScenes(screenplaySample, FormatScreenplay)
	if len(scenes) != 2 {
		t.Fatalf("got %d scenes, want 2", len(scenes))
	}
	if scenes[0].Title != "INT. KITCHEN - DAY" {
		t.Errorf("first scene title = %q", scenes[0].Title)
	}
	if scenes[1].Title != "EXT. GARDEN - NIGHT" {
		t.Errorf("second scene title = %q", scenes[1].Title)
	}
	if !strings.Contains(scenes[0].Content, "I can't believe you did that.") {
		t.Errorf("first scene content missing dialogue: %q", scenes[0].Content)
	}
	for i, sc := range scenes {
		if sc.SequenceNumber != i+1 {
			t.Errorf("scene %d sequence = %d", i, sc.SequenceNumber)
		}
		if sc.Type != entity.SceneTypeScene {
			t.Errorf("scene %d type = %q", i, sc.Type)
		}
	}
}

func TestSegmentProseChapters(t *testing.T) {
	scenes := segmentScenes(novelSample, FormatNovel)
	chapters := 0
	for _, sc := range scenes {
		if sc.Type == entity.SceneTypeChapter {
			chapters++
		}
	}
	if chapters != 2 {
		t.Fatalf("got %d chapter scenes, want 2: %+v", chapters, sceneTitles(scenes))
	}
	for i, sc := range scenes {
		if sc.SequenceNumber != i+1 {
			t.Errorf("scene %d sequence = %d, want emission order", i, sc.SequenceNumber)
		}
	}
}

func TestSegmentProseSubScenesLinkToChapter(t *testing.T) {
	text := `Chapter 1

Anna woke before sunrise and packed her bag in silence.

Later that day, she reached the harbor and looked for the ferry.

Meanwhile, far to the north, the storm was already gathering.
`
	scenes := segmentScenes(text, FormatNovel)
	if len(scenes) < 3 {
		t.Fatalf("expected chapter plus sub-scenes, got %v", sceneTitles(scenes))
	}
	chapterSeq := scenes[0].SequenceNumber
	if scenes[0].Type != entity.SceneTypeChapter {
		t.Fatalf("first scene type = %q, want chapter", scenes[0].Type)
	}
	for i, sc := range scenes[1:] {
		if sc.Type != entity.SceneTypeScene {
			t.Errorf("sub-scene type = %q", sc.Type)
		}
		if sc.ParentSequenceNumber != chapterSeq {
			t.Errorf("sub-scene parent = %d, want %d", sc.ParentSequenceNumber, chapterSeq)
		}
		if want := fmt.Sprintf("Chapter 1 - Scene %d", i+1); sc.Title != want {
			t.Errorf("sub-scene title = %q, want %q", sc.Title, want)
		}
	}
}

func TestSegmentProseKeepsPrologue(t *testing.T) {
	text := `The kingdom slept under snow while the old king lay dying.

Chapter 1

Anna woke before sunrise and packed her bag.
`
	scenes := segmentScenes(text, FormatNovel)
	if len(scenes) < 2 {
		t.Fatalf("expected prologue section plus chapter, got %v", sceneTitles(scenes))
	}
	if scenes[0].Title != "Section 1" || scenes[0].Type != entity.SceneTypeChapter {
		t.Fatalf("leading scene = %q (%q), want Section 1 chapter", scenes[0].Title, scenes[0].Type)
	}
	if !strings.Contains(scenes[0].Content, "kingdom slept") {
		t.Errorf("pre-chapter prose dropped: %q", scenes[0].Content)
	}
	if scenes[1].Title != "Chapter 1" {
		t.Errorf("chapter after prologue = %q, want Chapter 1", scenes[1].Title)
	}
}

func TestSegmentProseWithoutChapters(t *testing.T) {
	text := `Anna woke before sunrise and packed her bag.

The next day she reached the harbor.
`
	scenes := segmentScenes(text, FormatGeneral)
	if len(scenes) != 2 {
		t.Fatalf("got %d scenes, want 2: %v", len(scenes), sceneTitles(scenes))
	}
}

func TestSegmentStarBreaks(t *testing.T) {
	text := `* * *

The caravan moved east for a week.

* * *

Winter came early that year.
`
	scenes := segmentScenes(text, FormatNovel)
	if len(scenes) < 2 {
		t.Fatalf("star separators not honored: %v", sceneTitles(scenes))
	}
}

func sceneTitles(scenes []*entity.Scene) []string {
	out := make([]string, len(scenes))
	for i, sc := range scenes {
		out[i] = sc.Title
	}
	return out
}
