package extraction

import "testing"

const screenplaySample = `INT. KITCHEN - DAY

SARAH
I can't believe you did that.

JOHN
(angrily)
You left me no choice.

CUT TO:

EXT. GARDEN - NIGHT

SARAH
This ends here.
`

const novelSample = `Chapter 1

Elizabeth walked along the river for most of the morning, thinking about the letter. The village behind her was quiet, and the road ahead wound through fields she had known since childhood. She had read the letter three times and still could not decide what it meant, or what her brother wanted from her after all these years of silence.

"You came back," said Elizabeth.

"I had to," replied Thomas.

Chapter 2

The house had not changed. Elizabeth stood in the hallway and listened to the clock.
`

func TestDetectFormatFountainTakesPriority(t *testing.T) {
	text := `Title: The Last Stand
Author: J. Doe

INT. BUNKER - NIGHT

COMMANDER
Hold the line.

Chapter 1 of something that looks like a novel too.
`
	for i := 0; i < 3; i++ {
		if got := DetectFormat(text); got != FormatFountain {
			t.Fatalf("run %d: DetectFormat() = %q, want %q", i, got, FormatFountain)
		}
	}
}

func TestDetectFormatScreenplay(t *testing.T) {
	if got := DetectFormat(screenplaySample); got != FormatScreenplay {
		t.Fatalf("DetectFormat() = %q, want %q", got, FormatScreenplay)
	}
}

func TestDetectFormatScreenplayWithoutCueLines(t *testing.T) {
	// 标题行与转场标记各自独立计分，
	// 不足 3 个提示行的片段也能凑满剧本阈值
	text := `FADE IN:

INT. WAREHOUSE - NIGHT

EXT. STREET - NIGHT

A lone car idles at the curb.
`
	if got := DetectFormat(text); got != FormatScreenplay {
		t.Fatalf("DetectFormat() = %q, want %q", got, FormatScreenplay)
	}
}

func TestDetectFormatNovel(t *testing.T) {
	if got := DetectFormat(novelSample); got != FormatNovel {
		t.Fatalf("DetectFormat() = %q, want %q", got, FormatNovel)
	}
}

func TestDetectFormatGeneral(t *testing.T) {
	if got := DetectFormat("just a short note without structure"); got != FormatGeneral {
		t.Fatalf("DetectFormat() = %q, want %q", got, FormatGeneral)
	}
}

func TestDetectFormatDeterministic(t *testing.T) {
	inputs := []string{screenplaySample, novelSample, "plain text", ""}
	for _, text := range inputs {
		first := DetectFormat(text)
		for i := 0; i < 5; i++ {
			if got := DetectFormat(text); got != first {
				t.Fatalf("DetectFormat not deterministic: %q then %q", first, got)
			}
		}
	}
}
