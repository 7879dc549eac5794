package scoring

import (
	"testing"

	"github.com/pzwatch/go-pizza-index/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  int
	}{
		{"empty title", "", 50},
		{"no keywords", "Local bakery wins award", 50},
		{"one high keyword", "Military parade announced", 70},
		{"one medium keyword", "New sanctions proposed", 60},
		{"two high keywords clamp short", "War strike reported", 90},
		{"clamped at 100", "Military strike hits pentagon", 100},
		{"case insensitive", "NUCLEAR Tension Rising", 80},
		{"mixed high and medium", "Attack sparks diplomatic crisis", 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.title); got != tt.want {
				t.Errorf("Score(%q) = %d, want %d", tt.title, got, tt.want)
			}
		})
	}
}

func TestScore_Bounds(t *testing.T) {
	titles := []string{
		"",
		"war attack strike military pentagon nuclear conflict tension sanctions diplomatic",
		"completely unrelated headline about gardening",
	}
	for _, title := range titles {
		got := Score(title)
		if got < 50 || got > 100 {
			t.Errorf("Score(%q) = %d, out of [50,100]", title, got)
		}
	}
}

func TestScore_MonotonicInMatches(t *testing.T) {
	// Adding another matching keyword never lowers the score.
	prev := Score("quiet day")
	for _, title := range []string{"war", "war attack", "war attack strike", "war attack strike pentagon"} {
		got := Score(title)
		if got < prev {
			t.Errorf("Score(%q) = %d dropped below previous %d", title, got, prev)
		}
		prev = got
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		title string
		want  models.EventType
	}{
		{"", models.EventTypeGeneral},
		{"Military strike hits base", models.EventTypeMilitary},
		{"Peace talks resume in Geneva", models.EventTypeDiplomatic},
		{"Border tension escalates", models.EventTypeConflict},
		{"Stock markets rally", models.EventTypeGeneral},
		// Military group has priority over the others.
		{"War looms as diplomatic crisis deepens", models.EventTypeMilitary},
		{"Diplomatic efforts amid rising tension", models.EventTypeDiplomatic},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Classify(tt.title); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	title := "Crisis talks after attack"
	first := Classify(title)
	for i := 0; i < 100; i++ {
		if got := Classify(title); got != first {
			t.Fatalf("Classify not deterministic: got %q then %q", first, got)
		}
	}
}
