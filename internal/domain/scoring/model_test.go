package scoring

import (
	"testing"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
)

func testSnapshot(kind boost.Kind) fantasy.SquadTour {
	return fantasy.SquadTour{
		ID:            "st-1",
		CaptainID:     "c",
		ViceCaptainID: "v",
		ActiveBoost:   kind,
		MainLineup:    []string{"c", "v", "m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9"},
		Bench:         []string{"b1", "b2", "b3", "b4"},
	}
}

func TestMatchDelta(t *testing.T) {
	tests := []struct {
		name   string
		kind   boost.Kind
		points map[string]int
		want   int
	}{
		{
			name:   "vice doubled when captain scores zero",
			points: map[string]int{"c": 0, "v": 6, "m1": 2, "m2": 3},
			want:   6*2 + 2 + 3,
		},
		{
			name:   "vice doubled when captain has no stat row",
			points: map[string]int{"v": 6},
			want:   12,
		},
		{
			name:   "captain doubled and vice plain",
			points: map[string]int{"c": 5, "v": 6, "m9": 1},
			want:   10 + 6 + 1,
		},
		{
			name:   "triple captain",
			kind:   boost.KindTripleCaptain,
			points: map[string]int{"c": 4},
			want:   12,
		},
		{
			name:   "negative captain points are multiplied",
			points: map[string]int{"c": -1, "v": 3},
			want:   -2 + 3,
		},
		{
			name:   "bench ignored without bench boost",
			points: map[string]int{"b1": 7, "b2": 2},
			want:   0,
		},
		{
			name:   "bench boost adds unmodified bench points",
			kind:   boost.KindBenchBoost,
			points: map[string]int{"c": 2, "b1": 7, "b2": 2},
			want:   4 + 7 + 2,
		},
		{
			name:   "gold tour does not change match scoring",
			kind:   boost.KindGoldTour,
			points: map[string]int{"c": 2, "m1": 1},
			want:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchDelta(testSnapshot(tt.kind), tt.points)
			if got.Points != tt.want {
				t.Fatalf("expected delta=%d, got %d (lines=%+v)", tt.want, got.Points, got.Lines)
			}
			if got.SquadTourID != "st-1" {
				t.Fatalf("unexpected squad tour id: %s", got.SquadTourID)
			}
		})
	}
}

func TestMatchDelta_ViceDoubledPlusRemainingNine(t *testing.T) {
	points := map[string]int{"c": 0, "v": 6}
	remaining := 0
	for i, id := range []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9"} {
		points[id] = i + 1
		remaining += i + 1
	}

	got := MatchDelta(testSnapshot(boost.KindNone), points)
	if got.Points != 12+remaining {
		t.Fatalf("expected %d, got %d", 12+remaining, got.Points)
	}
}
