package services

import "testing"

func TestLevelThresholds(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{1, 0},
		{2, 100},
		{3, 400},
		{4, 900},
		{5, 1600},
	}
	for _, c := range cases {
		if got := LevelThreshold(c.level); got != c.want {
			t.Errorf("LevelThreshold(%d) = %d, want %d", c.level, got, c.want)
		}
	}
}

func TestCurrentLevel(t *testing.T) {
	cases := []struct {
		points int
		want   int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2}, // exact threshold starts the new level
		{275, 2},
		{399, 2},
		{400, 3},
		{899, 3},
		{900, 4},
		{-10, 1},
	}
	for _, c := range cases {
		if got := CurrentLevel(c.points); got != c.want {
			t.Errorf("CurrentLevel(%d) = %d, want %d", c.points, got, c.want)
		}
	}
}

// Levels never go down as points go up.
func TestCurrentLevelMonotonic(t *testing.T) {
	prev := 1
	for points := 0; points <= 5000; points++ {
		level := CurrentLevel(points)
		if level < prev {
			t.Fatalf("level dropped from %d to %d at %d points", prev, level, points)
		}
		if threshold := LevelThreshold(level); threshold > points {
			t.Fatalf("CurrentLevel(%d) = %d but its threshold is %d", points, level, threshold)
		}
		prev = level
	}
}

func TestPointsForNextLevel(t *testing.T) {
	if got := PointsForNextLevel(1); got != 100 {
		t.Errorf("PointsForNextLevel(1) = %d, want 100", got)
	}
	if got := PointsForNextLevel(2); got != 400 {
		t.Errorf("PointsForNextLevel(2) = %d, want 400", got)
	}
}

func TestLevelProgress(t *testing.T) {
	// 275 points: level 2 spans [100, 400), so 175/300.
	got := LevelProgress(275)
	want := 175.0 / 300.0 * 100
	if diff := got - want; diff > 0.001 || diff < -0.001 {
		t.Errorf("LevelProgress(275) = %f, want %f", got, want)
	}

	if got := LevelProgress(0); got != 0 {
		t.Errorf("LevelProgress(0) = %f, want 0", got)
	}
	if got := LevelProgress(100); got != 0 {
		t.Errorf("LevelProgress(100) = %f, want 0 at a fresh level", got)
	}
	if got := LevelProgress(-50); got < 0 || got > 100 {
		t.Errorf("LevelProgress(-50) = %f, out of [0,100]", got)
	}
}

func TestDefaultPointValuesComposition(t *testing.T) {
	// A completed booking plus a review (50 + 25) keeps a new member on
	// level 1. Verifying identity (100) pushes the total to 175, level 2.
	total := DefaultPointValues["booking_completed"] + DefaultPointValues["review_written"]
	if CurrentLevel(total) != 1 {
		t.Errorf("expected level 1 at %d points", total)
	}
	total += DefaultPointValues["verified_identity"]
	if CurrentLevel(total) != 2 {
		t.Errorf("expected level 2 at %d points", total)
	}
}
