package parallel

import "testing"

func TestPartition_Sizes(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		capacity int
		want     []WorkRange
	}{
		{"zero height", 0, 4, nil},
		{"negative height", -3, 4, nil},
		{"even split", 8, 4, []WorkRange{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"remainder first", 10, 4, []WorkRange{{0, 3}, {3, 6}, {6, 8}, {8, 10}}},
		{"height below capacity", 3, 8, []WorkRange{{0, 1}, {1, 2}, {2, 3}}},
		{"single worker", 5, 1, []WorkRange{{0, 5}}},
		{"zero capacity", 5, 0, []WorkRange{{0, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Partition(tt.height, tt.capacity)
			if len(got) != len(tt.want) {
				t.Fatalf("Partition(%d, %d) = %v, want %v", tt.height, tt.capacity, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("range %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestPartition_Cover checks that for every height and capacity the ranges are
// ordered, disjoint, balanced within one row and cover [0, height) exactly.
func TestPartition_Cover(t *testing.T) {
	for height := 1; height <= 200; height++ {
		for capacity := 1; capacity <= 33; capacity++ {
			ranges := Partition(height, capacity)

			if want := min(height, capacity); len(ranges) != want {
				t.Fatalf("Partition(%d, %d): %d ranges, want %d", height, capacity, len(ranges), want)
			}

			next := 0
			minLen, maxLen := height, 0
			for i, r := range ranges {
				if r.Start != next {
					t.Fatalf("Partition(%d, %d): range %d starts at %d, want %d", height, capacity, i, r.Start, next)
				}
				if r.Len() < 1 {
					t.Fatalf("Partition(%d, %d): range %d is empty", height, capacity, i)
				}
				minLen = min(minLen, r.Len())
				maxLen = max(maxLen, r.Len())
				next = r.End
			}
			if next != height {
				t.Fatalf("Partition(%d, %d): ranges end at %d, want %d", height, capacity, next, height)
			}
			if maxLen-minLen > 1 {
				t.Fatalf("Partition(%d, %d): unbalanced lengths %d..%d", height, capacity, minLen, maxLen)
			}
		}
	}
}

func TestPartition_Deterministic(t *testing.T) {
	a := Partition(1081, 12)
	b := Partition(1081, 12)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("range %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestWorkRange_String(t *testing.T) {
	if got := (WorkRange{Start: 3, End: 7}).String(); got != "[3, 7)" {
		t.Errorf("String() = %q, want %q", got, "[3, 7)")
	}
}
