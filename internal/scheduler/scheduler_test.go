package scheduler

import (
	"reflect"
	"testing"
)

func TestOrder(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		current  int
		feedLen  int
		backward bool
		expected []int
	}{
		{
			name:     "Default Window - Middle Of Feed",
			cfg:      Config{Near: 1, Far: 2},
			current:  5,
			feedLen:  10,
			expected: []int{5, 6, 4, 7, 3},
		},
		{
			name:     "Clipped At Feed Start",
			cfg:      Config{Near: 1, Far: 2},
			current:  0,
			feedLen:  10,
			expected: []int{0, 1, 2},
		},
		{
			name:     "Clipped At Feed End",
			cfg:      Config{Near: 1, Far: 2},
			current:  9,
			feedLen:  10,
			expected: []int{9, 8, 7},
		},
		{
			name:     "Single Element Feed",
			cfg:      Config{Near: 1, Far: 2},
			current:  0,
			feedLen:  1,
			expected: []int{0},
		},
		{
			name:     "Empty Feed",
			cfg:      Config{Near: 1, Far: 2},
			current:  0,
			feedLen:  0,
			expected: nil,
		},
		{
			name:     "Viewport Beyond Feed - Everything Clips",
			cfg:      Config{Near: 1, Far: 2},
			current:  12,
			feedLen:  10,
			expected: []int{},
		},
		{
			name:     "Backward Bias Flips Ties Only",
			cfg:      Config{Near: 1, Far: 2},
			current:  5,
			feedLen:  10,
			backward: true,
			expected: []int{5, 4, 6, 3, 7},
		},
		{
			name:     "Wider Window",
			cfg:      Config{Near: 2, Far: 3},
			current:  4,
			feedLen:  10,
			expected: []int{4, 5, 3, 6, 2, 7, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.cfg)
			got := s.OrderBiased(tt.current, tt.feedLen, tt.backward)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNearBand(t *testing.T) {
	s := New(Config{Near: 1, Far: 2})

	got := s.NearBand(5, 10, false)
	expected := []int{5, 6, 4}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	if got := s.NearBand(0, 0, false); got != nil {
		t.Errorf("expected nil band for empty feed, got %v", got)
	}
}

func TestNewDefaults(t *testing.T) {
	s := New(Config{})
	if s.Near() != 1 {
		t.Errorf("expected default near=1, got %d", s.Near())
	}
	if s.Far() != 2 {
		t.Errorf("expected default far=2, got %d", s.Far())
	}

	// Far is never allowed below Near.
	s = New(Config{Near: 3, Far: 1})
	if s.Far() <= s.Near() {
		t.Errorf("expected far > near, got near=%d far=%d", s.Near(), s.Far())
	}
}
