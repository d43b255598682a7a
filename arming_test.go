package digiscope

import "testing"

func TestArm(t *testing.T) {
	tests := []struct {
		trigger Trigger
		level   Level
		idx     int32
		initial Level
	}{
		{AnyChange, Low, 0, High},
		{AnyChange, High, 0, Low},
		{Rising, Low, 0, High},
		{Rising, High, -1, High},
		{Falling, Low, -1, Low},
		{Falling, High, 0, Low},
	}

	for _, tt := range tests {
		idx, initial := arm(tt.trigger, tt.level)
		if idx != tt.idx || initial != tt.initial {
			t.Errorf("arm(%s, %s) = (%d, %s), expected (%d, %s)",
				tt.trigger, tt.level, idx, initial, tt.idx, tt.initial)
		}
	}
}

func TestTriggerString(t *testing.T) {
	if Rising.String() != "RISING" || Falling.String() != "FALLING" || AnyChange.String() != "CHANGE" {
		t.Error("Unexpected trigger names")
	}
	if Trigger(9).String() != "unknown" {
		t.Errorf("Expected unknown, got %s", Trigger(9))
	}
}
