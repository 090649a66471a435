package extraction

import "testing"

func TestProfileByName(t *testing.T) {
	tests := []struct {
		name string
		want Profile
	}{
		{"server", ServerProfile()},
		{"client", ClientProfile()},
		{"", ServerProfile()},
		{"bogus", ServerProfile()},
	}
	for _, tt := range tests {
		t.Run("name_"+tt.name, func(t *testing.T) {
			if got := ProfileByName(tt.name); got != tt.want {
				t.Errorf("ProfileByName(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestProfileFloors(t *testing.T) {
	server := ServerProfile()
	client := ClientProfile()

	if server.DiscardFloor != 0.5 {
		t.Errorf("server DiscardFloor = %v, want 0.5", server.DiscardFloor)
	}
	if client.DiscardFloor != 0 {
		t.Errorf("client DiscardFloor = %v, want 0", client.DiscardFloor)
	}
	if server.EventSequenceStep != 1 || client.EventSequenceStep != 10 {
		t.Errorf("sequence steps = %d/%d, want 1/10", server.EventSequenceStep, client.EventSequenceStep)
	}

	opts := DefaultOptions()
	if got := opts.floor(server); got != 0.5 {
		t.Errorf("default floor on server profile = %v, want 0.5", got)
	}
	opts.ConfidenceThreshold = 0.8
	if got := opts.floor(server); got != 0.8 {
		t.Errorf("raised floor = %v, want 0.8", got)
	}
}
