package log

import "testing"

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirectionIn, "IN"},
		{DirectionOut, "OUT"},
		{Direction(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.dir.String()
		if got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerTransport, "TRANSPORT"},
		{LayerWire, "WIRE"},
		{LayerClient, "CLIENT"},
		{Layer(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.layer.String()
		if got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryMessage, "MESSAGE"},
		{CategoryState, "STATE"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cat.String()
		if got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestStateEntityString(t *testing.T) {
	tests := []struct {
		entity StateEntity
		want   string
	}{
		{StateEntityConnection, "CONNECTION"},
		{StateEntityClient, "CLIENT"},
		{StateEntity(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.entity.String()
		if got != tt.want {
			t.Errorf("StateEntity(%d).String() = %q, want %q", tt.entity, got, tt.want)
		}
	}
}

func TestDirectionValues(t *testing.T) {
	// Verify explicit values for wire stability
	if DirectionIn != 0 {
		t.Errorf("DirectionIn = %d, want 0", DirectionIn)
	}
	if DirectionOut != 1 {
		t.Errorf("DirectionOut = %d, want 1", DirectionOut)
	}
}

func TestLayerValues(t *testing.T) {
	// Verify explicit values for wire stability
	if LayerTransport != 0 {
		t.Errorf("LayerTransport = %d, want 0", LayerTransport)
	}
	if LayerWire != 1 {
		t.Errorf("LayerWire = %d, want 1", LayerWire)
	}
	if LayerClient != 2 {
		t.Errorf("LayerClient = %d, want 2", LayerClient)
	}
}

func TestCategoryValues(t *testing.T) {
	// Verify explicit values for wire stability
	if CategoryMessage != 0 {
		t.Errorf("CategoryMessage = %d, want 0", CategoryMessage)
	}
	if CategoryState != 1 {
		t.Errorf("CategoryState = %d, want 1", CategoryState)
	}
	if CategoryError != 2 {
		t.Errorf("CategoryError = %d, want 2", CategoryError)
	}
}

func TestStateEntityValues(t *testing.T) {
	// Verify explicit values for wire stability
	if StateEntityConnection != 0 {
		t.Errorf("StateEntityConnection = %d, want 0", StateEntityConnection)
	}
	if StateEntityClient != 1 {
		t.Errorf("StateEntityClient = %d, want 1", StateEntityClient)
	}
}
