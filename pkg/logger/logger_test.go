package logger

import "testing"

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", "debug", DEBUG, false},
		{"info", "info", INFO, false},
		{"error", "ERROR", ERROR, false},
		{"padded", "  Info ", INFO, false},
		{"invalid", "verbose", INFO, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if tt.wantErr && err == nil {
				t.Fatal("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Fatalf("expected level %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	original := currentLevel
	t.Cleanup(func() { currentLevel = original })

	SetLogLevel(INFO)
	if Enabled(DEBUG) {
		t.Fatal("debug should be disabled at info level")
	}
	if !Enabled(ERROR) {
		t.Fatal("error should be enabled at info level")
	}
}
