package validation

import (
	"strings"
	"testing"
)

// --- ValidateRequired Tests ---

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"present", "hola", false},
		{"unicode", "안녕하세요", false},
		{"empty", "", true},
		{"whitespace only", "   \t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired("word", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired(%q) = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

// --- ValidateEnum Tests ---

func TestValidateEnum(t *testing.T) {
	levels := []string{"A1", "A2", "B1", "B2", "C1", "C2"}

	if err := ValidateEnum("level", "B1", levels); err != nil {
		t.Errorf("ValidateEnum(B1) = %v, want nil", err)
	}

	err := ValidateEnum("level", "D1", levels)
	if err == nil {
		t.Fatal("ValidateEnum(D1) = nil, want error")
	}
	if err.Field != "level" {
		t.Errorf("error.Field = %q, want %q", err.Field, "level")
	}
	if !strings.Contains(err.Message, "A1") {
		t.Errorf("error.Message = %q, want allowed values listed", err.Message)
	}
}

// --- ValidateIntRange Tests ---

func TestValidateIntRange(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"low bound", 0, false},
		{"high bound", 5, false},
		{"middle", 3, false},
		{"below", -1, true},
		{"above", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIntRange("quality", tt.value, 0, 5)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIntRange(%d) = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

// --- ValidateDate Tests ---

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "2026-08-26", false},
		{"leap day", "2024-02-29", false},
		{"wrong layout", "26/08/2026", true},
		{"not a date", "yesterday", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate("next_review", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDate(%q) = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

// --- ValidateMaxLength Tests ---

func TestValidateMaxLength_CountsRunes(t *testing.T) {
	// 5 runes, 15 bytes
	value := "안녕하세요"
	if err := ValidateMaxLength("text", value, 5); err != nil {
		t.Errorf("ValidateMaxLength(5 runes, max 5) = %v, want nil", err)
	}
	if err := ValidateMaxLength("text", value, 4); err == nil {
		t.Error("ValidateMaxLength(5 runes, max 4) = nil, want error")
	}
}

// --- Collector Tests ---

func TestCollector(t *testing.T) {
	var c Collector

	if c.HasErrors() {
		t.Error("empty collector HasErrors() = true, want false")
	}
	if c.Err() != nil {
		t.Errorf("empty collector Err() = %v, want nil", c.Err())
	}

	c.Add(nil)
	c.Add(ValidateRequired("word", ""))
	c.Add(ValidateEnum("outcome", "maybe", []string{"correct", "incorrect"}))

	if !c.HasErrors() {
		t.Fatal("collector HasErrors() = false, want true")
	}
	if got := len(c.Errors()); got != 2 {
		t.Errorf("len(Errors()) = %d, want 2", got)
	}
	err := c.Err()
	if err == nil {
		t.Fatal("Err() = nil, want error")
	}
	if !strings.Contains(err.Error(), "word") || !strings.Contains(err.Error(), "outcome") {
		t.Errorf("Err() = %q, want both fields mentioned", err)
	}
}
