package utils

import (
	"strings"
	"testing"
)

func TestGenerateInviteCode(t *testing.T) {
	t.Run("length and alphabet", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code := GenerateInviteCode()
			if len(code) != InviteCodeLength {
				t.Fatalf("code %q length = %d, want %d", code, len(code), InviteCodeLength)
			}
			for _, ch := range code {
				if !strings.ContainsRune(alphanumeric, ch) {
					t.Fatalf("code %q contains %q outside alphabet", code, ch)
				}
			}
		}
	})

	t.Run("no ambiguous characters", func(t *testing.T) {
		// ตัวที่อ่านสับสนง่าย (0/o, 1/l/i) ต้องไม่อยู่ใน alphabet
		for _, ch := range "01loiLOI" {
			if strings.ContainsRune(alphanumeric, ch) {
				t.Errorf("ambiguous character %q in alphabet", ch)
			}
		}
	})

	t.Run("codes vary", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			seen[GenerateInviteCode()] = true
		}
		// สุ่ม 50 ครั้งจาก 31^6 ชนกันหมดแทบเป็นไปไม่ได้
		if len(seen) < 45 {
			t.Errorf("only %d distinct codes from 50 draws", len(seen))
		}
	})
}

func TestGenerateRandomString(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"short", 6},
		{"state token", 32},
		{"zero", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateRandomString(tt.length)
			if len(got) != tt.length {
				t.Errorf("length = %d, want %d", len(got), tt.length)
			}
		})
	}
}
