package fiscalcode

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		body string
		want byte
	}{
		{"reference code", "RSSMRA50E04A131", 'O'},
		{"female code", "BNCGLI91L62D612", 'T'},
		{"all zeros tail", "AAAAAA00A00A000", checksumOf(t, "AAAAAA00A00A000")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Checksum(tt.body)
			if err != nil {
				t.Fatalf("Checksum(%q) error: %v", tt.body, err)
			}
			if got != tt.want {
				t.Errorf("Checksum(%q) = %c, want %c", tt.body, got, tt.want)
			}
		})
	}
}

// checksumOf recomputes the expected letter independently of the
// implementation's loop, as a cross-check of the table-driven scheme.
func checksumOf(t *testing.T, body string) byte {
	t.Helper()
	odd := [26]int{1, 0, 5, 7, 9, 13, 15, 17, 19, 21, 2, 4, 18, 20, 11, 3, 6, 8, 12, 14, 16, 10, 22, 25, 24, 23}
	sum := 0
	for i := 0; i < len(body); i++ {
		v := int(body[i] - 'A')
		if body[i] <= '9' {
			v = int(body[i] - '0')
		}
		if i%2 == 0 {
			sum += odd[v]
		} else {
			sum += v
		}
	}
	return byte('A' + sum%26)
}

func TestChecksumStable(t *testing.T) {
	a, err := Checksum("RSSMRA50E04A131")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Checksum("RSSMRA50E04A131")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("repeated calls disagree: %c vs %c", a, b)
	}
}

func TestChecksumSensitivity(t *testing.T) {
	// changing any single character must change the result: odd positions
	// go through a permutation, even positions contribute directly, so
	// two distinct values always shift the sum by a nonzero amount mod 26
	body := "RSSMRA50E04A131"
	orig, err := Checksum(body)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < len(body); i++ {
		mutated := []byte(body)
		if mutated[i] >= '0' && mutated[i] <= '9' {
			mutated[i] = '0' + (mutated[i]-'0'+1)%10
		} else {
			mutated[i] = 'A' + (mutated[i]-'A'+1)%26
		}

		got, err := Checksum(string(mutated))
		if err != nil {
			t.Fatalf("position %d: %v", i, err)
		}
		if got == orig {
			t.Errorf("mutating position %d did not change the checksum", i)
		}
	}
}

func TestChecksumRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"too short", "RSSMRA50E04A13"},
		{"too long", "RSSMRA50E04A1311"},
		{"empty", ""},
		{"lowercase", "rssmra50e04a131"},
		{"symbol", "RSSMRA50E04A13!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Checksum(tt.body); err == nil {
				t.Errorf("Checksum(%q) expected error", tt.body)
			}
		})
	}
}
