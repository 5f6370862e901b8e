package cli

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestDataDir(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{
			name: "xdg set",
			xdg:  "/custom/data",
			want: "/custom/data/codicefiscale",
		},
		{
			name: "xdg empty falls back to home",
			xdg:  "",
			want: "/.local/share/codicefiscale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("XDG_DATA_HOME", tt.xdg)
			defer os.Unsetenv("XDG_DATA_HOME")

			got := DataDir()
			if tt.xdg != "" {
				if got != tt.want {
					t.Errorf("DataDir() = %s, want %s", got, tt.want)
				}
			} else {
				if !strings.HasSuffix(got, tt.want) {
					t.Errorf("DataDir() = %s, want suffix %s", got, tt.want)
				}
			}
		})
	}
}

func TestHasFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
		want bool
	}{
		{"present", []string{"--json", "--save"}, "--json", true},
		{"absent", []string{"--save"}, "--json", false},
		{"empty", nil, "--json", false},
		{"case insensitive", []string{"--JSON"}, "--json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hasFlag(tt.args, tt.flag)
			if got != tt.want {
				t.Errorf("hasFlag(%v, %s) = %v, want %v", tt.args, tt.flag, got, tt.want)
			}
		})
	}
}

func TestFlagValue(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
		want string
	}{
		{"separate value", []string{"--first", "Mario"}, "--first", "Mario"},
		{"equals form", []string{"--first=Mario"}, "--first", "Mario"},
		{"missing", []string{"--last", "Rossi"}, "--first", ""},
		{"flag at end without value", []string{"--first"}, "--first", ""},
		{"empty args", nil, "--first", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flagValue(tt.args, tt.flag)
			if got != tt.want {
				t.Errorf("flagValue(%v, %s) = %q, want %q", tt.args, tt.flag, got, tt.want)
			}
		})
	}
}

func TestParsePerson(t *testing.T) {
	args := []string{
		"--first", "Mario",
		"--last", "Rossi",
		"--birth", "1950-05-04",
		"--gender", "M",
		"--place", "A131",
	}

	p, err := parsePerson(args)
	if err != nil {
		t.Fatalf("parsePerson() error: %v", err)
	}

	if p.FirstName != "Mario" || p.LastName != "Rossi" {
		t.Errorf("name = %s %s, want Mario Rossi", p.FirstName, p.LastName)
	}
	if !p.BirthDate.Equal(time.Date(1950, 5, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("birth date = %v", p.BirthDate)
	}
	if p.PlaceCode != "A131" {
		t.Errorf("place code = %s, want A131", p.PlaceCode)
	}
}

func TestParsePersonErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing flag", []string{"--first", "Mario"}},
		{"bad date", []string{"--first", "Mario", "--last", "Rossi", "--birth", "04/05/1950", "--gender", "M", "--place", "A131"}},
		{"bad gender", []string{"--first", "Mario", "--last", "Rossi", "--birth", "1950-05-04", "--gender", "X", "--place", "A131"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePerson(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHasIdentityFlags(t *testing.T) {
	if hasIdentityFlags([]string{"RSSMRA50E04A131O", "--json"}) {
		t.Error("no identity flags present")
	}
	if !hasIdentityFlags([]string{"RSSMRA50E04A131O", "--first", "Mario"}) {
		t.Error("identity flag should be detected")
	}
}

func TestIsFirstRun(t *testing.T) {
	dir := t.TempDir()
	if !IsFirstRun(dir) {
		t.Error("expected first run for empty dir")
	}

	os.WriteFile(dir+"/salt", []byte("test"), 0o600)
	if IsFirstRun(dir) {
		t.Error("expected not first run after salt exists")
	}
}
