package fiscalcode

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func marioRossi() Person {
	return Person{
		FirstName: "Mario",
		LastName:  "Rossi",
		BirthDate: date(1950, 5, 4),
		Gender:    Male,
		PlaceCode: "A131",
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		person Person
		want   string
	}{
		{
			name:   "reference male",
			person: marioRossi(),
			want:   "RSSMRA50E04A131O",
		},
		{
			name: "female day offset",
			person: Person{
				FirstName: "Giulia",
				LastName:  "Bianchi",
				BirthDate: date(1991, 7, 22),
				Gender:    Female,
				PlaceCode: "D612",
			},
			want: "BNCGLI91L62D612T",
		},
		{
			name: "lowercase input normalized",
			person: Person{
				FirstName: "mario",
				LastName:  "rossi",
				BirthDate: date(1950, 5, 4),
				Gender:    Male,
				PlaceCode: "a131",
			},
			want: "RSSMRA50E04A131O",
		},
		{
			name: "accented names",
			person: Person{
				FirstName: "Niccolò",
				LastName:  "Carrà",
				BirthDate: date(1985, 1, 1),
				Gender:    Male,
				PlaceCode: "Z404",
			},
			want: "CRRNCL85A01Z404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.person)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if len(got) != 16 {
				t.Fatalf("Encode() length = %d, want 16", len(got))
			}
			if len(tt.want) == 16 && got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
			if len(tt.want) == 15 && got[:15] != tt.want {
				t.Errorf("Encode() body = %q, want %q", got[:15], tt.want)
			}
			if !IsValid(got) {
				t.Errorf("Encode() produced invalid code %q", got)
			}
		})
	}
}

func TestEncodeInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Person)
		wantErr error
	}{
		{"empty first name", func(p *Person) { p.FirstName = "" }, ErrMissingField},
		{"blank first name", func(p *Person) { p.FirstName = "   " }, ErrMissingField},
		{"empty last name", func(p *Person) { p.LastName = "" }, ErrMissingField},
		{"empty place code", func(p *Person) { p.PlaceCode = "" }, ErrMissingField},
		{"short place code", func(p *Person) { p.PlaceCode = "A13" }, ErrBadPlaceCode},
		{"long place code", func(p *Person) { p.PlaceCode = "A1311" }, ErrBadPlaceCode},
		{"invalid gender", func(p *Person) { p.Gender = Gender(3) }, ErrInvalidGender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := marioRossi()
			tt.mutate(&p)

			_, err := Encode(p)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	people := []Person{
		marioRossi(),
		{FirstName: "Anna", LastName: "Esposito", BirthDate: date(1972, 2, 29), Gender: Female, PlaceCode: "F839"},
		{FirstName: "Gianfranco", LastName: "De Luca", BirthDate: date(2001, 11, 9), Gender: Male, PlaceCode: "H501"},
		{FirstName: "Aaaa", LastName: "Fo", BirthDate: date(1999, 12, 31), Gender: Female, PlaceCode: "L219"},
	}

	for _, p := range people {
		code, err := Encode(p)
		if err != nil {
			t.Fatalf("Encode(%+v) error: %v", p, err)
		}
		if !IsValid(code) {
			t.Errorf("IsValid(%q) = false for freshly encoded code", code)
		}
		if !IsValidFor(code, p) {
			t.Errorf("IsValidFor(%q) = false for the encoding person", code)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"reference code", "RSSMRA50E04A131O", true},
		{"lowercase accepted", "rssmra50e04a131o", true},
		{"surrounding whitespace accepted", " RSSMRA50E04A131O ", true},
		{"omocode form", "RSSMRA50E04A13MG", true},
		{"empty", "", false},
		{"short", "short", false},
		{"fifteen characters", "RSSMRA50E04A131", false},
		{"seventeen characters", "RSSMRA50E04A131OO", false},
		{"bad checksum", "RSSMRA50E04A131P", false},
		{"digit where letter required", "R5SMRA50E04A131O", false},
		{"letter outside omocode alphabet in digit slot", "RSSMRA5ZE04A131O", false},
		{"symbols", "RSSMRA50E04A13!O", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.code); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestIsValidChecksumUsesOriginalPrefix(t *testing.T) {
	// an omocode form whose checksum was computed over the stripped body
	// instead of the issued body must be rejected
	body := "RSSMRA50E04A13M"
	strippedCheck, err := Checksum(StripOmocode(body))
	if err != nil {
		t.Fatal(err)
	}
	wrong := body + string(strippedCheck)
	if IsValid(wrong) {
		t.Errorf("IsValid(%q) = true, checksum must cover the issued form", wrong)
	}
}

func TestIsValidFor(t *testing.T) {
	code, err := Encode(marioRossi())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		code   string
		mutate func(*Person)
		want   bool
	}{
		{"matching identity", code, func(*Person) {}, true},
		{"wrong first name", code, func(p *Person) { p.FirstName = "Marco" }, false},
		{"wrong last name", code, func(p *Person) { p.LastName = "Bianchi" }, false},
		{"wrong birth date", code, func(p *Person) { p.BirthDate = date(1950, 5, 5) }, false},
		{"wrong gender", code, func(p *Person) { p.Gender = Female }, false},
		{"wrong place", code, func(p *Person) { p.PlaceCode = "A132" }, false},
		{"empty first name", code, func(p *Person) { p.FirstName = "" }, false},
		{"empty place", code, func(p *Person) { p.PlaceCode = "" }, false},
		{"invalid code", "RSSMRA50E04A131P", func(*Person) {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := marioRossi()
			tt.mutate(&p)
			if got := IsValidFor(tt.code, p); got != tt.want {
				t.Errorf("IsValidFor(%q, %+v) = %v, want %v", tt.code, p, got, tt.want)
			}
		})
	}
}

func TestIsValidForOmocodeForm(t *testing.T) {
	// place-code digits are compared in stripped form, so every omocode
	// variant of a person's code still matches that person
	p := marioRossi()
	variants, err := OmocodeVariants("RSSMRA50E04A131O")
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range variants {
		if !IsValidFor(v, p) {
			t.Errorf("IsValidFor(%q) = false for an omocode variant of the person's code", v)
		}
	}
}

func TestIsValidForAgreesWithIsValid(t *testing.T) {
	p := marioRossi()
	codes := []string{
		"RSSMRA50E04A131O",
		"RSSMRA50E04A131P",
		"BNCGLI91L62D612T",
		"",
		"short",
	}

	for _, c := range codes {
		if IsValidFor(c, p) && !IsValid(c) {
			t.Errorf("IsValidFor(%q) true but IsValid false", c)
		}
	}
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		in      string
		want    Gender
		wantErr bool
	}{
		{"M", Male, false},
		{"m", Male, false},
		{"F", Female, false},
		{"female", Female, false},
		{" Male ", Male, false},
		{"", 0, true},
		{"X", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGender(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGender(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseGender(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenderJSON(t *testing.T) {
	if s := Male.String(); s != "M" {
		t.Errorf("Male.String() = %q, want M", s)
	}
	if s := Female.String(); s != "F" {
		t.Errorf("Female.String() = %q, want F", s)
	}

	b, err := Female.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"F"` {
		t.Errorf("MarshalJSON = %s, want \"F\"", b)
	}

	var g Gender
	if err := g.UnmarshalJSON([]byte(`"f"`)); err != nil {
		t.Fatal(err)
	}
	if g != Female {
		t.Errorf("UnmarshalJSON = %v, want Female", g)
	}
	if err := g.UnmarshalJSON([]byte(`"?"`)); err == nil {
		t.Error("expected error for unknown gender")
	}
}
