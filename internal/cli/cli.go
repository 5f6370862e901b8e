// Package cli implements the command-line subcommands.
package cli

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/extract"
	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/fiscalcode"
	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/record"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"golang.org/x/term"
)

const birthLayout = "2006-01-02"

// DataDir returns the default data directory.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/codicefiscale"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codicefiscale"
	}
	return home + "/.local/share/codicefiscale"
}

// ReadPassword prompts for a password on stderr and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) (string, error) {
	pass, err := ReadPassword("master password: ", w)
	if err != nil {
		return "", err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// IsFirstRun checks whether the store has been initialized.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(dir + "/salt")
	return err != nil
}

// OpenStore prompts for a password and opens the store, returning both the
// store and the saved-records collection.
func OpenStore(dir string) (*zstore.Store, *zstore.Collection[record.Record], error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	var pass string
	var err error
	if IsFirstRun(dir) {
		pass, err = ReadNewPassword(os.Stderr)
	} else {
		pass, err = ReadPassword("master password: ", os.Stderr)
	}
	if err != nil {
		return nil, nil, err
	}

	fsys := zfilesystem.NewOSFileSystem(dir)
	s, err := zstore.Open(fsys, []byte(pass))
	if err != nil {
		return nil, nil, err
	}

	col, err := zstore.NewCollection[record.Record](s, "records")
	if err != nil {
		s.Close()
		return nil, nil, err
	}

	return s, col, nil
}

// CmdEncode computes a fiscal code from identity flags and prints it.
func CmdEncode(args []string) {
	p, err := parsePerson(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "codicefiscale: %v\n", err)
		fmt.Fprintln(os.Stderr, "usage: codicefiscale encode --first NAME --last NAME --birth YYYY-MM-DD --gender M|F --place CODE [--json] [--save]")
		os.Exit(2)
	}

	code, err := fiscalcode.Encode(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "codicefiscale: encode: %v\n", err)
		os.Exit(1)
	}

	if hasFlag(args, "--json") {
		printJSON(encodeOutput{
			Code:      code,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			BirthDate: p.BirthDate.Format(birthLayout),
			Gender:    p.Gender.String(),
			PlaceCode: p.PlaceCode,
		})
	} else {
		fmt.Println(code)
	}

	if hasFlag(args, "--save") {
		saveRecord(p, code)
	}
}

// CmdValidate checks a code, optionally against identity flags, and exits
// non-zero when the code is invalid.
func CmdValidate(args []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "--") {
		fmt.Fprintln(os.Stderr, "usage: codicefiscale validate CODE [identity flags]")
		os.Exit(2)
	}
	code := args[0]

	var valid bool
	if hasIdentityFlags(args) {
		p, err := parsePerson(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "codicefiscale: %v\n", err)
			os.Exit(2)
		}
		valid = fiscalcode.IsValidFor(code, p)
	} else {
		valid = fiscalcode.IsValid(code)
	}

	if hasFlag(args, "--json") {
		printJSON(validateOutput{Code: strings.ToUpper(strings.TrimSpace(code)), Valid: valid})
	} else if valid {
		fmt.Println("valid")
	} else {
		fmt.Println("invalid")
	}

	if !valid {
		os.Exit(1)
	}
}

// CmdDecode extracts the birth data and place code from a code.
func CmdDecode(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: codicefiscale decode CODE [--json]")
		os.Exit(2)
	}

	d, err := fiscalcode.Decode(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "codicefiscale: decode: %v\n", err)
		os.Exit(1)
	}

	if hasFlag(args, "--json") {
		printJSON(decodeOutput{
			BirthDate: d.BirthDate.Format(birthLayout),
			Gender:    d.Gender.String(),
			PlaceCode: d.PlaceCode,
		})
		return
	}

	fmt.Printf("  birth date: %s\n", d.BirthDate.Format(birthLayout))
	fmt.Printf("  gender:     %s\n", d.Gender)
	fmt.Printf("  place code: %s\n", d.PlaceCode)
}

// CmdOmocodes prints the 127 omocode variants of a code.
func CmdOmocodes(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: codicefiscale omocodes CODE")
		os.Exit(2)
	}

	variants, err := fiscalcode.OmocodeVariants(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "codicefiscale: omocodes: %v\n", err)
		os.Exit(1)
	}

	if hasFlag(args, "--json") {
		printJSON(variants)
		return
	}

	for _, v := range variants {
		fmt.Println(v)
	}
}

// CmdScan finds fiscal codes in text read from the arguments or stdin.
func CmdScan(args []string) {
	var text string
	if len(args) > 0 && !strings.HasPrefix(args[0], "--") {
		text = strings.Join(args, " ")
	} else {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "codicefiscale: scan: %v\n", err)
			os.Exit(1)
		}
		text = string(b)
	}

	matches := extract.Extract(text)

	if hasFlag(args, "--json") {
		printJSON(matches)
		return
	}

	if len(matches) == 0 {
		fmt.Println("no codes found")
		return
	}

	for _, m := range matches {
		status := "invalid"
		if m.Valid {
			status = "valid"
		}
		fmt.Printf("  %s  %s\n", m.Code, status)
	}
}

// CmdList lists all saved records.
func CmdList(args []string) {
	dir := DataDir()
	s, col, err := OpenStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "codicefiscale: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	recs, err := col.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "codicefiscale: list: %v\n", err)
		os.Exit(1)
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	if len(recs) == 0 {
		fmt.Println("no saved codes")
		return
	}

	if hasFlag(args, "--json") {
		printJSON(recs)
		return
	}

	for _, r := range recs {
		fmt.Printf("  %-10s %-16s %-24s %s\n",
			r.ID,
			r.Code,
			r.FirstName+" "+r.LastName,
			r.CreatedAt.Format(birthLayout),
		)
	}
}

// CmdForget deletes a saved record by ID.
func CmdForget(id string) {
	dir := DataDir()
	s, col, err := OpenStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "codicefiscale: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if err := col.Delete(id); err != nil {
		fmt.Fprintf(os.Stderr, "codicefiscale: forget: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("deleted %s\n", id)
}

type encodeOutput struct {
	Code      string `json:"code"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	PlaceCode string `json:"place_code"`
}

type validateOutput struct {
	Code  string `json:"code"`
	Valid bool   `json:"valid"`
}

type decodeOutput struct {
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	PlaceCode string `json:"place_code"`
}

func saveRecord(p fiscalcode.Person, code string) {
	dir := DataDir()
	s, col, err := OpenStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "codicefiscale: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	r := record.Record{
		ID:        recordHexID(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthDate: p.BirthDate,
		Gender:    p.Gender,
		PlaceCode: p.PlaceCode,
		Code:      code,
		CreatedAt: time.Now().UTC(),
	}

	if err := col.Put(r.ID, r); err != nil {
		fmt.Fprintf(os.Stderr, "codicefiscale: save: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "saved")
}

// parsePerson builds a Person from identity flags.
func parsePerson(args []string) (fiscalcode.Person, error) {
	first := flagValue(args, "--first")
	last := flagValue(args, "--last")
	birth := flagValue(args, "--birth")
	gender := flagValue(args, "--gender")
	place := flagValue(args, "--place")

	if first == "" || last == "" || birth == "" || gender == "" || place == "" {
		return fiscalcode.Person{}, fmt.Errorf("missing identity flag (need --first, --last, --birth, --gender, --place)")
	}

	date, err := time.Parse(birthLayout, birth)
	if err != nil {
		return fiscalcode.Person{}, fmt.Errorf("birth date %q: want YYYY-MM-DD", birth)
	}

	g, err := fiscalcode.ParseGender(gender)
	if err != nil {
		return fiscalcode.Person{}, err
	}

	return fiscalcode.Person{
		FirstName: first,
		LastName:  last,
		BirthDate: date,
		Gender:    g,
		PlaceCode: place,
	}, nil
}

// hasIdentityFlags reports whether any identity flag is present.
func hasIdentityFlags(args []string) bool {
	for _, f := range []string{"--first", "--last", "--birth", "--gender", "--place"} {
		if flagValue(args, f) != "" {
			return true
		}
	}
	return false
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "codicefiscale: encode json: %v\n", err)
		os.Exit(1)
	}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// flagValue returns the value following a flag, or the part after "=" in
// the --flag=value form.
func flagValue(args []string, flag string) string {
	for i, a := range args {
		if strings.EqualFold(a, flag) && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(strings.ToLower(a), flag+"=") {
			return a[len(flag)+1:]
		}
	}
	return ""
}

func recordHexID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	return hex.EncodeToString(b)
}
