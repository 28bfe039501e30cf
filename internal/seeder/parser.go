package seeder

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexivanou/composer-atlas/internal/config"
	"github.com/alexivanou/composer-atlas/internal/model"
)

// wikidataPrefixes are stripped from row identifiers, leaving the bare Q-id
var wikidataPrefixes = []string{
	"http://www.wikidata.org/entity/",
	"https://www.wikidata.org/entity/",
}

// RawComposer is one row of the composers export, before city resolution
type RawComposer struct {
	ID          string
	Name        string
	Birthplace  string
	CoordsBirth string
	BirthDate   string
	Deathplace  string
	CoordsDeath string
	DeathDate   string
}

// UserSeed is one row of the users file. Password is plaintext and is hashed
// by the seeder before it reaches the store.
type UserSeed struct {
	Name     string
	Email    string
	Password string
}

// Parser parses the CSV exports
type Parser struct {
	dataDir       string
	composersFile string
	citiesFile    string
	usersFile     string
}

// NewParser creates a new parser instance with config
func NewParser(seederCfg config.SeederConfig) *Parser {
	return &Parser{
		dataDir:       seederCfg.DataDir,
		composersFile: seederCfg.ComposersFile,
		citiesFile:    seederCfg.CitiesFile,
		usersFile:     seederCfg.UsersFile,
	}
}

// ParseCities parses the cities export (columns item, itemLabel, coords)
func (p *Parser) ParseCities() ([]model.City, error) {
	file, err := os.Open(filepath.Join(p.dataDir, p.citiesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p.citiesFile, err)
	}
	defer file.Close()

	return parseCitiesFromReader(file)
}

// ParseComposers parses the composers export
func (p *Parser) ParseComposers() ([]RawComposer, error) {
	file, err := os.Open(filepath.Join(p.dataDir, p.composersFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p.composersFile, err)
	}
	defer file.Close()

	return parseComposersFromReader(file)
}

// ParseUsers parses the optional users file (columns name, email, password).
// A missing file yields no users.
func (p *Parser) ParseUsers() ([]UserSeed, error) {
	if p.usersFile == "" {
		return nil, nil
	}
	file, err := os.Open(filepath.Join(p.dataDir, p.usersFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", p.usersFile, err)
	}
	defer file.Close()

	return parseUsersFromReader(file)
}

func parseCitiesFromReader(reader io.Reader) ([]model.City, error) {
	var cities []model.City
	err := readRecords(reader, func(rec record) {
		id := normalizeID(rec.get("item"))
		if id == "" {
			return
		}
		cities = append(cities, model.City{
			ID:          id,
			Name:        rec.get("itemLabel"),
			Coordinates: ParsePoint(rec.get("coords")),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read cities: %w", err)
	}
	return cities, nil
}

func parseComposersFromReader(reader io.Reader) ([]RawComposer, error) {
	var composers []RawComposer
	err := readRecords(reader, func(rec record) {
		id := normalizeID(rec.get("item"))
		if id == "" {
			return
		}
		composers = append(composers, RawComposer{
			ID:          id,
			Name:        rec.get("itemLabel"),
			Birthplace:  rec.get("birthplaceLabel"),
			CoordsBirth: rec.get("coordsBirth"),
			BirthDate:   rec.get("birthDate"),
			Deathplace:  rec.get("deathplaceLabel"),
			CoordsDeath: rec.get("coordsDeath"),
			DeathDate:   rec.get("deathDate"),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read composers: %w", err)
	}
	return composers, nil
}

func parseUsersFromReader(reader io.Reader) ([]UserSeed, error) {
	var users []UserSeed
	err := readRecords(reader, func(rec record) {
		email := rec.get("email")
		if email == "" || rec.get("password") == "" {
			return
		}
		users = append(users, UserSeed{
			Name:     rec.get("name"),
			Email:    email,
			Password: rec.get("password"),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}

// record is a CSV row addressed by header name
type record struct {
	columns map[string]int
	fields  []string
}

func (r record) get(column string) string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

// readRecords consumes the whole file, calling fn for every data row.
// Rows may be ragged; missing trailing columns read as empty.
func readRecords(reader io.Reader, fn func(record)) error {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		columns[name] = i
	}

	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fn(record{columns: columns, fields: fields})
	}
}

func normalizeID(id string) string {
	for _, prefix := range wikidataPrefixes {
		id = strings.TrimPrefix(id, prefix)
	}
	return id
}
