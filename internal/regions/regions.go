// Package regions holds the static seat configuration: which PR blocks exist,
// how many seats each carries, and which FPTP districts are valid.
//
// The table is versioned data, not code. Apportionment bases change with
// redistricting, so a new table is a new YAML file rather than a rebuild.
package regions

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed hr2017.yaml
var defaultTable []byte

type Block struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
	Seats   int      `yaml:"seats"`
}

type Table struct {
	Version   string   `yaml:"version"`
	PRSeats   int      `yaml:"pr_seats"`
	FPTPSeats int      `yaml:"fptp_seats"`
	Blocks    []Block  `yaml:"blocks"`
	Districts []string `yaml:"districts,omitempty"`

	blockByName map[string]*Block
	districtSet map[string]struct{}
}

// Default returns the 2017 House of Representatives table.
func Default() *Table {
	t, err := Load(bytes.NewReader(defaultTable))
	if err != nil {
		panic(fmt.Sprintf("embedded seat table: %v", err))
	}
	return t
}

func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seat table: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("invalid seat table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks the table and builds its lookup indexes. It must be called
// on a Table assembled by hand before any lookup.
func (t *Table) Validate() error {
	t.blockByName = make(map[string]*Block, len(t.Blocks)*2)
	sum := 0
	for i := range t.Blocks {
		b := &t.Blocks[i]
		if b.ID == "" {
			return fmt.Errorf("block #%d has no id", i+1)
		}
		if b.Seats <= 0 {
			return fmt.Errorf("block %s: seats must be positive, got %d", b.ID, b.Seats)
		}
		for _, name := range append([]string{b.ID, b.Name}, b.Aliases...) {
			if name == "" {
				continue
			}
			key := normalize(name)
			if other, ok := t.blockByName[key]; ok && other != b {
				return fmt.Errorf("block name %q used by both %s and %s", name, other.ID, b.ID)
			}
			t.blockByName[key] = b
		}
		sum += b.Seats
	}
	if sum != t.PRSeats {
		return &SeatConfigMismatchError{Want: t.PRSeats, Got: sum}
	}

	t.districtSet = make(map[string]struct{}, len(t.Districts))
	for _, d := range t.Districts {
		if _, ok := t.districtSet[d]; ok {
			return fmt.Errorf("district %s listed twice", d)
		}
		t.districtSet[d] = struct{}{}
	}
	return nil
}

// Seats returns the configured seat count of a block identifier.
func (t *Table) Seats(block string) (int, error) {
	for i := range t.Blocks {
		if t.Blocks[i].ID == block {
			return t.Blocks[i].Seats, nil
		}
	}
	return 0, &UnknownRegionError{Kind: KindBlock, Name: block}
}

// ResolveBlock maps an identifier, display name, alias or 1-based block
// number to the block id.
func (t *Table) ResolveBlock(name string) (string, error) {
	if b, ok := t.blockByName[normalize(name)]; ok {
		return b.ID, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(name)); err == nil && n >= 1 && n <= len(t.Blocks) {
		return t.Blocks[n-1].ID, nil
	}
	return "", &UnknownRegionError{Kind: KindBlock, Name: name}
}

// ResolveDistrict accepts any name when the table lists no districts.
func (t *Table) ResolveDistrict(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &UnknownRegionError{Kind: KindDistrict, Name: name}
	}
	if len(t.districtSet) == 0 {
		return name, nil
	}
	if _, ok := t.districtSet[name]; !ok {
		return "", &UnknownRegionError{Kind: KindDistrict, Name: name}
	}
	return name, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
