// Package catalog loads the read-only list of monsters the game draws from.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vytor/dailydle/internal/daykey"
	"github.com/vytor/dailydle/internal/logger"
	"github.com/vytor/dailydle/internal/models"
)

//go:embed data/monsters.json
var embedded []byte

// Catalog is an immutable, indexed list of monsters.
type Catalog struct {
	monsters []models.Monster
	byID     map[int64]int
	byName   map[string]int
}

// Load reads the catalog at path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	log := logger.Default().WithPrefix("catalog")
	if path == "" {
		log.Debug("loading embedded catalog")
		return Parse(embedded)
	}

	log.Info("loading catalog: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Embedded returns the catalog bundled with the binary.
func Embedded() (*Catalog, error) {
	return Parse(embedded)
}

// Parse decodes and validates a JSON array of monsters.
func Parse(data []byte) (*Catalog, error) {
	var monsters []models.Monster
	if err := json.Unmarshal(data, &monsters); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(monsters)
}

// New validates monsters and builds a catalog over a private copy of them.
// Availability dates are normalized to canonical day keys.
func New(monsters []models.Monster) (*Catalog, error) {
	if len(monsters) == 0 {
		return nil, errors.New("catalog: no monsters")
	}

	c := &Catalog{
		monsters: make([]models.Monster, len(monsters)),
		byID:     make(map[int64]int, len(monsters)),
		byName:   make(map[string]int, len(monsters)),
	}

	var errs []error
	for i, m := range monsters {
		m.Name = strings.TrimSpace(m.Name)
		if m.ID <= 0 {
			errs = append(errs, fmt.Errorf("monster %d: id must be positive", m.ID))
		}
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("monster %d: empty name", m.ID))
		}
		if _, dup := c.byID[m.ID]; dup {
			errs = append(errs, fmt.Errorf("monster %d: duplicate id", m.ID))
		}
		key := Normalize(m.Name)
		if _, dup := c.byName[key]; dup && key != "" {
			errs = append(errs, fmt.Errorf("monster %d: duplicate name %q", m.ID, m.Name))
		}
		if m.LevelMin > m.LevelMax {
			errs = append(errs, fmt.Errorf("monster %d: level range %d-%d", m.ID, m.LevelMin, m.LevelMax))
		}
		if m.HPMin > m.HPMax {
			errs = append(errs, fmt.Errorf("monster %d: hp range %d-%d", m.ID, m.HPMin, m.HPMax))
		}
		if m.AvailableFrom != "" {
			k, err := daykey.Parse(string(m.AvailableFrom))
			if err != nil {
				errs = append(errs, fmt.Errorf("monster %d: %w", m.ID, err))
			}
			m.AvailableFrom = k
		}

		c.monsters[i] = m
		c.byID[m.ID] = i
		c.byName[key] = i
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

// All returns a copy of the monsters in catalog order.
func (c *Catalog) All() []models.Monster {
	out := make([]models.Monster, len(c.monsters))
	copy(out, c.monsters)
	return out
}

func (c *Catalog) Len() int { return len(c.monsters) }

func (c *Catalog) ByID(id int64) (models.Monster, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Monster{}, false
	}
	return c.monsters[i], true
}

// ByName finds a monster ignoring case, accents and surrounding space.
func (c *Catalog) ByName(name string) (models.Monster, bool) {
	i, ok := c.byName[Normalize(name)]
	if !ok {
		return models.Monster{}, false
	}
	return c.monsters[i], true
}

// Search returns up to limit monsters whose name contains q, prefix matches
// first, skipping ids in exclude. A limit of zero or less means no limit.
func (c *Catalog) Search(q string, exclude map[int64]bool, limit int) []models.Monster {
	needle := Normalize(q)
	if needle == "" {
		return nil
	}

	var prefix, contains []models.Monster
	for _, m := range c.monsters {
		if exclude[m.ID] {
			continue
		}
		name := Normalize(m.Name)
		switch {
		case strings.HasPrefix(name, needle):
			prefix = append(prefix, m)
		case strings.Contains(name, needle):
			contains = append(contains, m)
		}
	}

	out := append(prefix, contains...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Normalize lowercases s, strips diacritics and collapses whitespace.
func Normalize(s string) string {
	// Chains carry buffers, so each call builds its own.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
