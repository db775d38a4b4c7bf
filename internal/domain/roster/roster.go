// Package roster normalizes external competitor records into the canonical
// in-memory roster the pipeline consumes.
//
// Two container shapes are accepted at the boundary: a bare JSON array of
// records, or the same array nested under a "players" key. Both normalize to
// one []model.Profile; the rest of the system never sees the wire shape.
package roster

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/okian/rondo/internal/domain/model"
)

// record is the wire shape of one competitor. Optional fields are pointers so
// absence survives normalization.
type record struct {
	ID            *int     `json:"id"`
	Name          string   `json:"name"`
	RankCurrent   string   `json:"rank_current"`
	RankPeak      string   `json:"rank_peak"`
	KDRatio       *float64 `json:"kd_ratio"`
	CombatScore   *float64 `json:"average_combat_score"`
	WinRate       *float64 `json:"win_rate"`
	HeadshotRate  *float64 `json:"headshot_rate"`
	AccountLevel  *int     `json:"account_level"`
	RankedMatches *int     `json:"total_ranked_matches"`
	AdminRating   *int     `json:"admin_skill_rating"`
	Familiarity   *int     `json:"admin_familiarity"`
}

// wrapped is the nested container shape.
type wrapped struct {
	Players []record `json:"players"`
}

// ParseFile reads and normalizes a roster file.
func ParseFile(path string) ([]model.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes either accepted container shape and returns the canonical
// roster. A missing id is assigned sequentially from the record's position.
func Parse(r io.Reader) ([]model.Profile, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
	}

	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		var w wrapped
		if err := json.Unmarshal(raw, &w); err != nil || w.Players == nil {
			return nil, fmt.Errorf("%w: expected a record array or a {\"players\": [...]} object", ErrInvalidRoster)
		}
		records = w.Players
	}

	return normalize(records)
}

// Write encodes raw profiles in the nested container shape accepted by
// Parse. Only input fields are serialized; derived scores never leave the
// pipeline through this path.
func Write(w io.Writer, profiles []model.Profile) error {
	records := make([]record, len(profiles))
	for i, p := range profiles {
		id := p.ID
		kd := p.KDRatio
		records[i] = record{
			ID:            &id,
			Name:          p.Name,
			RankCurrent:   p.RankCurrent,
			RankPeak:      p.RankPeak,
			KDRatio:       &kd,
			CombatScore:   p.CombatScore,
			WinRate:       p.WinRate,
			HeadshotRate:  p.HeadshotRate,
			AccountLevel:  p.AccountLevel,
			RankedMatches: p.RankedMatches,
			AdminRating:   p.AdminRating,
			Familiarity:   p.Familiarity,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(wrapped{Players: records}); err != nil {
		return fmt.Errorf("encoding roster: %w", err)
	}
	return nil
}

// normalize validates records and maps them onto model profiles.
func normalize(records []record) ([]model.Profile, error) {
	profiles := make([]model.Profile, 0, len(records))
	seen := make(map[int]string, len(records))

	for i, rec := range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("%w: record %d: name", ErrMissingField, i+1)
		}
		if rec.RankCurrent == "" {
			return nil, fmt.Errorf("%w: competitor %q: rank_current", ErrMissingField, rec.Name)
		}
		if rec.KDRatio == nil {
			return nil, fmt.Errorf("%w: competitor %q: kd_ratio", ErrMissingField, rec.Name)
		}

		id := i + 1
		if rec.ID != nil {
			id = *rec.ID
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %d used by %q and %q", ErrDuplicateID, id, prev, rec.Name)
		}
		seen[id] = rec.Name

		profiles = append(profiles, model.Profile{
			ID:            id,
			Name:          rec.Name,
			RankCurrent:   rec.RankCurrent,
			RankPeak:      rec.RankPeak,
			KDRatio:       *rec.KDRatio,
			CombatScore:   rec.CombatScore,
			WinRate:       rec.WinRate,
			HeadshotRate:  rec.HeadshotRate,
			AccountLevel:  rec.AccountLevel,
			RankedMatches: rec.RankedMatches,
			AdminRating:   rec.AdminRating,
			Familiarity:   rec.Familiarity,
		})
	}

	return profiles, nil
}
