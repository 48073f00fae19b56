package queue

import (
	"slices"
	"strings"
)

// Aliases maps a canonical field to the raw column names accepted for it,
// in order of preference. Early sheets called the submitter column "User",
// later ones "Submitted By".
type Aliases map[Field][]string

// DefaultAliases returns the alias table for the known sheet layouts.
func DefaultAliases() Aliases {
	return Aliases{
		FieldSubmittedAt: {"Timestamp"},
		FieldSubmitter:   {"User", "Submitted By"},
		FieldSong:        {"Song", "Song Title"},
		FieldArtist:      {"Artist"},
		FieldDanceName:   {"Line Dance Name", "Dance Name", "Dance"},
		FieldMood:        {"Mood", "Vibe"},
		FieldDanceLevel:  {"Dance Level", "Level"},
		FieldStatus:      {"Status"},
	}
}

// Merge returns a copy of a where every field present in override replaces
// the default aliases.
func (a Aliases) Merge(override map[Field][]string) Aliases {
	out := make(Aliases, len(a)+len(override))
	for f, names := range a {
		out[f] = slices.Clone(names)
	}
	for f, names := range override {
		if len(names) > 0 {
			out[f] = slices.Clone(names)
		}
	}
	return out
}

// sheetFields lists the fields read from the sheet, in display order.
var sheetFields = []Field{
	FieldSubmittedAt,
	FieldSubmitter,
	FieldSong,
	FieldArtist,
	FieldDanceName,
	FieldMood,
	FieldDanceLevel,
	FieldStatus,
}

var requiredFields = []Field{FieldSubmittedAt, FieldSubmitter}

// SheetFields returns the fields that can be read from a sheet.
func SheetFields() []Field {
	return slices.Clone(sheetFields)
}

// Schema is an alias table resolved against one sheet header.
type Schema struct {
	columns map[Field]string
}

// ResolveSchema matches the header against the alias table. Names are
// compared after trimming surrounding whitespace on both sides. A missing
// required field yields a *SchemaError naming every missing column.
func ResolveSchema(header []string, aliases Aliases) (Schema, error) {
	if aliases == nil {
		aliases = DefaultAliases()
	}

	byName := make(map[string]string, len(header))
	for _, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, dup := byName[name]; !dup {
			byName[name] = raw
		}
	}

	s := Schema{columns: make(map[Field]string)}
	for _, f := range sheetFields {
		for _, alias := range aliases[f] {
			if raw, ok := byName[strings.TrimSpace(alias)]; ok {
				s.columns[f] = raw
				break
			}
		}
	}

	var missing []string
	for _, f := range requiredFields {
		if _, ok := s.columns[f]; !ok {
			missing = append(missing, describe(f, aliases[f]))
		}
	}
	if len(missing) > 0 {
		return Schema{}, &SchemaError{Missing: missing}
	}
	return s, nil
}

func describe(f Field, aliases []string) string {
	if len(aliases) == 0 {
		return string(f)
	}
	return strings.Join(aliases, " or ")
}

// Has reports whether the sheet carries the field.
func (s Schema) Has(f Field) bool {
	_, ok := s.columns[f]
	return ok
}

// Label is the column name as the sheet spells it, trimmed.
func (s Schema) Label(f Field) string {
	if f == FieldRequestType {
		return "Request Type"
	}
	return strings.TrimSpace(s.columns[f])
}

// Columns lists the sheet columns present plus the derived request type.
func (s Schema) Columns() []Column {
	cols := make([]Column, 0, len(s.columns)+1)
	for _, f := range sheetFields {
		if s.Has(f) {
			cols = append(cols, Column{Field: f, Label: s.Label(f)})
		}
	}
	return append(cols, Column{Field: FieldRequestType, Label: s.Label(FieldRequestType)})
}

func (s Schema) record(position int, row map[string]string) Record {
	get := func(f Field) string {
		col, ok := s.columns[f]
		if !ok {
			return ""
		}
		return row[col]
	}
	return Record{
		Position:     position,
		RawTimestamp: get(FieldSubmittedAt),
		Submitter:    get(FieldSubmitter),
		Song:         get(FieldSong),
		Artist:       get(FieldArtist),
		DanceName:    get(FieldDanceName),
		Mood:         get(FieldMood),
		DanceLevel:   get(FieldDanceLevel),
		Status:       get(FieldStatus),
	}
}
