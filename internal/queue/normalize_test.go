package queue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUserColumn(t *testing.T) {
	sheet := requestSheet(
		row("6/14/2025 17:00:00", "Alex", "Wobble", ""),
		row("6/14/2025 19:00:00", "Jordan", "Electric Slide", "Played"),
	)

	records, schema, err := Normalize(sheet, DefaultAliases())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{
		Position:     1,
		RawTimestamp: "6/14/2025 17:00:00",
		Submitter:    "Alex",
		Song:         "Wobble",
		DanceName:    "Cupid Shuffle",
		Mood:         "Hype",
		DanceLevel:   "Beginner",
	}, records[0])
	assert.Equal(t, 2, records[1].Position)
	assert.Equal(t, "Played", records[1].Status)
	assert.Equal(t, "User", schema.Label(FieldSubmitter))
	assert.False(t, schema.Has(FieldArtist))
}

func TestNormalizeSubmittedByColumn(t *testing.T) {
	sheet := Sheet{
		Header: []string{"Timestamp", "Submitted By", "Song", "Artist"},
		Rows: []map[string]string{
			{"Timestamp": "6/14/2025 17:00:00", "Submitted By": "Sam", "Song": "Boot Scootin' Boogie", "Artist": "Brooks & Dunn"},
		},
	}
	records, schema, err := Normalize(sheet, DefaultAliases())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Sam", records[0].Submitter)
	assert.Equal(t, "Brooks & Dunn", records[0].Artist)
	assert.Equal(t, "Submitted By", schema.Label(FieldSubmitter))
}

func TestNormalizeTrimsHeaderNames(t *testing.T) {
	sheet := Sheet{
		Header: []string{" Timestamp", "User  ", "\tSong"},
		Rows: []map[string]string{
			{" Timestamp": "6/14/2025 17:00:00", "User  ": "Alex", "\tSong": "Wobble"},
		},
	}
	records, schema, err := Normalize(sheet, DefaultAliases())
	require.NoError(t, err)
	assert.Equal(t, "Alex", records[0].Submitter)
	assert.Equal(t, "Wobble", records[0].Song)
	assert.Equal(t, "User", schema.Label(FieldSubmitter))
}

func TestNormalizeMissingOptionalFieldsAreEmpty(t *testing.T) {
	sheet := requestSheet(map[string]string{"Timestamp": "6/14/2025 17:00:00", "User": "Alex"})
	records, _, err := Normalize(sheet, DefaultAliases())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Song)
	assert.Empty(t, records[0].Status)
	assert.Empty(t, records[0].Mood)
}

func TestNormalizeMissingTimestampColumn(t *testing.T) {
	sheet := Sheet{
		Header: []string{"User", "Song"},
		Rows: []map[string]string{
			{"User": "Alex", "Song": "Wobble"},
			{"User": "Jordan", "Song": "Electric Slide"},
		},
	}
	records, _, err := Normalize(sheet, DefaultAliases())
	require.Error(t, err)
	assert.Nil(t, records)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"Timestamp"}, schemaErr.Missing)
	assert.Equal(t, "missing required column(s): Timestamp", err.Error())
}

func TestNormalizeMissingBothRequiredColumns(t *testing.T) {
	_, _, err := Normalize(Sheet{Header: []string{"Song", "Mood"}}, DefaultAliases())

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Timestamp", "User or Submitted By"}, schemaErr.Missing)
}

func TestNormalizeEmptySheetHasNoSchema(t *testing.T) {
	_, _, err := Normalize(Sheet{}, DefaultAliases())
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestNormalizeHeaderOnly(t *testing.T) {
	records, _, err := Normalize(requestSheet(), DefaultAliases())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAliasesMerge(t *testing.T) {
	base := DefaultAliases()
	merged := base.Merge(map[Field][]string{
		FieldSubmitter: {"Guest"},
		FieldMood:      nil,
	})

	assert.Equal(t, []string{"Guest"}, merged[FieldSubmitter])
	assert.Equal(t, base[FieldMood], merged[FieldMood])
	assert.Equal(t, []string{"User", "Submitted By"}, base[FieldSubmitter], "base must not change")

	sheet := Sheet{
		Header: []string{"Timestamp", "Guest"},
		Rows:   []map[string]string{{"Timestamp": "6/14/2025 17:00:00", "Guest": "Pat"}},
	}
	records, _, err := Normalize(sheet, merged)
	require.NoError(t, err)
	assert.Equal(t, "Pat", records[0].Submitter)
}

func TestSchemaColumns(t *testing.T) {
	schema, err := ResolveSchema([]string{"Status", "Song", "User", "Timestamp", "Notes"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []Column{
		{Field: FieldSubmittedAt, Label: "Timestamp"},
		{Field: FieldSubmitter, Label: "User"},
		{Field: FieldSong, Label: "Song"},
		{Field: FieldStatus, Label: "Status"},
		{Field: FieldRequestType, Label: "Request Type"},
	}, schema.Columns())
}
