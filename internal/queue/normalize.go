package queue

// Sheet is what a Source returns: the header row and one mapping per data
// row, keyed by the header cells exactly as they appear in the sheet.
type Sheet struct {
	Header []string
	Rows   []map[string]string
}

// Normalize validates the sheet against the alias table and builds one
// Record per row. Optional columns that are absent read as "". On a
// *SchemaError no records are returned.
func Normalize(sheet Sheet, aliases Aliases) ([]Record, Schema, error) {
	schema, err := ResolveSchema(sheet.Header, aliases)
	if err != nil {
		return nil, Schema{}, err
	}
	records := make([]Record, 0, len(sheet.Rows))
	for i, row := range sheet.Rows {
		records = append(records, schema.record(i+1, row))
	}
	return records, schema, nil
}
