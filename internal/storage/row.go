package storage

// Row is one result row keyed by column name. Values keep the driver's
// native types: INTEGER columns arrive as int64, REAL as float64, TEXT as
// string, BLOB as []byte and NULL as nil. The typed getters below absorb the
// conversions the entity modules need, returning the zero value for NULL or
// absent columns.
type Row map[string]any

// String returns the column as a string, converting BLOB bytes if needed.
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// Int64 returns the column as an int64, truncating REAL values.
func (r Row) Int64(column string) int64 {
	switch v := r[column].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// Int returns the column as an int.
func (r Row) Int(column string) int { return int(r.Int64(column)) }

// Float64 returns the column as a float64, widening INTEGER values.
func (r Row) Float64(column string) float64 {
	switch v := r[column].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

// Bytes returns the column as a byte slice, or nil for NULL.
func (r Row) Bytes(column string) []byte {
	switch v := r[column].(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	}
	return nil
}
