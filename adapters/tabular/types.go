package tabular

// RawRow represents one data row as string key-value pairs keyed by
// the lowercased column header.
type RawRow map[string]string

// Table represents the complete loaded dataset
type Table struct {
	Headers []string // Column headers, lowercased and trimmed
	Rows    []RawRow // Data rows
}

// HasColumn reports whether the table carries the given column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}
