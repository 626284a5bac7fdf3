// SPDX-License-Identifier: MIT
package core

// RawFields keeps the last bound raw value per field label, indexed by row
// code, column key and cell. Field labels need not be rendered measures.
type RawFields struct {
	Rows    map[string]map[string]any
	Columns map[string]map[string]any
	Cells   map[string]map[string]any // cellKey(row,col) -> field -> raw
}

// NewRawFields returns empty field maps.
func NewRawFields() *RawFields {
	return &RawFields{
		Rows:    make(map[string]map[string]any),
		Columns: make(map[string]map[string]any),
		Cells:   make(map[string]map[string]any),
	}
}

func put(m map[string]map[string]any, key, field string, raw any) {
	f, ok := m[key]
	if !ok {
		f = make(map[string]any)
		m[key] = f
	}
	f[field] = raw
}

// PutRow records field=raw for row code.
func (rf *RawFields) PutRow(code, field string, raw any) { put(rf.Rows, code, field, raw) }

// PutColumn records field=raw for column key.
func (rf *RawFields) PutColumn(key, field string, raw any) { put(rf.Columns, key, field, raw) }

// PutCell records field=raw for the (row, col) cell.
func (rf *RawFields) PutCell(row, col, field string, raw any) {
	put(rf.Cells, cellKey(row, col), field, raw)
}

// Row returns the raw value of field for row code.
func (rf *RawFields) Row(code, field string) (any, bool) {
	v, ok := rf.Rows[code][field]
	return v, ok
}

// Column returns the raw value of field for column key.
func (rf *RawFields) Column(key, field string) (any, bool) {
	v, ok := rf.Columns[key][field]
	return v, ok
}

// Cell returns the raw value of field for the (row, col) cell.
func (rf *RawFields) Cell(row, col, field string) (any, bool) {
	v, ok := rf.Cells[cellKey(row, col)][field]
	return v, ok
}

func cellKey(row, col string) string {
	return row + "\x00" + col
}
