package tablehtml

// Columns returns the ordered column list for records: every key of every
// record exactly once, in first-seen order, with order's names (those
// present) moved to the front in the order given.
func Columns(records []Record, order []string) []string {
	seen := make(map[string]bool)
	var union []string
	for _, rec := range records {
		for _, f := range rec {
			if !seen[f.Key] {
				seen[f.Key] = true
				union = append(union, f.Key)
			}
		}
	}
	if len(order) == 0 {
		return union
	}

	cols := make([]string, 0, len(union))
	placed := make(map[string]bool, len(order))
	for _, name := range order {
		if seen[name] && !placed[name] {
			placed[name] = true
			cols = append(cols, name)
		}
	}
	for _, name := range union {
		if !placed[name] {
			cols = append(cols, name)
		}
	}
	return cols
}

func (r *Renderer) columns(rows []row) []string {
	return Columns(present(rows), r.cfg.HeadersOrder)
}

// Resolve returns the columns and records of in as a table would show them.
// Elements that are not mappings are left out of records.
func (r *Renderer) Resolve(in Input) ([]string, []Record) {
	if in == nil {
		return nil, nil
	}
	records := present(in.rows())
	return Columns(records, r.cfg.HeadersOrder), records
}

func present(rows []row) []Record {
	records := make([]Record, 0, len(rows))
	for _, rw := range rows {
		if rw.ok {
			records = append(records, rw.rec)
		}
	}
	return records
}

// DisplayName returns the configured display name for a raw column name,
// or the name itself.
func (r *Renderer) DisplayName(column string) string {
	if name, ok := r.cfg.Headers[column]; ok {
		return name
	}
	return column
}
