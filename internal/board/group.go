package board

import "board/internal/models"

// Group partitions a flat project list into board columns. Archived
// projects are dropped, everything else lands in exactly one column and the
// relative input order is preserved within each column.
func Group(projects []models.Project) models.Columns {
	columns := EmptyColumns()
	for _, p := range projects {
		columnID, ok := models.ColumnForStatus(p.Status)
		if !ok {
			continue
		}
		columns[columnID] = append(columns[columnID], p)
	}
	return columns
}

// EmptyColumns returns a Columns value with every board column present and
// empty, so callers never have to nil-check a column key.
func EmptyColumns() models.Columns {
	columns := make(models.Columns, len(models.ColumnIDs))
	for _, id := range models.ColumnIDs {
		columns[id] = []models.Project{}
	}
	return columns
}
