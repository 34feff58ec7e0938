// Package sheetstore provides the append-and-scan primitive over the remote
// tabular store. It knows nothing about row identity or ticket semantics.
package sheetstore

import "context"

// TableStore is the capability surface the repository depends on. Reads
// return every row of the tab including the header; writes append a single
// row after the last populated one. Transport failures surface as opaque
// errors; no retries happen here.
type TableStore interface {
	ReadAllRows(ctx context.Context, spreadsheetID, tabName string) ([][]string, error)
	AppendRow(ctx context.Context, spreadsheetID, tabName string, row []string) error
}
