package report

import (
	"encoding/csv"
	"os"
)

var csvHeader = []string{
	"Assignee",
	"Key",
	"Summary",
	"Timestamp",
	"Kind",
	"Author",
	"Content",
}

// ExportCSV writes one row per update.
func (e *Exporter) ExportCSV(d Digest, filename string) error {
	path := e.path(filename)
	if err := e.ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, row := range updateRows(d) {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// updateRows flattens a digest in report order.
func updateRows(d Digest) [][]string {
	var rows [][]string
	for _, group := range d.Groups {
		for _, iu := range group.Issues {
			for _, u := range iu.Updates {
				rows = append(rows, []string{
					group.Name,
					iu.Issue.Key,
					iu.Issue.Summary,
					u.Timestamp.Format(JiraTimeLayout),
					KindLabel(u.Kind),
					u.Author,
					u.Content,
				})
			}
		}
	}
	return rows
}
