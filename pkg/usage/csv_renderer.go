package usage

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// TableRenderer turns a resource table into an export format.
type TableRenderer interface {
	RenderTable(table ResourceTable) (string, error)
}

type CsvTableRendererImpl struct {
}

func NewCsvTableRenderer() *CsvTableRendererImpl {
	return &CsvTableRendererImpl{}
}

// RenderTable renders one header row, one row per role and the summary
// row. The summary row's rate cell stays empty.
func (t *CsvTableRendererImpl) RenderTable(table ResourceTable) (string, error) {
	header := make([]string, 0, monthsPerYear+4)
	header = append(header, "Role")
	header = append(header, monthLabels[:]...)
	header = append(header, "Total Days", "Rate", "Total Cost")

	data := make([][]string, 0, len(table.Rows)+2)
	data = append(data, header)
	for _, row := range table.Rows {
		data = append(data, tableRow(row, formatNumber(row.Rate)))
	}
	data = append(data, tableRow(table.Total, ""))

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func tableRow(row ResourceRow, rate string) []string {
	cells := make([]string, 0, monthsPerYear+4)
	cells = append(cells, row.Role)
	for _, days := range row.Monthly {
		cells = append(cells, formatNumber(days))
	}
	cells = append(cells, formatNumber(row.TotalDays), rate, formatNumber(row.TotalCost))
	return cells
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
