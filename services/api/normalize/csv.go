package normalize

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// WriteCSV writes the readings as delimited text: a header row followed
// by one row per reading, timestamps in RFC3339.
func WriteCSV(w io.Writer, readings []Reading) error {
	cw := csv.NewWriter(w)

	header := append([]string{FieldTimestamp}, SensorFields...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range readings {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			formatValue(r.Temperature),
			formatValue(r.Humidity),
			formatValue(r.SoilMoisture),
			formatValue(r.SoilNitrogen),
			formatValue(r.SoilPhosphorus),
			formatValue(r.SoilPotassium),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
