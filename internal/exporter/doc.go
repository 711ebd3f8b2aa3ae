// Package exporter writes the pipeline's file artifacts.
//
// CSVWriter covers the cleaned tables and the final panel (with a
// streaming variant for the large merged output); WriteJSON handles the
// stage audit sidecars; WriteText handles the Markdown report. Formatting
// helpers render float64 values with NaN mapped to empty cells so that
// missing data survives a round trip through CSV.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(paths)
//	err := w.WriteSimpleCSV(paths.CleanREITCSV, headers, records)
//
//	sw, err := w.CreateStreamWriter(paths.PanelCSV, headers)
//	for _, row := range rows {
//	    sw.WriteRecord(row)
//	}
//	err = sw.Close()
package exporter
