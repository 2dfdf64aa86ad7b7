// Package tableimage extracts tables from the image of a single page.
//
// A [TableImage] holds the prepared grayscale page and its [Scale]: the
// typical character width and the distance between text lines, measured
// once when the page is loaded. Extraction then runs in two passes:
//
//   - [TableImage.ExtractBorderedTables] detects the rules of the page,
//     builds cells and tables from them, optionally synthesizes header rows
//     and splits rows holding several lines of text.
//   - [TableImage.ExtractBorderlessTables] looks for tables without rules in
//     the rest of the page. It needs the [State] returned by the bordered
//     pass and a known line separation.
//
// [TableImage.ExtractTables] runs both passes:
//
//	ti, err := tableimage.New(img)
//	if err != nil {
//		return err
//	}
//	found := ti.ExtractTables(true, true, false)
//
// Each processing step is a function of the [Stages] record, so any step
// can be replaced with [WithStages].
package tableimage
