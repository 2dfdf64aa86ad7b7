// Package tables assembles tables from cells, lines and text contours
// detected on a page image.
//
// # Bordered tables
//
// [GetTables] turns the cells built from detected lines into tables:
//
//  1. Cells sharing edges are clustered
//  2. Each cluster is completed with [AddSemiBorderedCells], which uses
//     lines bordering only some sides of the cluster to close its frame
//  3. The cell edges of a cluster form the row and column fences of the
//     table; merged cells are repeated in every slot they cover
//  4. Clusters holding no text contour are dropped
//
// [HandleImplicitRows] then splits rows that hold several lines of text
// separated by whitespace but no drawn rule.
//
// # Borderless tables
//
// Tables without rules are found by types implementing the [Detector]
// interface. The package provides [BorderlessDetector], which clusters text
// contours by vertical proximity and looks for whitespace columns crossing
// a whole cluster:
//
//	detector := tables.NewBorderlessDetector()
//	detector.Configure(config)
//	found := detector.Detect(page)
//
// # Confidence Scoring
//
// Borderless detection confidence (0-1) is based on:
//
//   - Grid regularity (30%)
//   - Alignment quality (30%)
//   - Line presence (20%)
//   - Cell occupancy (20%)
package tables
