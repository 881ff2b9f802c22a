// Package sheet holds the document page strokes are placed on.
//
// A [Sheet] has a page [Format], a [Background] and an ordered set of strokes
// keyed by UUID. In endless mode the sheet grows page by page to cover its
// content.
//
//	s := sheet.New()
//	id, err := s.ImportData(data, geom.V(stroke.OffsetXDefault, stroke.OffsetYDefault))
//	svg, err := s.GenSVG()
//
// Sheets persist as JSON with [Sheet.Save] and [Load]. Render nodes are not
// persisted.
package sheet
