// Package answer translates between a parsed spec.Table plus a stored answer
// string and the live controls of a rendered answer form.
//
// Build distributes the stored answer into freshly created controls and keeps
// every value that found no control in a LeftoverMap. Serialize walks the
// controls in document order and produces the canonical stored string: a JSON
// object keyed by field name in first-appearance order, or the empty string
// when every contributing value is empty.
//
// Value conventions:
//
//   - text and textarea hold strings.
//   - checkbox serializes as the number 1 or 0.
//   - radio serializes as the decimal string of the 1-based option index and
//     is omitted entirely when nothing is selected.
//
// Neither Build nor Serialize return Go errors; problems are collected in the
// Issues value so the surrounding widget can notify without losing input.
package answer
