// Package spec parses the author-supplied field specification fragments that
// describe an answer form. Each fragment is a string holding one JSON value:
// a single field descriptor object, an array of descriptors rendered together
// as a row, or null. Parse never fails outright; malformed fragments are
// skipped and reported as DefinitionError values on the resulting Table so a
// learner's answer form still renders.
//
// Descriptor defaults are resolved at parse time: a missing kind becomes
// KindText and a missing label becomes "variable '<name>'". The legacy `type`
// key is accepted as an alias for `kind`, and `text` doubles as the checkbox
// caption (string) or the radio option list (array).
package spec
