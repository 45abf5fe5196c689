// Package ngsq turns the OCR text of an NGSQ ("register style") descendant report into
// a person tree ready for serialization.
//
// The report is read one layout row at a time. Every row is classified (person marker,
// child marker, "Children:" cue, OCR fragment, continuation, or layout noise), marker
// remainders are split into a display name and fact text, fragments of child markers
// that the OCR engine broke over several physical lines are reassembled, and the
// resulting records are linked into a parent/child hierarchy keyed by the report's own
// person numbers. After the last row a single resolution pass derives notes, sex,
// family membership, and the given/surname split for every person.
//
// Key Types:
//
// - Tree: The finished person table with its root and document order
// - Person: One individual, identified by its report number
// - Line: The classification of one physical line
// - Extraction: The name/fact split of a marker remainder
// - ParseError: An unrecoverable broken-line run
//
// Main Functions:
//
// - Parse: Consumes a layout.Source and returns the resolved Tree
// - Classify: Assigns a role to one layout row
// - Extract: Splits a marker remainder into name and fact text
// - Resolve: Computes the derived attributes of every person
package ngsq
