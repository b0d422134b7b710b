// Package derive holds the stateless game formulas computed from record
// fields: stats, gender, shininess, experience growth and personality value
// search.
//
// Nothing here touches a record buffer. Callers read the inputs from a codec
// record, call the formula and write the result back. Every function is safe
// for concurrent use; the growth tables are built once at package init and
// never mutated.
package derive
