// Package types defines the Store interface, the inventory Record shape,
// selection and result types, and the standard errors for stockbook.
//
// A Record lives in exactly one data row of the backing tabular file. It is
// addressed either by its durable serial or by its volatile row-number; the
// header occupies row 1, so the first data row is FirstDataRow.
package types
