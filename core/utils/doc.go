// Package utils contains small type conversion helpers used when reading
// loosely-typed roster cells (CSV strings, spreadsheet values).
package utils
