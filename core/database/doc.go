// Package database manages the connection to the student roster database.
//
// The default driver is SQLite pointing at a local students.db file, which
// matches how rosters are handed around in practice. A shared MySQL server
// is supported through the same Config by setting driver to "mysql".
// GORM's own logging is silenced; connection failures are reported through
// the application logger instead.
package database
