// Package sqlitesheet persists the record sheet in a local SQLite file.
package sqlitesheet
