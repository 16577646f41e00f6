// Package logging builds the application's slog loggers.
//
// Two output formats are supported: a human-oriented console format and
// JSON. Loggers tag records with a component attribute that the console
// handler folds into the message prefix.
package logging
