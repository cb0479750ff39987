// Package logging builds the zerolog logger described by the configuration.
//
// Console output is plain text without colour so it can be captured in
// files and tests; the JSON format writes one object per event.
package logging
