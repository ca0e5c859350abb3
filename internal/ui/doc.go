// Package ui implements the interactive terminal interface for browsing
// replay data: ranked top artists, albums and songs, plus recent history.
package ui
