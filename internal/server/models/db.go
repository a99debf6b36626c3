// Package models defines the records persisted by the server.
package models
