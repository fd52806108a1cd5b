// Package render writes an aggregation result as plain text or JSON.
package render
