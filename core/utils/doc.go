// Package utils provides common utility functions for the enumeration report.
// It includes helpers for coercing loosely typed JSON values (as returned by the
// search index) into strings and numbers, and for deciding whether such a value
// is empty.
package utils
