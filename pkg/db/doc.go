// Package db provides database connection utilities for Cerberus.
package db
