// Package gorm implements the store interfaces using GORM over PostgreSQL.
package gorm
