package gorm

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestHealthPing(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewHealthStore(db)

	mock.ExpectExec(`SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.Ping())
}

func TestHealthPingDatabaseDown(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewHealthStore(db)

	mock.ExpectExec(`SELECT 1`).WillReturnError(fmt.Errorf("connection refused"))

	assert.Error(t, s.Ping())
}
