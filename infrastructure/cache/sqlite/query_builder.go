// ABOUTME: Safe SQL query builder for SQLite cache operations
// ABOUTME: Enforces parameterization and validates keys and values before they reach the database

package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Logger is the subset of interfaces.Logger the cache needs
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// QueryBuilder builds parameterized SQL. Identifiers that fail validation
// are left out of the query.
type QueryBuilder struct {
	query  string
	params []interface{}
}

var (
	safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	allowedOperators = map[string]bool{"=": true, "!=": true, ">": true, "<": true, ">=": true, "<=": true}

	// download keys embed full page URLs, percent-encoded slugs included
	maxKeyLength   = 2048
	maxValueLength = 4 * 1024 * 1024

	suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}
)

// NewQueryBuilder creates a new query builder instance
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		params: make([]interface{}, 0),
	}
}

// validateName validates table/column names
func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}
	return nil
}

// Select builds a SELECT query; any invalid column falls back to *
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	for _, col := range columns {
		if validateName(col) != nil {
			qb.query = "SELECT * "
			return qb
		}
	}

	if len(columns) == 0 {
		qb.query = "SELECT * "
	} else {
		qb.query = "SELECT " + strings.Join(columns, ", ") + " "
	}
	return qb
}

// From adds FROM clause
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	if validateName(table) != nil {
		return qb
	}
	qb.query += "FROM " + table + " "
	return qb
}

// Where adds a parameterized condition; unknown operators become "="
func (qb *QueryBuilder) Where(column string, operator string, value interface{}) *QueryBuilder {
	if validateName(column) != nil {
		return qb
	}
	if !allowedOperators[operator] {
		operator = "="
	}

	if strings.Contains(qb.query, "WHERE") {
		qb.query += "AND "
	} else {
		qb.query += "WHERE "
	}

	qb.query += column + " " + operator + " ? "
	qb.params = append(qb.params, value)
	return qb
}

// InsertOrReplace builds an INSERT OR REPLACE query
func (qb *QueryBuilder) InsertOrReplace(table string) *QueryBuilder {
	if validateName(table) != nil {
		return qb
	}
	qb.query = "INSERT OR REPLACE INTO " + table + " "
	return qb
}

// Values adds VALUES clause, skipping invalid columns
func (qb *QueryBuilder) Values(columns []string, values []interface{}) *QueryBuilder {
	if len(columns) != len(values) {
		return qb
	}

	validColumns := make([]string, 0, len(columns))
	validValues := make([]interface{}, 0, len(values))
	for i, col := range columns {
		if validateName(col) == nil {
			validColumns = append(validColumns, col)
			validValues = append(validValues, values[i])
		}
	}
	if len(validColumns) == 0 {
		return qb
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(validColumns)), ", ")
	qb.query += "(" + strings.Join(validColumns, ", ") + ") VALUES (" + placeholders + ")"
	qb.params = append(qb.params, validValues...)
	return qb
}

// Delete builds a DELETE query
func (qb *QueryBuilder) Delete(table string) *QueryBuilder {
	if validateName(table) != nil {
		return qb
	}
	qb.query = "DELETE FROM " + table + " "
	return qb
}

// Build returns the built query and parameters
func (qb *QueryBuilder) Build() (string, []interface{}) {
	return strings.TrimSpace(qb.query), qb.params
}

// ValidateKey rejects empty, oversized and NUL-containing keys. Keys with
// SQL-looking fragments are accepted (queries are parameterized) but logged.
func ValidateKey(key string, logger Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}
	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	if logger == nil {
		return nil
	}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
		}
	}
	return nil
}

// truncateKey returns a safe preview of the key for logging
func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue validates cache value
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}
	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}
	return nil
}

// CacheQueryBuilder provides pre-built queries for cache operations
type CacheQueryBuilder struct{}

// NewCacheQueryBuilder creates a cache-specific query builder
func NewCacheQueryBuilder() *CacheQueryBuilder {
	return &CacheQueryBuilder{}
}

// GetQuery selects a live entry by key; parameters are key and now
func (cq *CacheQueryBuilder) GetQuery() (string, int) {
	query, params := NewQueryBuilder().
		Select("value", "expiry").
		From("cache").
		Where("key", "=", nil).
		Where("expiry", ">", nil).
		Build()
	return query, len(params)
}

// SetQuery upserts an entry; parameters are key, value and expiry
func (cq *CacheQueryBuilder) SetQuery() (string, int) {
	query, params := NewQueryBuilder().
		InsertOrReplace("cache").
		Values([]string{"key", "value", "expiry"}, []interface{}{nil, nil, nil}).
		Build()
	return query, len(params)
}

// DeleteQuery removes an entry by key
func (cq *CacheQueryBuilder) DeleteQuery() (string, int) {
	query, params := NewQueryBuilder().Delete("cache").Where("key", "=", nil).Build()
	return query, len(params)
}

// CleanupQuery removes entries that expired before the given time
func (cq *CacheQueryBuilder) CleanupQuery() (string, int) {
	query, params := NewQueryBuilder().Delete("cache").Where("expiry", "<=", nil).Build()
	return query, len(params)
}
