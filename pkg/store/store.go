package store

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/richard-senior/podds/internal/logger"
	_ "modernc.org/sqlite"
)

// Persistable is implemented by every record the store manages. Column
// mapping is driven by struct tags: column, dbtype, primary, index.
type Persistable interface {
	TableName() string
	PrimaryKey() map[string]any
	BeforeSave() error
}

// Store wraps a sqlite handle. It is passed explicitly to everything that
// needs persistence; nothing reaches into ambient global state.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// ensures all tables and indexes exist
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		return nil, err
	}

	logger.Info("Database initialized", path)
	return s, nil
}

// Close releases the underlying handle
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	for _, proto := range []Persistable{&League{}, &Team{}, &TeamStats{}, &MatchResult{}} {
		if err := s.CreateTable(proto); err != nil {
			return err
		}
	}
	return nil
}

// CreateTable creates the table and indexes for the given record type
func (s *Store) CreateTable(obj Persistable) error {
	tableName := obj.TableName()
	createSQL := generateCreateTableSQL(obj, tableName)

	logger.Debug("Creating table with SQL", createSQL)
	if _, err := s.db.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	for _, query := range generateIndexSQL(obj, tableName) {
		if _, err := s.db.Exec(query); err != nil {
			logger.Warn("Failed to create index", err)
		}
	}
	return nil
}

// Save persists the object, inserting or updating on the primary key
func (s *Store) Save(obj Persistable) error {
	if err := obj.BeforeSave(); err != nil {
		return fmt.Errorf("before save hook failed: %w", err)
	}

	exists, err := s.Exists(obj)
	if err != nil {
		return fmt.Errorf("failed to check existence: %w", err)
	}

	if exists {
		return s.update(obj)
	}
	return s.insert(obj)
}

// BulkSave saves multiple objects inside a single transaction
func (s *Store) BulkSave(objects []Persistable) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, obj := range objects {
		if err := obj.BeforeSave(); err != nil {
			return fmt.Errorf("before save hook failed: %w", err)
		}
		columns, placeholders, values := insertData(obj)
		query := fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
			obj.TableName(), strings.Join(columns, ", "), strings.Join(placeholders, ", "))
		if _, err := tx.Exec(query, values...); err != nil {
			return fmt.Errorf("failed to save into %s: %w", obj.TableName(), err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Exists reports whether a record with the object's primary key is present
func (s *Store) Exists(obj Persistable) (bool, error) {
	whereClause, values := buildWhereClause(obj.PrimaryKey())
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", obj.TableName(), whereClause)

	var count int
	if err := s.db.QueryRow(query, values...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check existence in %s: %w", obj.TableName(), err)
	}
	return count > 0, nil
}

// Delete removes the record matching the object's primary key
func (s *Store) Delete(obj Persistable) error {
	whereClause, values := buildWhereClause(obj.PrimaryKey())
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", obj.TableName(), whereClause)
	if _, err := s.db.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", obj.TableName(), err)
	}
	return nil
}

// FindByPrimaryKey loads the record with the given key into obj
func (s *Store) FindByPrimaryKey(obj Persistable, primaryKey map[string]any) error {
	columns, destinations := selectData(obj)
	whereClause, values := buildWhereClause(primaryKey)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(columns, ", "), obj.TableName(), whereClause)
	logger.Debug("FindByPrimaryKey SQL", query)

	err := s.db.QueryRow(query, values...).Scan(destinations...)
	if err == sql.ErrNoRows {
		return fmt.Errorf("record not found in %s", obj.TableName())
	}
	if err != nil {
		return fmt.Errorf("failed to scan row from %s: %w", obj.TableName(), err)
	}
	return nil
}

// FindWhere executes a custom WHERE query against obj's table, returning
// one freshly-allocated record of obj's type per row
func (s *Store) FindWhere(obj Persistable, whereClause string, args ...any) ([]any, error) {
	columns, _ := selectData(obj)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(columns, ", "), obj.TableName(), whereClause)
	logger.Debug("FindWhere SQL", query)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", obj.TableName(), err)
	}
	defer rows.Close()

	objType := reflect.TypeOf(obj)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	var results []any
	for rows.Next() {
		newObj := reflect.New(objType).Interface()
		_, destinations := selectData(newObj)
		if err := rows.Scan(destinations...); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", obj.TableName(), err)
		}
		results = append(results, newObj)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows from %s: %w", obj.TableName(), err)
	}
	return results, nil
}

func (s *Store) insert(obj Persistable) error {
	columns, placeholders, values := insertData(obj)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		obj.TableName(), strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	logger.Debug("Insert SQL", query)

	if _, err := s.db.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", obj.TableName(), err)
	}
	return nil
}

func (s *Store) update(obj Persistable) error {
	setPairs, values := updateData(obj)
	whereClause, whereValues := buildWhereClause(obj.PrimaryKey())
	values = append(values, whereValues...)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		obj.TableName(), strings.Join(setPairs, ", "), whereClause)
	logger.Debug("Update SQL", query)

	if _, err := s.db.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to update %s: %w", obj.TableName(), err)
	}
	return nil
}

// persistedFields walks obj's struct fields, yielding the column name and
// value for every persisted field. Fields without a dbtype tag are skipped.
func persistedFields(obj any, visit func(field reflect.StructField, value reflect.Value, column string)) {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)
	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}
		column := field.Tag.Get("column")
		if column == "" {
			column = strings.ToLower(field.Name)
		}
		visit(field, objValue.Field(i), column)
	}
}

func insertData(obj any) (columns, placeholders []string, values []any) {
	persistedFields(obj, func(_ reflect.StructField, value reflect.Value, column string) {
		columns = append(columns, column)
		placeholders = append(placeholders, "?")
		values = append(values, value.Interface())
	})
	return columns, placeholders, values
}

func updateData(obj any) (setPairs []string, values []any) {
	persistedFields(obj, func(field reflect.StructField, value reflect.Value, column string) {
		// Primary key fields never change in an update
		if field.Tag.Get("primary") == "true" {
			return
		}
		setPairs = append(setPairs, fmt.Sprintf("%s = ?", column))
		values = append(values, value.Interface())
	})
	return setPairs, values
}

func selectData(obj any) (columns []string, destinations []any) {
	persistedFields(obj, func(_ reflect.StructField, value reflect.Value, column string) {
		columns = append(columns, column)
		destinations = append(destinations, value.Addr().Interface())
	})
	return columns, destinations
}

func generateCreateTableSQL(obj any, tableName string) string {
	var columns []string
	var primaryKeys []string

	persistedFields(obj, func(field reflect.StructField, _ reflect.Value, column string) {
		dbType := field.Tag.Get("dbtype")
		if field.Tag.Get("primary") == "true" {
			primaryKeys = append(primaryKeys, column)
		}
		columns = append(columns, fmt.Sprintf("%s %s", column, dbType))
	})

	if len(primaryKeys) > 0 {
		columns = append(columns, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tableName, strings.Join(columns, ", "))
}

func generateIndexSQL(obj any, tableName string) []string {
	var indexSQL []string
	persistedFields(obj, func(field reflect.StructField, _ reflect.Value, column string) {
		if field.Tag.Get("index") != "true" {
			return
		}
		indexName := fmt.Sprintf("idx_%s_%s", tableName, column)
		indexSQL = append(indexSQL,
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", indexName, tableName, column))
	})
	return indexSQL
}

func buildWhereClause(primaryKey map[string]any) (string, []any) {
	var conditions []string
	var values []any
	for column, value := range primaryKey {
		conditions = append(conditions, fmt.Sprintf("%s = ?", column))
		values = append(values, value)
	}
	return strings.Join(conditions, " AND "), values
}
