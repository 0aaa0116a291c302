package models

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Column Mismatch Report Usage:

The read path selects columns by name, so a column that exists in the database
but not in the record structs below is invisible to the API. The report lists
those columns per table.

To generate the report:

1. Set the environment variable: GENERATE_COLUMN_REPORT=true
2. Run the application: go run .

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - legacy_score

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// records lists the storage models in dependency order
func records() []interface{} {
	return []interface{}{
		&CategoryRecord{},
		&ProjectRecord{},
		&ProjectStepRecord{},
	}
}

// AutoMigrate creates or updates the catalog tables
func AutoMigrate(db *gorm.DB) error {
	return db.Session(&gorm.Session{SkipDefaultTransaction: true}).AutoMigrate(records()...)
}

func GenerateModels(db *gorm.DB) {
	if err := db.Exec("SELECT 1").Error; err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	db = db.Session(&gorm.Session{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(records()...)

	fmt.Println("Migrating models...")
	if err := AutoMigrate(db); err != nil {
		fmt.Printf("Error during models migration: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Database migration completed successfully!")

	GenerateColumnMismatchReport(db)

	g.Execute()
	fmt.Println("Model generation complete!")
}

// GenerateColumnMismatchReport prints database columns that no record field maps to
func GenerateColumnMismatchReport(db *gorm.DB) {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	totalMismatches := 0
	for _, record := range records() {
		mismatches, tableName, err := ColumnMismatches(db, record)
		fmt.Printf("\n--- Table: %s ---\n", tableName)
		if err != nil {
			fmt.Printf("Error getting columns for table %s: %v\n", tableName, err)
			continue
		}

		if len(mismatches) > 0 {
			fmt.Printf("Found %d columns not accounted for in model:\n", len(mismatches))
			for _, col := range mismatches {
				fmt.Printf("  - %s\n", col)
			}
			totalMismatches += len(mismatches)
		} else {
			fmt.Println("All columns are accounted for in the model.")
		}
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", totalMismatches)
}

// ColumnMismatches returns the sorted columns of record's table that have no matching struct field
func ColumnMismatches(db *gorm.DB, record interface{}) ([]string, string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(record); err != nil {
		return nil, "", fmt.Errorf("error parsing model: %w", err)
	}
	tableName := stmt.Schema.Table

	if !db.Migrator().HasTable(record) {
		return nil, tableName, fmt.Errorf("table %s does not exist", tableName)
	}

	columnTypes, err := db.Migrator().ColumnTypes(record)
	if err != nil {
		return nil, tableName, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}

	known := make(map[string]bool, len(stmt.Schema.DBNames))
	for _, name := range stmt.Schema.DBNames {
		known[name] = true
	}

	var mismatches []string
	for _, columnType := range columnTypes {
		if !known[columnType.Name()] {
			mismatches = append(mismatches, columnType.Name())
		}
	}
	sort.Strings(mismatches)

	return mismatches, tableName, nil
}

// GenerateColumnMismatchReportStandalone generates a report without running migrations
func GenerateColumnMismatchReportStandalone(db *gorm.DB) {
	if err := db.Exec("SELECT 1").Error; err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	GenerateColumnMismatchReport(db)
}
