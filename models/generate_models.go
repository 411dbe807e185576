package models

import (
	"log"
	"os"
	"reflect"
	"strings"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Query generation usage:

Set GENERATE_MODELS=true and start the binary. It migrates every model,
logs a column report comparing the live tables with the Go structs, and
writes type-safe query helpers to ./query. Set GENERATE_COLUMN_REPORT=true
to log only the report, e.g.

	WRN columns not accounted for in model table=resumes columns=["legacy_path"]
*/

func GenerateModels(db *gorm.DB) error {
	verbose := db.Session(&gorm.Session{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logger.Info, Colorful: true},
		),
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	zlog.Info().Msg("migrating models")
	if err := Migrate(verbose); err != nil {
		return err
	}

	GenerateColumnMismatchReport(db)

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./query",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	zlog.Info().Str("outPath", "./query").Msg("query generation complete")
	return nil
}

// GenerateColumnMismatchReport logs, per table, the database columns no
// model field maps to, and returns them keyed by table.
func GenerateColumnMismatchReport(db *gorm.DB) map[string][]string {
	report := make(map[string][]string)
	for _, model := range All() {
		table := tableNameOf(model)
		logger := zlog.With().Str("table", table).Logger()

		var columns []string
		err := db.Raw(`
			SELECT column_name
			FROM information_schema.columns
			WHERE table_name = ? AND table_schema = CURRENT_SCHEMA()
			ORDER BY ordinal_position`, table).Scan(&columns).Error
		if err != nil {
			logger.Error().Err(err).Msg("failed to read columns")
			continue
		}
		if len(columns) == 0 {
			logger.Info().Msg("table does not exist yet, migration will create it")
			continue
		}

		missing := ColumnMismatches(columns, ModelColumns(model))
		if len(missing) == 0 {
			logger.Info().Msg("all columns are accounted for")
			continue
		}
		logger.Warn().Strs("columns", missing).Msg("columns not accounted for in model")
		report[table] = missing
	}
	return report
}

type tabler interface {
	TableName() string
}

func tableNameOf(model any) string {
	if t, ok := model.(tabler); ok {
		return t.TableName()
	}
	return strings.ToLower(reflect.Indirect(reflect.ValueOf(model)).Type().Name()) + "s"
}

// ModelColumns lists the column names declared in a model's gorm tags.
func ModelColumns(model any) []string {
	t := reflect.Indirect(reflect.ValueOf(model)).Type()

	var columns []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		for _, part := range strings.Split(field.Tag.Get("gorm"), ";") {
			if name, ok := strings.CutPrefix(strings.TrimSpace(part), "column:"); ok {
				columns = append(columns, name)
			}
		}
	}
	return columns
}

// ColumnMismatches returns the dbColumns missing from modelColumns.
func ColumnMismatches(dbColumns, modelColumns []string) []string {
	known := make(map[string]bool, len(modelColumns))
	for _, c := range modelColumns {
		known[c] = true
	}

	var missing []string
	for _, c := range dbColumns {
		if !known[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
