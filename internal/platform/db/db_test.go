package db

import (
	"errors"
	"fmt"
	"testing"
	"time"

	mysql "github.com/go-sql-driver/mysql"

	"LabLend-backend/internal/platform/config"
)

func TestDSN_DriverOptions(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 3307, Username: "lablend", Password: "p@ss", DBName: "lablend"})
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	if cfg.Addr != "db:3307" || cfg.DBName != "lablend" || cfg.User != "lablend" || cfg.Passwd != "p@ss" {
		t.Fatalf("unexpected target: %+v", cfg)
	}
	// 変化のない UPDATE でも RowsAffected=1 を返させる（ストアの更新件数チェックが前提にしている）
	if !cfg.ClientFoundRows {
		t.Fatalf("clientFoundRows must be enabled")
	}
	if !cfg.ParseTime || cfg.Loc != time.UTC {
		t.Fatalf("parseTime=%v loc=%v", cfg.ParseTime, cfg.Loc)
	}
	if cfg.MultiStatements {
		t.Fatalf("multiStatements must stay off")
	}
}

func TestErrorClassification(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	if !IsDuplicateKey(dup) || IsRowReferenced(dup) || IsMissingReference(dup) {
		t.Fatalf("1062 misclassified")
	}
	if !IsRowReferenced(&mysql.MySQLError{Number: 1451}) {
		t.Fatalf("1451 misclassified")
	}
	if !IsMissingReference(&mysql.MySQLError{Number: 1452}) {
		t.Fatalf("1452 misclassified")
	}
	if IsDuplicateKey(errors.New("plain")) || IsDuplicateKey(nil) {
		t.Fatalf("non-mysql errors must not match")
	}
}
