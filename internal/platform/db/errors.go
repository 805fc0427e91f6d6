package db

import (
	"errors"

	mysql "github.com/go-sql-driver/mysql"
)

const (
	mysqlDuplicateKey    = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

func mysqlNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

func IsDuplicateKey(err error) bool { return mysqlNumber(err) == mysqlDuplicateKey }

// IsRowReferenced は親行削除時に子行が残っている FK 違反
func IsRowReferenced(err error) bool { return mysqlNumber(err) == mysqlRowIsReferenced }

// IsMissingReference は存在しない親を指す FK 違反
func IsMissingReference(err error) bool { return mysqlNumber(err) == mysqlNoReferencedRow }
