package repo

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"go-microblog-api/internal/domain"
)

// Driver-specific constraint error codes.
const (
	mysqlDupEntry   = 1062
	mysqlFKViolated = 1452

	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

var mysqlDupKey = regexp.MustCompile(`for key '([^']+)'`)

// storageError classifies driver and gorm errors into *domain.StorageError.
// Anything it does not recognize is returned unchanged so the caller can
// treat it as an unexpected failure.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.StorageError{Code: domain.StorageNotFound, Err: err}
	}

	var my *mysql.MySQLError
	if errors.As(err, &my) {
		switch my.Number {
		case mysqlDupEntry:
			var fields []string
			if m := mysqlDupKey.FindStringSubmatch(my.Message); m != nil {
				fields = fieldsFromConstraint(m[1])
			}
			return &domain.StorageError{Code: domain.StorageUniqueViolation, Fields: fields, Err: err}
		case mysqlFKViolated:
			return &domain.StorageError{Code: domain.StorageForeignKeyViolation, Err: err}
		}
		return err
	}

	var pg *pgconn.PgError
	if errors.As(err, &pg) {
		switch pg.Code {
		case pgUniqueViolation:
			return &domain.StorageError{
				Code:   domain.StorageUniqueViolation,
				Fields: fieldsFromConstraint(pg.ConstraintName),
				Err:    err,
			}
		case pgFKViolation:
			return &domain.StorageError{Code: domain.StorageForeignKeyViolation, Err: err}
		}
		return err
	}

	// gorm's own translated sentinels, for drivers that report through them.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.StorageError{Code: domain.StorageUniqueViolation, Err: err}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &domain.StorageError{Code: domain.StorageForeignKeyViolation, Err: err}
	}
	return err
}

// fieldsFromConstraint recovers column names from an index/constraint name
// like "users.idx_users_email" or "uni_users_username".
func fieldsFromConstraint(name string) []string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	for _, p := range []string{"idx_", "uni_", "uix_"} {
		name = strings.TrimPrefix(name, p)
	}
	for _, t := range []string{"users_", "posts_"} {
		name = strings.TrimPrefix(name, t)
	}
	if name == "" || name == "PRIMARY" {
		return nil
	}
	return []string{name}
}
