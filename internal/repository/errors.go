// Package repository maps the engine's row operations onto MySQL.  Every
// statement of a unit of work runs on the *sql.Tx opened by Store.WithTx;
// lookups that find nothing return the matching model.Err* sentinel so
// the service layer never sees sql.ErrNoRows.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// ErrEmailExists is returned when a user is created with a taken email.
var ErrEmailExists = errors.New("email already exists")

// ErrTokenInvalid covers unknown, expired and revoked refresh tokens.
var ErrTokenInvalid = errors.New("refresh token invalid")

// ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "1062")
}

// translate turns unique-key violations into model.ErrConflict so the
// caller can retry with fresh state.
func translate(err error) error {
	if isDuplicate(err) {
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	}
	return err
}
