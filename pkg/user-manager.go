package pkg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"sky-scheduling/logger"
	"sky-scheduling/models"
)

const (
	LoginsUserNameColumn    = "user_name"
	LoginsHashedPassColumn  = "hashed_pass"
	LoginsAccessLevelColumn = "access_level"
)

// UserManager reads and writes login accounts
type UserManager struct {
	db *Database
}

func NewUserManager(db *Database) *UserManager {
	return &UserManager{db: db}
}

// GetRow loads one account. ErrNotFound if the user name is unknown.
func (m *UserManager) GetRow(ctx context.Context, userName string) (*models.User, error) {
	query, params, err := sq.Select(LoginsUserNameColumn, LoginsHashedPassColumn, LoginsAccessLevelColumn).
		From(LoginsTableName).
		Where(sq.Eq{LoginsUserNameColumn: userName}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = m.db.DB.QueryRowContext(ctx, query, params...).Scan(&user.UserName, &user.HashPass, &user.AccessFlags)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userName, ErrNotFound)
	}
	if err != nil {
		logger.Error.Printf("Failed to load user %s: %v", userName, err)
		return nil, err
	}
	return &user, nil
}

// List returns every account ordered by name
func (m *UserManager) List(ctx context.Context) ([]models.User, error) {
	query, _, err := sq.Select(LoginsUserNameColumn, LoginsHashedPassColumn, LoginsAccessLevelColumn).
		From(LoginsTableName).
		OrderBy(LoginsUserNameColumn).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := m.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.UserName, &user.HashPass, &user.AccessFlags); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Insert stores a new account. user.HashPass must already be hashed.
func (m *UserManager) Insert(ctx context.Context, user *models.User) error {
	query, params, err := sq.Insert(LoginsTableName).
		Columns(LoginsUserNameColumn, LoginsHashedPassColumn, LoginsAccessLevelColumn).
		Values(user.UserName, user.HashPass, int(user.AccessFlags)).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := m.db.DB.ExecContext(ctx, query, params...); err != nil {
		logger.Error.Printf("Failed to insert user %s: %v", user.UserName, err)
		return fmt.Errorf("inserting user %s: %w", user.UserName, err)
	}
	logger.Info.Printf("Added user %s with access %d", user.UserName, user.AccessFlags)
	return nil
}

// Update rewrites the hash and access flags of an existing account
func (m *UserManager) Update(ctx context.Context, user *models.User) error {
	query, params, err := sq.Update(LoginsTableName).
		Set(LoginsHashedPassColumn, user.HashPass).
		Set(LoginsAccessLevelColumn, int(user.AccessFlags)).
		Where(sq.Eq{LoginsUserNameColumn: user.UserName}).
		ToSql()
	if err != nil {
		return err
	}
	return execOne(ctx, m.db.DB, query, params, "user "+user.UserName)
}

func (m *UserManager) Delete(ctx context.Context, userName string) error {
	query, params, err := sq.Delete(LoginsTableName).
		Where(sq.Eq{LoginsUserNameColumn: userName}).
		ToSql()
	if err != nil {
		return err
	}
	if err := execOne(ctx, m.db.DB, query, params, "user "+userName); err != nil {
		return err
	}
	logger.Info.Printf("Deleted user %s", userName)
	return nil
}
