package database

import (
	"context"
	"database/sql"
	"fmt"

	"nfm-facility/app/models"
)

func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true AND deleted_at IS NULL`

	err := db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, wrap("get user", err)
	}
	return user, nil
}

func GetUserRoles(ctx context.Context, db *sql.DB, userID string) ([]*models.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id = $1 AND r.is_active = true
	`
	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrap("get user roles", err)
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, wrap("scan role", err)
		}
		roles = append(roles, &role)
	}
	return roles, wrap("get user roles", rows.Err())
}

func UpdateUserPassword(ctx context.Context, db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	res, err := db.ExecContext(ctx, query, hashedPassword, userID)
	if err != nil {
		return wrap("update password", err)
	}
	return affected(res)
}

// CreateUser inserts a user whose password is already hashed and grants the named role.
func CreateUser(ctx context.Context, db *sql.DB, user *models.User, roleName string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("create user", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `INSERT INTO users (email, password, first_name, last_name, is_active)
			  VALUES ($1, $2, $3, $4, true)
			  RETURNING id, created_at, updated_at`,
		user.Email, user.Password, user.FirstName, user.LastName,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return wrap("create user", err)
	}

	role := &models.Role{}
	err = tx.QueryRowContext(ctx, `SELECT id, name FROM roles WHERE name = $1`, roleName).Scan(&role.ID, &role.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("unknown role %q", roleName)
		}
		return wrap("find role", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, user.ID, role.ID); err != nil {
		return wrap("assign role", err)
	}
	user.Roles = []*models.Role{role}
	user.IsActive = true

	return wrap("create user", tx.Commit())
}
