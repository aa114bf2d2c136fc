package dbhelper

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wicaksana/kedai/database"
	"github.com/wicaksana/kedai/models"
)

func CreateUser(tx *sql.Tx, name, email, phone, hashedPassword string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`
		INSERT INTO users (name, email, phone, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		name, email, phone, hashedPassword).Scan(&id)
	return id, err
}

func IsUserExists(email string) (bool, error) {
	var count int
	err := database.Kedai.QueryRow(`
		SELECT COUNT(*) FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).Scan(&count)
	return count > 0, err
}

func AssignRole(tx *sql.Tx, userID uuid.UUID, role models.Role) error {
	_, err := tx.Exec(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, role)
	return err
}

func GetUserByPassword(email, password string) (uuid.UUID, string, error) {
	var (
		id             uuid.UUID
		name           string
		hashedPassword string
	)

	err := database.Kedai.QueryRow(`
		SELECT id, name, password FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).
		Scan(&id, &name, &hashedPassword)
	if err != nil {
		return uuid.Nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) != nil {
		return uuid.Nil, "", fmt.Errorf("incorrect password")
	}

	return id, name, nil
}

func GetUserRoles(userID uuid.UUID) ([]string, error) {
	rows, err := database.Kedai.Query(`
		SELECT role FROM user_roles
		WHERE user_id = $1 AND archived_at IS NULL`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetIdentity loads the resolved contact identity used by the order
// composer when a checkout is authenticated.
func GetIdentity(userID uuid.UUID) (models.Identity, error) {
	var identity models.Identity
	err := database.Kedai.QueryRow(`
		SELECT id, name, phone, email FROM users
		WHERE id = $1 AND archived_at IS NULL`, userID).
		Scan(&identity.ID, &identity.Name, &identity.Phone, &identity.Email)
	return identity, err
}
