package repository

import (
	"database/sql"
	"go-jobs-api/model"
)

// IUserRepository defines the contract for user persistence.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByUsernameOrEmail(usernameOrEmail string) (*model.User, error)
	GetUserByID(id string) (*model.User, error)
	CountByUsername(username string) (int, error)
	CountByEmail(email string) (int, error)
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, username, email, password, first_name, last_name, birth_date, phone, profile_pict_url, is_email_verified, is_phone_verified, status, role, created_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.FirstName, &user.LastName, &user.BirthDate, &user.Phone,
		&user.ProfilePictURL, &user.IsEmailVerified, &user.IsPhoneVerified,
		&user.Status, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) CreateUser(user *model.User) error {
	query := `INSERT INTO users (username, email, password, first_name, last_name, birth_date, phone, profile_pict_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_email_verified, is_phone_verified, status, role, created_at`
	return r.DB.QueryRow(query,
		user.Username, user.Email, user.Password, user.FirstName,
		user.LastName, user.BirthDate, user.Phone, user.ProfilePictURL,
	).Scan(&user.ID, &user.IsEmailVerified, &user.IsPhoneVerified, &user.Status, &user.Role, &user.CreatedAt)
}

// GetUserByUsernameOrEmail matches the login identifier against both columns.
// Returns sql.ErrNoRows when no user matches.
func (r *UserRepository) GetUserByUsernameOrEmail(usernameOrEmail string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1`
	return scanUser(r.DB.QueryRow(query, usernameOrEmail))
}

func (r *UserRepository) GetUserByID(id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(query, id))
}

func (r *UserRepository) CountByUsername(username string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE username = $1`, username).Scan(&count)
	return count, err
}

func (r *UserRepository) CountByEmail(email string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&count)
	return count, err
}
