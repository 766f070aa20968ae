package storage

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *sqliteRepository) CreateUser(fullName, email, password string) (*User, error) {
	email = normalizeEmail(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &User{FullName: strings.TrimSpace(fullName), Email: email, PasswordHash: string(hash)}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return tx.Create(u).Error
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *sqliteRepository) GetUserByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Where("email = ?", normalizeEmail(email)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) Authenticate(email, password string) (*User, error) {
	u, err := r.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *sqliteRepository) CreateStructure(userID uint, name string, data []byte) (*Structure, error) {
	s := &Structure{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Data:   data,
	}
	if err := r.db.Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sqliteRepository) ListStructures(userID uint) ([]Structure, error) {
	var out []Structure
	// rowid breaks ties between structures saved within the same clock tick
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Order("rowid ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
