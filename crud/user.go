package crud

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fritter/domain"
	"fritter/errs"
)

// UserService manages Users. It also contains the part of the authentication system
// that handles database interactions and password hashing, with http/auth.go dealing
// with requests, middleware and session tokens. It implements the domain.UserService interface.
type UserService struct {
	userValidator
}

// userValidator runs validations on incoming User data.
// On success, it passes the data on to userGorm.
// Otherwise, it returns the error of the validation that has failed.
type userValidator struct {
	pepper        string
	usernameRegex *regexp.Regexp
	userGorm
}

// userGorm runs CRUD operations on the database using incoming User data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type userGorm struct {
	db *gorm.DB
}

// NewUserService returns an instance of UserService.
func NewUserService(db *gorm.DB, pepper string) *UserService {
	return &UserService{
		userValidator{
			pepper:        pepper,
			usernameRegex: regexp.MustCompile(`^[a-z0-9_]{3,32}$`),
			userGorm: userGorm{
				db: db,
			},
		},
	}
}

// Ensure the UserService struct properly implements the domain.UserService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.UserService = &UserService{}

// Authenticate checks a submitted username and password for existence and correctness.
func (uv *userValidator) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user := domain.User{Username: username}
	if err := runUserValFns(&user, uv.usernameNormalize); err != nil {
		return nil, err
	}

	// Look for a user database record with the submitted username.
	found, err := uv.userGorm.ByUsername(ctx, user.Username)
	if err != nil {
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			return nil, errs.Errorf(errs.EUNAUTHENTICATED, "The username or password is incorrect.")
		}
		return nil, err
	}

	// Append the pepper to the submitted password and compare it to the stored hash.
	err = bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password+uv.pepper))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errs.Errorf(errs.EUNAUTHENTICATED, "The username or password is incorrect.")
		}
		return nil, err
	}
	return found, nil
}

// Create runs validations needed for creating new User database records.
func (uv *userValidator) Create(ctx context.Context, user *domain.User) error {
	err := runUserValFns(user,
		uv.passwordRequired,
		uv.passwordMinLength,
		uv.passwordBcrypt,
		uv.passwordHashRequired,
		uv.usernameNormalize,
		uv.usernameRequired,
		uv.usernameFormat,
		uv.usernameIsAvail(ctx))
	if err != nil {
		return err
	}
	return uv.userGorm.Create(ctx, user)
}

// ByUsername normalizes a handle before looking it up.
func (uv *userValidator) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	user := domain.User{Username: username}
	if err := runUserValFns(&user, uv.usernameNormalize); err != nil {
		return nil, err
	}
	return uv.userGorm.ByUsername(ctx, user.Username)
}

// runUserValFns runs any number of functions of type userValFn on the passed in User object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runUserValFns(user *domain.User, fns ...userValFn) error {
	for _, fn := range fns {
		if err := fn(user); err != nil {
			return err
		}
	}
	return nil
}

// A userValFn is any function that takes in a pointer to a domain.User object and returns an error.
type userValFn func(user *domain.User) error

// usernameNormalize converts the username to all lowercase and trims its whitespaces.
func (uv *userValidator) usernameNormalize(user *domain.User) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	return nil
}

// usernameRequired makes sure that the username is not the empty string.
func (uv *userValidator) usernameRequired(user *domain.User) error {
	if user.Username == "" {
		return errs.Errorf(errs.EINVALID, "A username is required.")
	}
	return nil
}

// usernameFormat makes sure that the username matches a predefined regex pattern.
func (uv *userValidator) usernameFormat(user *domain.User) error {
	if !uv.usernameRegex.MatchString(user.Username) {
		return errs.Errorf(errs.EINVALID, "The username must have 3 to 32 lowercase letters, digits or underscores.")
	}
	return nil
}

// usernameIsAvail makes sure that the username is not yet taken.
func (uv *userValidator) usernameIsAvail(ctx context.Context) userValFn {
	return func(user *domain.User) error {
		existing, err := uv.userGorm.ByUsername(ctx, user.Username)
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			// Username is not taken.
			return nil
		}
		if err != nil {
			return err
		}
		if user.ID != existing.ID {
			return errs.Errorf(errs.ECONFLICT, "This username is already taken.")
		}
		return nil
	}
}

// passwordBcrypt hashes a user's password with a predefined pepper.
// It then clears the password on the user object in memory.
func (uv *userValidator) passwordBcrypt(user *domain.User) error {
	if user.Password == "" {
		return nil
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(user.Password+uv.pepper), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedBytes)
	user.Password = ""
	return nil
}

// passwordHashRequired makes sure that the user's password hash is not the empty string.
func (uv *userValidator) passwordHashRequired(user *domain.User) error {
	if user.PasswordHash == "" {
		return errs.Errorf(errs.EINVALID, "A password is required.")
	}
	return nil
}

// passwordMinLength makes sure that the user's password is at least 6 characters long.
func (uv *userValidator) passwordMinLength(user *domain.User) error {
	if user.Password == "" {
		return nil
	}
	if utf8.RuneCountInString(user.Password) < 6 {
		return errs.Errorf(errs.EINVALID, "The password must have at least 6 characters.")
	}
	return nil
}

// passwordRequired makes sure that the user's password is not the empty string.
func (uv *userValidator) passwordRequired(user *domain.User) error {
	if user.Password == "" {
		return errs.Errorf(errs.EINVALID, "A password is required.")
	}
	return nil
}

// ByID retrieves a single User by ID.
func (ug *userGorm) ByID(ctx context.Context, id string) (*domain.User, error) {
	if !domain.ValidID(id) {
		return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
	}
	return ug.first(ug.db.WithContext(ctx).Where("id = ?", id))
}

// ByUsername retrieves a single User by handle.
func (ug *userGorm) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	return ug.first(ug.db.WithContext(ctx).Where("username = ?", username))
}

// Create stores the data from the User object in a new database record.
func (ug *userGorm) Create(ctx context.Context, user *domain.User) error {
	if err := ug.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (ug *userGorm) first(db *gorm.DB) (*domain.User, error) {
	var user domain.User
	err := db.First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &user, nil
}
