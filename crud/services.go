package crud

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fritter/domain"
)

// A ServicesConfig is any function that takes in a pointer to a Services
// object and returns an error. It's basically just wrapping the constructor
// method of any given crud service. It exists to be able to easily create
// the crud services using functional options in main.go.
type ServicesConfig func(*Services) error

// Services is a container object holding pointers to all the crud services.
// The crud services all share the database connection provided by Services.
type Services struct {
	db         *gorm.DB
	Resolver   *Resolver
	User       *UserService
	Freet      *FreetService
	Like       *LikeService
	Comment    *CommentService
	Aggregator *Aggregator
	Prompt     *PromptService
	List       *ListService
}

// NewServices returns a new Services object, containing any crud services
// it's told to create by one of the passed in ServicesConfig functions.
// It shares the passed in database connection with any crud service it creates.
func NewServices(db *gorm.DB, cfgs ...ServicesConfig) (*Services, error) {
	s := Services{
		db: db,
	}
	for _, cfg := range cfgs {
		if err := cfg(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// AutoMigrate creates or updates the tables of every model, including the join tables of Lists.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Freet{},
		&domain.Like{},
		&domain.Comment{},
		&domain.Prompt{},
		&domain.List{},
	)
	if err != nil {
		return fmt.Errorf("migrating: %w", err)
	}
	return nil
}

// WithUser wraps the constructor of UserService, NewUserService.
func WithUser(pepper string) ServicesConfig {
	return func(s *Services) error {
		s.User = NewUserService(s.db, pepper)
		return nil
	}
}

// WithFreet wraps the constructor of FreetService, NewFreetService.
func WithFreet() ServicesConfig {
	return func(s *Services) error {
		if s.User == nil {
			return errors.New("freet service needs the user service")
		}
		s.Freet = NewFreetService(s.db, s.User)
		return nil
	}
}

// WithEngagements builds the Resolver, the Like and Comment services sharing it,
// and the Aggregator on top of them.
func WithEngagements() ServicesConfig {
	return func(s *Services) error {
		if s.User == nil || s.Freet == nil {
			return errors.New("engagement services need the user and freet services")
		}
		comments := newCommentGorm(s.db)
		s.Resolver = NewResolver(s.Freet, &comments)
		s.Like = NewLikeService(s.db, s.Resolver, s.User)
		s.Comment = NewCommentService(s.db, s.Resolver, s.User)
		s.Aggregator = NewAggregator(s.Like, s.Comment, s.Resolver)
		return nil
	}
}

// WithPrompt wraps the constructor of PromptService, NewPromptService.
func WithPrompt() ServicesConfig {
	return func(s *Services) error {
		if s.User == nil {
			return errors.New("prompt service needs the user service")
		}
		s.Prompt = NewPromptService(s.db, s.User)
		return nil
	}
}

// WithList wraps the constructor of ListService, NewListService.
func WithList() ServicesConfig {
	return func(s *Services) error {
		if s.User == nil || s.Freet == nil {
			return errors.New("list service needs the user and freet services")
		}
		s.List = NewListService(s.db, s.Freet, s.User)
		return nil
	}
}
