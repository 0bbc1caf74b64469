package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"golang.org/x/crypto/bcrypt"
)

type storer interface {
	createOne(ctx context.Context, customer *Customer) error
	findByUsername(ctx context.Context, username string) (*Customer, error)
	existsByUsername(ctx context.Context, username string) (bool, error)
	existsByEmail(ctx context.Context, email string) (bool, error)
	locationExists(ctx context.Context, kind LocationKind, name string) (bool, error)
	findLocationID(ctx context.Context, kind LocationKind, name string) (int64, error)
}

type service struct {
	store    storer
	hashCost int
}

func NewService(store storer) *service {
	return &service{
		store:    store,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *service) createCustomer(ctx context.Context, req *CreateCustomerRequest) (*Customer, error) {
	customer := &Customer{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
	}

	var err error
	if customer.CityID, err = s.store.findLocationID(ctx, Cities, strings.TrimSpace(req.CityName)); err != nil {
		return nil, err
	}
	if customer.StateID, err = s.store.findLocationID(ctx, States, strings.TrimSpace(req.StateName)); err != nil {
		return nil, err
	}
	if customer.CountryID, err = s.store.findLocationID(ctx, Countries, strings.TrimSpace(req.CountryName)); err != nil {
		return nil, err
	}

	taken, err := s.store.existsByUsername(ctx, customer.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username %q already exists", servererrors.ErrDuplicateEntry, customer.Username)
	}

	taken, err = s.store.existsByEmail(ctx, customer.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email %q already exists", servererrors.ErrDuplicateEntry, customer.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	customer.PasswordHash = string(hash)

	if err := s.store.createOne(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// login checks a username and password. An unknown username is
// ErrResourceNotFound, a wrong password ErrInvalidCredentials.
func (s *service) login(ctx context.Context, req *LoginRequest) (*Customer, error) {
	customer, err := s.store.findByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, servererrors.ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	return customer, nil
}

func (s *service) usernameExists(ctx context.Context, username string) (bool, error) {
	return s.store.existsByUsername(ctx, strings.TrimSpace(username))
}

func (s *service) emailExists(ctx context.Context, email string) (bool, error) {
	return s.store.existsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *service) locationExists(ctx context.Context, kind LocationKind, name string) (bool, error) {
	return s.store.locationExists(ctx, kind, name)
}
