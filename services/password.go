package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// DefaultBcryptCost matches the work factor the storefront uses at login.
const DefaultBcryptCost = 10

// PasswordHasher turns a plaintext credential into a storable hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// HashAll hashes every plaintext concurrently. Each goroutine writes only its own slot
// and the results are returned once all of them have joined.
func HashAll(ctx context.Context, hasher PasswordHasher, plains []string) ([]string, error) {
	hashes := make([]string, len(plains))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range plains {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			h, err := hasher.Hash(p)
			if err != nil {
				return fmt.Errorf("hash credential %d: %w", i, err)
			}
			hashes[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}
