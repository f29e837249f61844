package identity

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// BaseHandle derives the unsuffixed handle "first.last" in lower case.
func BaseHandle(firstName, lastName string) string {
	return strings.ToLower(firstName) + "." + strings.ToLower(lastName)
}

// Handle returns the n-th candidate for base: base itself for n == 0,
// otherwise base with n appended ("jane.doe", "jane.doe1", "jane.doe2", ...).
func Handle(base string, n int) string {
	if n == 0 {
		return base
	}
	return base + strconv.Itoa(n)
}

// usernameProber is the slice of the user store that handle resolution needs.
type usernameProber interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// nextFreeHandle probes candidates starting at counter start and returns the
// first one not in use together with the counter that produced it.
func nextFreeHandle(ctx context.Context, store usernameProber, base string, start int) (string, int, error) {
	for n := start; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		candidate := Handle(base, n)
		taken, err := store.UsernameExists(ctx, candidate)
		if err != nil {
			return "", 0, fmt.Errorf("failed to probe username %q: %w", candidate, err)
		}
		if !taken {
			return candidate, n, nil
		}
	}
}
