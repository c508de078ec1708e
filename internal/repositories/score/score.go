package score

import (
	"context"
	"fmt"

	"github.com/orgball2608/mention-pulse/internal/domain"
	"github.com/orgball2608/mention-pulse/pkg/errors"
)

var (
	ErrNotFound = fmt.Errorf("subject score %w", errors.ErrNotFound)
)

//go:generate go run go.uber.org/mock/mockgen -source=score.go -destination=mocks/mock.go
type Repository interface {
	// Create stores a ranking snapshot
	Create(ctx context.Context, score domain.SubjectScore) error

	// Latest returns the most recent snapshot for subject, or ErrNotFound
	Latest(ctx context.Context, subject string) (*domain.SubjectScore, error)
}
