package mention

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/mention-pulse/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("mention already exists")
)

//go:generate go run go.uber.org/mock/mockgen -source=mention.go -destination=mocks/mock.go
type Repository interface {
	// Create stores a mention. Returns ErrAlreadyExists for a subject and post URL seen before.
	Create(ctx context.Context, mention domain.Mention) error

	// ListSince returns mentions posted at or after since, grouped by subject
	ListSince(ctx context.Context, since time.Time) ([]domain.Mention, error)

	// Exists checks if the subject already has a mention with postURL
	Exists(ctx context.Context, subject, postURL string) (bool, error)

	// CleanupOldRecords deletes mentions stored before now minus olderThan
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
