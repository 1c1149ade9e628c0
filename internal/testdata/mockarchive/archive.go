package mockarchive

import (
	"context"

	"github.com/stretchr/testify/mock"

	"device-event-pipeline/internal/archive"
)

type Archive struct {
	mock.Mock
}

var _ archive.RawArchive = &Archive{}

func (m *Archive) Store(ctx context.Context, key string, body []byte) error {
	args := m.Called(ctx, key, body)
	return args.Error(0)
}
