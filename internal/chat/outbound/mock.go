package outbound

import (
	"context"
	"fmt"
)

// MockProvider answers locally without calling any model. It is selected when
// no API key is configured.
type MockProvider struct{}

func (MockProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return fmt.Sprintf("[%s] received %d history messages, %d dataset contexts and %d images. Prompt: %s",
		req.Model, len(RecentHistory(req.History)), len(req.DatasetContexts), len(req.Images), req.Prompt), nil
}
