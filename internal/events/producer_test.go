package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilProducerIsNoOp(t *testing.T) {
	p := NewProducer(nil, "order_events")
	require.Nil(t, p)

	require.NoError(t, p.Publish(context.Background(), "1", map[string]any{"type": "order_created"}))
	require.NoError(t, p.Close())
}
