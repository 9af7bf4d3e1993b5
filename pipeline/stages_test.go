package pipeline

import (
	"context"
	"testing"

	"github.com/forkful/menusearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metaResult(id string, meta core.Metadata) core.Result {
	return core.Result{ID: id, Metadata: meta}
}

func TestQualityScreen(t *testing.T) {
	screen := NewQualityScreen()
	ctx := context.Background()

	results := []core.Result{
		metaResult("complete", core.Metadata{"price": 12.0, "description": "coconut curry"}),
		metaResult("no-price", core.Metadata{"description": "coconut curry"}),
		metaResult("zero-price", core.Metadata{"price": 0.0, "description": "coconut curry"}),
		metaResult("no-description", core.Metadata{"price": 12.0}),
		metaResult("empty-description", core.Metadata{"price": 12.0, "description": ""}),
	}

	kept, err := screen.Screen(ctx, results)
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "complete", kept[0].ID)
}

func TestVerifyScreen(t *testing.T) {
	screen := NewVerifyScreen()
	ctx := context.Background()

	results := []core.Result{
		metaResult("plausible", core.Metadata{"price": 14.0}),
		metaResult("just-under-ceiling", core.Metadata{"price": 999.99}),
		metaResult("at-ceiling", core.Metadata{"price": 1000.0}),
		metaResult("free", core.Metadata{"price": 0.0}),
		metaResult("negative", core.Metadata{"price": -3.0}),
		metaResult("missing", core.Metadata{"description": "no price at all"}),
	}

	kept, err := screen.Screen(ctx, results)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, "plausible", kept[0].ID)
	assert.Equal(t, "just-under-ceiling", kept[1].ID)
}

func TestScreensPreserveOrder(t *testing.T) {
	screen := NewQualityScreen()
	results := []core.Result{
		metaResult("c", core.Metadata{"price": 3.0, "description": "x"}),
		metaResult("a", core.Metadata{"price": 1.0, "description": "x"}),
		metaResult("b", core.Metadata{"price": 2.0, "description": "x"}),
	}

	kept, err := screen.Screen(context.Background(), results)
	require.NoError(t, err)
	require.Len(t, kept, 3)
	assert.Equal(t, "c", kept[0].ID)
	assert.Equal(t, "a", kept[1].ID)
	assert.Equal(t, "b", kept[2].ID)
}
