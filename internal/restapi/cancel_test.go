package restapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelGroup_JoinFollowsCaller(t *testing.T) {
	group := NewCancelGroup()

	callerCtx, callerCancel := context.WithCancel(context.Background())
	joined, generation, release := group.Join(callerCtx)
	defer release()

	require.NoError(t, joined.Err())

	callerCancel()
	waitDone(t, joined)
	assert.NoError(t, generation.Err(), "caller cancellation must not touch the generation")
}

func TestCancelGroup_CancelAllCancelsEveryJoined(t *testing.T) {
	group := NewCancelGroup()

	first, firstGen, releaseFirst := group.Join(context.Background())
	defer releaseFirst()
	second, secondGen, releaseSecond := group.Join(context.Background())
	defer releaseSecond()

	group.CancelAll()

	waitDone(t, first)
	waitDone(t, second)
	assert.Error(t, firstGen.Err())
	assert.Error(t, secondGen.Err())
}

func TestCancelGroup_FreshGenerationAfterCancelAll(t *testing.T) {
	group := NewCancelGroup()
	group.CancelAll()

	joined, generation, release := group.Join(context.Background())
	defer release()

	assert.NoError(t, joined.Err())
	assert.NoError(t, generation.Err())
}

func TestCancelGroup_ReleaseDoesNotAffectOthers(t *testing.T) {
	group := NewCancelGroup()

	_, _, releaseFirst := group.Join(context.Background())
	second, _, releaseSecond := group.Join(context.Background())
	defer releaseSecond()

	releaseFirst()
	assert.NoError(t, second.Err())
}

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled in time")
	}
}
