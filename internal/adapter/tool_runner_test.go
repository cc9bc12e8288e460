package adapter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsweep.dev/pkg/hlsweep/internal/adapter"
)

func TestLocalToolRunner_Run_Success(t *testing.T) {
	runner := adapter.NewLocalToolRunner(0)

	out := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "echo synthesis done")

	require.NoError(t, out.LaunchErr)
	assert.Equal(t, 0, out.ExitCode)
	assert.False(t, out.TimedOut)
	assert.Contains(t, out.Output, "synthesis done")
}

func TestLocalToolRunner_Run_CapturesStderr(t *testing.T) {
	runner := adapter.NewLocalToolRunner(0)

	out := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "echo oops >&2")

	require.NoError(t, out.LaunchErr)
	assert.Contains(t, out.Output, "oops")
}

func TestLocalToolRunner_Run_NonzeroExit(t *testing.T) {
	runner := adapter.NewLocalToolRunner(0)

	out := runner.Run(context.Background(), t.TempDir(), "sh", "-c", "exit 3")

	require.NoError(t, out.LaunchErr)
	assert.Equal(t, 3, out.ExitCode)
	assert.False(t, out.TimedOut)
}

func TestLocalToolRunner_Run_RunsInWorkDir(t *testing.T) {
	workDir := t.TempDir()
	runner := adapter.NewLocalToolRunner(0)

	out := runner.Run(context.Background(), workDir, "pwd")

	require.NoError(t, out.LaunchErr)
	assert.Contains(t, out.Output, workDir)
}

func TestLocalToolRunner_Run_Timeout(t *testing.T) {
	runner := adapter.NewLocalToolRunner(100 * time.Millisecond)

	start := time.Now()
	out := runner.Run(context.Background(), t.TempDir(), "sleep", "10")

	assert.True(t, out.TimedOut)
	assert.Equal(t, -1, out.ExitCode)
	assert.NoError(t, out.LaunchErr)
	assert.Less(t, time.Since(start), 5*time.Second, "runner did not enforce the deadline")
}

func TestLocalToolRunner_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	runner := adapter.NewLocalToolRunner(0)

	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	out := runner.Run(ctx, t.TempDir(), "sleep", "10")

	assert.True(t, out.TimedOut)
	assert.NoError(t, out.LaunchErr)
}

func TestLocalToolRunner_Run_MissingBinary(t *testing.T) {
	runner := adapter.NewLocalToolRunner(0)

	out := runner.Run(context.Background(), t.TempDir(), "definitely-not-a-real-hls-tool")

	require.Error(t, out.LaunchErr)
	assert.Equal(t, -1, out.ExitCode)
	assert.False(t, out.TimedOut)
}
