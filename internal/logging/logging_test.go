package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "folio.log")

	closer, err := Setup(Options{Path: path, Level: "debug"})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = closer.Close()
		logrus.SetOutput(os.Stderr)
	})

	For(WithSeq(context.Background(), 7)).Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "seq=7")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetup_RejectsUnknownLevel(t *testing.T) {
	_, err := Setup(Options{Level: "chatty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}

func TestFor_WithoutSeq(t *testing.T) {
	entry := For(context.Background())
	_, ok := entry.Data["seq"]
	assert.False(t, ok)
}
