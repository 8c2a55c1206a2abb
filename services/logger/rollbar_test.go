package logsvc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/educamais/educamais/core"
	"github.com/educamais/educamais/core/session"
)

func TestRollbarLogger(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	logger := NewRollbarLogger(zap.New(obsCore).Sugar(), core.NewTestConfig())

	errBoom := errors.New("boom")
	logger.Error("deleting class", errBoom, session.Session{TeacherID: 3, TeacherName: "Ana"}, map[string]interface{}{"turma_id": 9})
	logger.Info("started")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "deleting class", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "boom", ctx["error"])
	assert.EqualValues(t, 3, ctx["professor_id"])
	assert.EqualValues(t, 9, ctx["turma_id"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Empty(t, entries[1].ContextMap())
}
