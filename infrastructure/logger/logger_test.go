package logger

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestFromContextCarriesRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	entry := FromContext(ctx)
	assert.Equal(t, "req-1", entry.Data["requestId"])
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Contains(t, entry.Data["function"], "TestFromContextCarriesRequestID")
}

func TestFromContextWithoutRequestID(t *testing.T) {
	entry := FromContext(context.Background())
	_, ok := entry.Data["requestId"]
	assert.False(t, ok)
	assert.Equal(t, "", RequestID(context.Background()))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, log.WarnLevel, levelFor("warn", ""))
	assert.Equal(t, log.InfoLevel, levelFor("", "prod"))
	assert.Equal(t, log.DebugLevel, levelFor("", "local"))
}
