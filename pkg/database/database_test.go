package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/transitflow/transitflow/pkg/config"
)

func TestNeedsRefresh(t *testing.T) {
	manager := NewManager(&config.Config{ProjectEnv: config.EnvironmentProd}, nil)

	// Password auth never expires
	assert.False(t, manager.needsRefresh(&engineState{}))

	fresh := &engineState{expiresAt: time.Now().Add(TokenLifetime)}
	assert.False(t, manager.needsRefresh(fresh))

	nearExpiry := &engineState{expiresAt: time.Now().Add(RefreshThreshold / 2)}
	assert.True(t, manager.needsRefresh(nearExpiry))

	expired := &engineState{expiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, manager.needsRefresh(expired))
}

func TestCloseWithoutEngine(t *testing.T) {
	manager := NewManager(&config.Config{ProjectEnv: config.EnvironmentLocal}, nil)
	assert.NoError(t, manager.Close())
}
