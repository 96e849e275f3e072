package platform

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFromNameIsStableAndInRange(t *testing.T) {
	first := portFromName("tfclock")
	assert.Equal(t, first, portFromName("tfclock"))
	assert.GreaterOrEqual(t, first, 20000)
	assert.LessOrEqual(t, first, 39999)
}

func TestSecondInstanceActivatesFirst(t *testing.T) {
	appName := fmt.Sprintf("tfclock-test-%d", time.Now().UnixNano())
	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("cannot bind test port: %v", err)
	}
	defer guard.Release()

	activated := make(chan struct{}, 1)
	go guard.Serve(func() { activated <- struct{}{} })

	second, err := AcquireSingleInstance(appName)
	assert.Nil(t, second)
	require.True(t, errors.Is(err, ErrAlreadyRunning))

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("first instance was not activated")
	}
}

func TestReleaseAllowsReacquire(t *testing.T) {
	appName := fmt.Sprintf("tfclock-release-%d", time.Now().UnixNano())
	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("cannot bind test port: %v", err)
	}
	assert.NotEmpty(t, guard.Address())
	require.NoError(t, guard.Release())

	again, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestNilGuardIsSafe(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
	guard.Serve(nil)
}

type fakeService struct {
	enabled  []string
	disabled []string
}

func (service *fakeService) GetConfigDir() (string, error) { return "", nil }

func (service *fakeService) EnableAutostart(appName, execPath string) error {
	service.enabled = append(service.enabled, appName+"="+execPath)
	return nil
}

func (service *fakeService) DisableAutostart(appName string) error {
	service.disabled = append(service.disabled, appName)
	return nil
}

func TestSyncAutostart(t *testing.T) {
	service := &fakeService{}

	require.NoError(t, SyncAutostart(service, "tfclock", true))
	require.NoError(t, SyncAutostart(service, "tfclock", false))

	require.Len(t, service.enabled, 1)
	assert.Contains(t, service.enabled[0], "tfclock=")
	assert.Equal(t, []string{"tfclock"}, service.disabled)
}
