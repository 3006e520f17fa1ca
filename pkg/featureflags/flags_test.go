package featureflags

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvManager_DisabledWithoutDefault(t *testing.T) {
	manager := NewEnvManager("TEST_FEATURE_", nil)

	assert.False(t, manager.IsEnabled(context.Background(), QuickSearchEnabled))
}

func TestEnvManager_EnabledWhenFlagSet(t *testing.T) {
	t.Setenv("TEST_FEATURE_QUICK_SEARCH_ENABLED", "true")

	manager := NewEnvManager("TEST_FEATURE_", nil)

	assert.True(t, manager.IsEnabled(context.Background(), QuickSearchEnabled))
}

func TestEnvManager_MultipleValues(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{"true lowercase", "true", false, true},
		{"TRUE uppercase", "TRUE", false, true},
		{"1 numeric", "1", false, true},
		{"ENABLED", "ENABLED", false, true},
		{"false overrides default", "false", true, false},
		{"0 overrides default", "0", true, false},
		{"disabled", "disabled", true, false},
		{"empty keeps default on", "", true, true},
		{"empty keeps default off", "", false, false},
		{"unknown keeps default", "yes", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_FLAG", tt.value)

			manager := NewEnvManager("TEST_", map[FeatureFlag]bool{"FLAG": tt.def})

			assert.Equal(t, tt.expected, manager.IsEnabled(context.Background(), "FLAG"))
		})
	}
}

func TestEnvManager_Defaults(t *testing.T) {
	manager := NewEnvManager("UNSET_PREFIX_", Defaults)

	flags := manager.GetAllFlags()

	assert.Len(t, flags, 4)
	assert.True(t, flags[CacheEnabled])
	assert.True(t, flags[RateLimitEnabled])
	assert.True(t, flags[LatestFeedEnabled])
	assert.False(t, flags[QuickSearchEnabled])
}

func TestEnvManager_DefaultsAreCopied(t *testing.T) {
	defaults := map[FeatureFlag]bool{CacheEnabled: true}
	manager := NewEnvManager("UNSET_PREFIX_", defaults)
	defaults[CacheEnabled] = false

	assert.True(t, manager.IsEnabled(context.Background(), CacheEnabled))
}

func TestEnvManager_SetEnabled(t *testing.T) {
	t.Setenv("TEST_FEATURE_CACHE_ENABLED", "true")
	manager := NewEnvManager("TEST_FEATURE_", nil)

	manager.SetEnabled(CacheEnabled, false)

	assert.False(t, manager.IsEnabled(context.Background(), CacheEnabled))
}

func TestStaticManager(t *testing.T) {
	manager := NewStaticManager(map[FeatureFlag]bool{LatestFeedEnabled: true})
	ctx := context.Background()

	assert.True(t, manager.IsEnabled(ctx, LatestFeedEnabled))
	assert.False(t, manager.IsEnabled(ctx, QuickSearchEnabled))

	manager.SetEnabled(QuickSearchEnabled, true)
	assert.Equal(t, map[FeatureFlag]bool{LatestFeedEnabled: true, QuickSearchEnabled: true}, manager.GetAllFlags())
}

func TestNewStaticManager_NilMap(t *testing.T) {
	manager := NewStaticManager(nil)

	assert.NotPanics(t, func() { manager.SetEnabled(CacheEnabled, true) })
	assert.True(t, manager.IsEnabled(context.Background(), CacheEnabled))
}
