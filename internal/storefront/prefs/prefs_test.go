// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prefs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/logging"
	"github.com/taibuivan/shopfront/internal/storage"
	"github.com/taibuivan/shopfront/internal/storefront/prefs"
)

/*
TestTheme covers default, storage, toggle and validation.
*/
func TestTheme(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	preferences := prefs.New(store, logging.Discard())

	assert.Equal(t, prefs.ThemeSystem, preferences.Theme(ctx))

	next, err := preferences.ToggleTheme(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, prefs.ThemeLight, next)

	next, err = preferences.ToggleTheme(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, prefs.ThemeDark, next)
	assert.Equal(t, prefs.ThemeDark, preferences.Theme(ctx))

	assert.ErrorIs(t, preferences.SetTheme(ctx, "sepia"), prefs.ErrUnknownTheme)

	require.NoError(t, store.Set(ctx, constants.StorageKeyTheme, `"neon"`))
	assert.Equal(t, prefs.ThemeSystem, preferences.Theme(ctx))
}

/*
TestLocale negotiates against the supported languages.
*/
func TestLocale(t *testing.T) {
	ctx := context.Background()
	preferences := prefs.New(storage.NewMemoryStore(), logging.Discard())

	tests := []struct {
		preferred []string
		want      language.Tag
	}{
		{[]string{"bn-BD"}, language.Bengali},
		{[]string{"fr-FR"}, language.English},
		{[]string{"fr, bn;q=0.8"}, language.Bengali},
		{nil, language.English},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, preferences.Negotiate(tt.preferred...), tt.preferred)
	}

	assert.Equal(t, language.English, preferences.Locale(ctx))
	assert.Equal(t, language.Bengali, preferences.Locale(ctx, "bn"))

	saved, err := preferences.SetLocale(ctx, "bn-IN")
	require.NoError(t, err)
	assert.Equal(t, language.Bengali, saved)
	assert.Equal(t, language.Bengali, preferences.Locale(ctx, "en"))

	_, err = preferences.SetLocale(ctx, "!!")
	assert.Error(t, err)
}
