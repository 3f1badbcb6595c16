// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package prefs persists the UI theme and the display language.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/storage"
)

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ErrUnknownTheme is returned for a theme outside light, dark and system.
var ErrUnknownTheme = errors.New("prefs: unknown theme")

// Supported lists the display languages, default first.
var Supported = []language.Tag{language.English, language.Bengali}

// Preferences reads and writes the theme and locale slots.
type Preferences struct {
	theme   *storage.Slot[Theme]
	locale  *storage.Slot[string]
	matcher language.Matcher
	logger  *slog.Logger
}

// New binds the preference slots to store.
func New(store storage.Store, logger *slog.Logger) *Preferences {
	return &Preferences{
		theme:   storage.NewSlot[Theme](store, constants.StorageKeyTheme, logger),
		locale:  storage.NewSlot[string](store, constants.StorageKeyLocale, logger),
		matcher: language.NewMatcher(Supported),
		logger:  logger,
	}
}

// # Theme

// Theme returns the stored theme, or [ThemeSystem].
func (prefs *Preferences) Theme(ctx context.Context) Theme {
	theme, ok := prefs.theme.Load(ctx)
	if !ok || !theme.valid() {
		return ThemeSystem
	}
	return theme
}

// SetTheme stores theme.
func (prefs *Preferences) SetTheme(ctx context.Context, theme Theme) error {
	if !theme.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	return prefs.theme.Save(ctx, theme)
}

// ToggleTheme switches between light and dark, resolving system first.
func (prefs *Preferences) ToggleTheme(ctx context.Context, systemDark bool) (Theme, error) {
	next := ThemeDark
	if prefs.Theme(ctx).Resolve(systemDark) == ThemeDark {
		next = ThemeLight
	}
	return next, prefs.SetTheme(ctx, next)
}

// Resolve maps [ThemeSystem] to the scheme the system reports.
func (theme Theme) Resolve(systemDark bool) Theme {
	if theme != ThemeSystem {
		return theme
	}
	if systemDark {
		return ThemeDark
	}
	return ThemeLight
}

func (theme Theme) valid() bool {
	switch theme {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// # Locale

// Negotiate picks the best supported language for the given BCP 47 tags or
// Accept-Language values.
func (prefs *Preferences) Negotiate(preferred ...string) language.Tag {
	_, index := language.MatchStrings(prefs.matcher, preferred...)
	return Supported[index]
}

// Locale returns the stored language, or the best match of fallback.
func (prefs *Preferences) Locale(ctx context.Context, fallback ...string) language.Tag {
	if stored, ok := prefs.locale.Load(ctx); ok {
		return prefs.Negotiate(append([]string{stored}, fallback...)...)
	}
	return prefs.Negotiate(fallback...)
}

// SetLocale stores the supported language closest to tag.
func (prefs *Preferences) SetLocale(ctx context.Context, tag string) (language.Tag, error) {
	if _, err := language.Parse(tag); err != nil {
		return language.Und, fmt.Errorf("prefs: invalid locale %q: %w", tag, err)
	}

	matched := prefs.Negotiate(tag)
	if err := prefs.locale.Save(ctx, matched.String()); err != nil {
		return language.Und, err
	}

	prefs.logger.Debug("prefs_locale_saved", slog.String("locale", matched.String()))
	return matched, nil
}
