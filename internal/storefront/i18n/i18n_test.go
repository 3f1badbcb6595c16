// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/taibuivan/shopfront/internal/storefront/i18n"
)

/*
TestPrinter resolves translations, fallbacks and plurals.
*/
func TestPrinter(t *testing.T) {
	english := i18n.Printer(language.English)
	bengali := i18n.Printer(language.Bengali)
	french := i18n.Printer(language.French)

	assert.Equal(t, "Welcome back, Jane!", english.Sprintf(i18n.WelcomeBack, "Jane"))
	assert.Equal(t, "আবার স্বাগতম, Jane!", bengali.Sprintf(i18n.WelcomeBack, "Jane"))
	assert.Equal(t, "Cart cleared", french.Sprintf(i18n.CartCleared))

	assert.Equal(t, "Added 2 × Tea to cart", english.Sprintf(i18n.AddedToCart, 2, "Tea"))

	assert.Equal(t, "No saved addresses", english.Sprintf(i18n.AddressCount, 0))
	assert.Equal(t, "1 saved address", english.Sprintf(i18n.AddressCount, 1))
	assert.Equal(t, "3 saved addresses", english.Sprintf(i18n.AddressCount, 3))
}
