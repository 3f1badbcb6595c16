// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package i18n holds the user-facing notification texts in every supported
language.

Keys are the English format strings. Look them up through a printer:

	p := i18n.Printer(language.Bengali)
	p.Sprintf(i18n.WelcomeBack, user.Name)

Missing translations fall back to English.
*/
package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	SigningIn       = "Signing in…"
	WelcomeBack     = "Welcome back, %s!"
	SignedOut       = "Signed out"
	Registering     = "Creating your account…"
	Registered      = "Account created. Check your phone for the code."
	SendingCode     = "Sending code…"
	CodeSent        = "Code sent to %s"
	Verifying       = "Verifying…"
	Verified        = "Phone verified. Welcome, %s!"
	LoadingProfile  = "Loading profile…"
	ProfileLoaded   = "Profile loaded"
	SavingProfile   = "Saving profile…"
	ProfileUpdated  = "Profile updated"
	FixFields       = "Please fix the highlighted fields."
	AddedToCart     = "Added %[1]d × %[2]s to cart"
	OutOfStock      = "%s is out of stock"
	RemovedFromCart = "Removed from cart"
	CartUpdated     = "Cart updated"
	CartCleared     = "Cart cleared"
	LoadingAddress  = "Loading addresses…"
	AddressCount    = "%d saved addresses"
	AddressSaved    = "Address saved"
	AddressDeleted  = "Address deleted"
	ThemeChanged    = "Theme set to %s"
	LocaleChanged   = "Language set to %s"
)

var catalogue = build()

// Printer returns a printer for tag over the notification catalog.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(catalogue))
}

func build() *catalog.Builder {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))

	english := map[string]string{
		SigningIn: SigningIn, WelcomeBack: WelcomeBack, SignedOut: SignedOut,
		Registering: Registering, Registered: Registered,
		SendingCode: SendingCode, CodeSent: CodeSent,
		Verifying: Verifying, Verified: Verified,
		LoadingProfile: LoadingProfile, ProfileLoaded: ProfileLoaded,
		SavingProfile: SavingProfile, ProfileUpdated: ProfileUpdated, FixFields: FixFields,
		AddedToCart: AddedToCart, OutOfStock: OutOfStock, RemovedFromCart: RemovedFromCart,
		CartUpdated: CartUpdated, CartCleared: CartCleared,
		LoadingAddress: LoadingAddress, AddressSaved: AddressSaved, AddressDeleted: AddressDeleted,
		ThemeChanged: ThemeChanged, LocaleChanged: LocaleChanged,
	}

	bengali := map[string]string{
		SigningIn:       "সাইন ইন হচ্ছে…",
		WelcomeBack:     "আবার স্বাগতম, %s!",
		SignedOut:       "সাইন আউট হয়েছে",
		Registering:     "আপনার অ্যাকাউন্ট তৈরি হচ্ছে…",
		Registered:      "অ্যাকাউন্ট তৈরি হয়েছে। কোডের জন্য আপনার ফোন দেখুন।",
		SendingCode:     "কোড পাঠানো হচ্ছে…",
		CodeSent:        "%s নম্বরে কোড পাঠানো হয়েছে",
		Verifying:       "যাচাই করা হচ্ছে…",
		Verified:        "ফোন যাচাই হয়েছে। স্বাগতম, %s!",
		LoadingProfile:  "প্রোফাইল লোড হচ্ছে…",
		ProfileLoaded:   "প্রোফাইল লোড হয়েছে",
		SavingProfile:   "প্রোফাইল সংরক্ষণ হচ্ছে…",
		ProfileUpdated:  "প্রোফাইল আপডেট হয়েছে",
		FixFields:       "অনুগ্রহ করে চিহ্নিত ঘরগুলো ঠিক করুন।",
		AddedToCart:     "কার্টে %[2]s যোগ হয়েছে (%[1]d টি)",
		OutOfStock:      "%s স্টকে নেই",
		RemovedFromCart: "কার্ট থেকে সরানো হয়েছে",
		CartUpdated:     "কার্ট আপডেট হয়েছে",
		CartCleared:     "কার্ট খালি করা হয়েছে",
		LoadingAddress:  "ঠিকানা লোড হচ্ছে…",
		AddressCount:    "%d টি সংরক্ষিত ঠিকানা",
		AddressSaved:    "ঠিকানা সংরক্ষিত হয়েছে",
		AddressDeleted:  "ঠিকানা মুছে ফেলা হয়েছে",
		ThemeChanged:    "থিম %s করা হয়েছে",
		LocaleChanged:   "ভাষা %s করা হয়েছে",
	}

	for key, text := range english {
		_ = builder.SetString(language.English, key, text)
	}
	for key, text := range bengali {
		_ = builder.SetString(language.Bengali, key, text)
	}

	_ = builder.Set(language.English, AddressCount, plural.Selectf(1, "%d",
		"=0", "No saved addresses",
		"=1", "1 saved address",
		"other", "%d saved addresses",
	))

	return builder
}
