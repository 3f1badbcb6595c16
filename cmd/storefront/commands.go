// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/storefront/api"
	"github.com/taibuivan/shopfront/internal/storefront/cart"
	"github.com/taibuivan/shopfront/internal/storefront/i18n"
	"github.com/taibuivan/shopfront/internal/storefront/prefs"
	"github.com/taibuivan/shopfront/internal/storefront/toast"
	"github.com/taibuivan/shopfront/pkg/convert"
	"github.com/taibuivan/shopfront/pkg/pointer"
)

// command is one subcommand.
type command struct {
	name    string
	usage   string
	summary string
	run     func(a *app, ctx context.Context, args []string) error
}

func commandList() []command {
	return []command{
		{"register", "register --name --phone --password", "create an account", (*app).register},
		{"send-otp", "send-otp --phone", "send a verification code", (*app).sendOTP},
		{"verify-otp", "verify-otp --phone --otp", "verify the phone and sign in", (*app).verifyOTP},
		{"login", "login --phone --password", "sign in", (*app).login},
		{"logout", "logout", "sign out", (*app).logout},
		{"me", "me", "show the signed-in customer", (*app).me},
		{"profile", "profile show|update [--name --email]", "view or edit the profile", (*app).profileCmd},
		{"address", "address list|show|add|update|delete", "manage delivery addresses", (*app).addressCmd},
		{"cart", "cart show|add|update|remove|clear", "manage the local cart", (*app).cartCmd},
		{"theme", "theme [light|dark|system|toggle]", "show or set the theme", (*app).themeCmd},
		{"locale", "locale [tag]", "show or set the display language", (*app).localeCmd},
	}
}

func (a *app) dispatch(ctx context.Context, name string, args []string) error {
	for _, cmd := range commandList() {
		if cmd.name == name {
			return cmd.run(a, ctx, args)
		}
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, name)
}

// newFlags returns a subcommand flag set writing errors to stderr.
func (a *app) newFlags(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(a.stderr)
	return flags
}

func parse(flags *pflag.FlagSet, args []string) error {
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, flags.Name(), err)
	}
	return nil
}

// # Authentication

func (a *app) register(ctx context.Context, args []string) error {
	flags := a.newFlags("register")
	var input api.RegisterInput
	flags.StringVar(&input.Name, "name", "", "full name")
	flags.StringVar(&input.PhoneNumber, "phone", "", "mobile number, e.g. 01700000000")
	flags.StringVar(&input.Email, "email", "", "email address")
	flags.StringVar(&input.WhatsappNumber, "whatsapp", "", "WhatsApp number")
	flags.StringVar(&input.Password, "password", "", "password")
	flags.StringVar(&input.PasswordConfirmation, "confirm", "", "password again (defaults to --password)")
	if err := parse(flags, args); err != nil {
		return err
	}
	if !flags.Changed("confirm") {
		input.PasswordConfirmation = input.Password
	}

	_, err := toast.Promise(a.toasts, func() (*api.Payload, error) {
		return a.session.Register(ctx, input)
	}, toast.PromiseMessages[*api.Payload]{
		Loading: a.printer.Sprintf(i18n.Registering),
		Success: func(*api.Payload) string { return a.printer.Sprintf(i18n.Registered) },
		Error:   a.errorMessage,
	})
	a.fieldErrors(err)
	return err
}

func (a *app) sendOTP(ctx context.Context, args []string) error {
	flags := a.newFlags("send-otp")
	phone := flags.String("phone", "", "mobile number")
	if err := parse(flags, args); err != nil {
		return err
	}

	_, err := toast.Promise(a.toasts, func() (*api.Payload, error) {
		return a.session.SendOTP(ctx, *phone)
	}, toast.PromiseMessages[*api.Payload]{
		Loading: a.printer.Sprintf(i18n.SendingCode),
		Success: func(*api.Payload) string { return a.printer.Sprintf(i18n.CodeSent, *phone) },
		Error:   a.errorMessage,
	})
	a.fieldErrors(err)
	return err
}

func (a *app) verifyOTP(ctx context.Context, args []string) error {
	flags := a.newFlags("verify-otp")
	phone := flags.String("phone", "", "mobile number")
	otp := flags.String("otp", "", "the code received by SMS")
	if err := parse(flags, args); err != nil {
		return err
	}

	_, err := toast.Promise(a.toasts, func() (*api.User, error) {
		return a.session.VerifyOTP(ctx, *phone, *otp)
	}, toast.PromiseMessages[*api.User]{
		Loading: a.printer.Sprintf(i18n.Verifying),
		Success: func(user *api.User) string { return a.printer.Sprintf(i18n.Verified, user.Name) },
		Error:   a.errorMessage,
	})
	a.fieldErrors(err)
	return err
}

func (a *app) login(ctx context.Context, args []string) error {
	flags := a.newFlags("login")
	phone := flags.String("phone", "", "mobile number")
	password := flags.String("password", "", "password")
	if err := parse(flags, args); err != nil {
		return err
	}

	_, err := toast.Promise(a.toasts, func() (*api.User, error) {
		return a.session.Login(ctx, *phone, *password)
	}, toast.PromiseMessages[*api.User]{
		Loading: a.printer.Sprintf(i18n.SigningIn),
		Success: func(user *api.User) string { return a.printer.Sprintf(i18n.WelcomeBack, user.Name) },
		Error:   a.errorMessage,
	})
	a.fieldErrors(err)
	return err
}

// logout always clears the local session.
func (a *app) logout(ctx context.Context, _ []string) error {
	a.session.Logout(ctx)
	a.toasts.Success(a.printer.Sprintf(i18n.SignedOut))
	return nil
}

func (a *app) me(ctx context.Context, _ []string) error {
	user, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	printUser(a.stdout, *user)
	return nil
}

// requireSession bootstraps the session and fails when signed out.
func (a *app) requireSession(ctx context.Context) (*api.User, error) {
	state := a.session.Bootstrap(ctx)
	if !state.IsAuthenticated || state.User == nil {
		err := apperr.Unauthorized("You are not signed in.")
		a.toasts.Error(err.Message)
		return nil, err
	}
	return state.User, nil
}

// # Profile

func (a *app) profileCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: profile show|update", errUsage)
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "show":
		user, err := toast.Promise(a.toasts, func() (*api.User, error) {
			return a.profile.Fetch(ctx)
		}, toast.PromiseMessages[*api.User]{
			Loading: a.printer.Sprintf(i18n.LoadingProfile),
			Success: func(*api.User) string { return a.printer.Sprintf(i18n.ProfileLoaded) },
			Error:   a.errorMessage,
		})
		if err != nil {
			return err
		}
		printUser(a.stdout, *user)
		return nil

	case "update":
		flags := a.newFlags("profile update")
		name := flags.String("name", "", "full name")
		email := flags.String("email", "", "email address")
		whatsapp := flags.String("whatsapp", "", "WhatsApp number")
		if err := parse(flags, args[1:]); err != nil {
			return err
		}

		input := api.ProfileInput{
			Name:           pointer.If(flags.Changed("name"), *name),
			Email:          pointer.If(flags.Changed("email"), *email),
			WhatsappNumber: pointer.If(flags.Changed("whatsapp"), *whatsapp),
		}

		user, err := toast.Promise(a.toasts, func() (*api.User, error) {
			return a.profile.Update(ctx, input)
		}, toast.PromiseMessages[*api.User]{
			Loading: a.printer.Sprintf(i18n.SavingProfile),
			Success: func(*api.User) string { return a.printer.Sprintf(i18n.ProfileUpdated) },
			Error:   a.errorMessage,
		})
		if err != nil {
			a.printFields(a.profile.State().ValidationErrors)
			return err
		}
		printUser(a.stdout, *user)
		return nil
	}

	return fmt.Errorf("%w: unknown profile action %q", errUsage, args[0])
}

// # Addresses

func (a *app) addressCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: address list|show|add|update|delete", errUsage)
	}
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	action, rest := args[0], args[1:]
	switch action {
	case "list":
		addresses, err := toast.Promise(a.toasts, func() ([]api.Address, error) {
			return a.client.Addresses(ctx)
		}, toast.PromiseMessages[[]api.Address]{
			Loading: a.printer.Sprintf(i18n.LoadingAddress),
			Success: func(list []api.Address) string { return a.printer.Sprintf(i18n.AddressCount, len(list)) },
			Error:   a.errorMessage,
		})
		if err != nil {
			return err
		}
		printAddresses(a.stdout, addresses)
		return nil

	case "show", "delete":
		if len(rest) != 1 {
			return fmt.Errorf("%w: address %s <id>", errUsage, action)
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}

		if action == "delete" {
			_, err := toast.Promise(a.toasts, func() (struct{}, error) {
				return struct{}{}, a.client.DeleteAddress(ctx, id)
			}, toast.PromiseMessages[struct{}]{
				Loading: a.printer.Sprintf(i18n.LoadingAddress),
				Success: func(struct{}) string { return a.printer.Sprintf(i18n.AddressDeleted) },
				Error:   a.errorMessage,
			})
			return err
		}

		address, err := a.client.Address(ctx, id)
		if err != nil {
			a.toasts.Error(a.errorMessage(err))
			return err
		}
		printAddresses(a.stdout, []api.Address{*address})
		return nil

	case "add", "update":
		var id int64
		if action == "update" {
			if len(rest) == 0 {
				return fmt.Errorf("%w: address update <id> [flags]", errUsage)
			}
			parsed, err := parseID(rest[0])
			if err != nil {
				return err
			}
			id, rest = parsed, rest[1:]
		}

		flags := a.newFlags("address " + action)
		var input api.AddressInput
		flags.StringVar(&input.Label, "label", "", "label, e.g. Home")
		flags.StringVar(&input.RecipientName, "recipient", "", "recipient name")
		flags.StringVar(&input.PhoneNumber, "phone", "", "recipient phone")
		flags.StringVar(&input.AddressLine, "line", "", "street address")
		flags.StringVar(&input.Area, "area", "", "area")
		flags.StringVar(&input.City, "city", "", "city")
		flags.StringVar(&input.PostalCode, "postal-code", "", "postal code")
		flags.BoolVar(&input.IsDefault, "default", false, "make this the default address")
		if err := parse(flags, rest); err != nil {
			return err
		}

		address, err := toast.Promise(a.toasts, func() (*api.Address, error) {
			if id == 0 {
				return a.client.CreateAddress(ctx, input)
			}
			return a.client.UpdateAddress(ctx, id, input)
		}, toast.PromiseMessages[*api.Address]{
			Loading: a.printer.Sprintf(i18n.LoadingAddress),
			Success: func(*api.Address) string { return a.printer.Sprintf(i18n.AddressSaved) },
			Error:   a.errorMessage,
		})
		if err != nil {
			a.fieldErrors(err)
			return err
		}
		printAddresses(a.stdout, []api.Address{*address})
		return nil
	}

	return fmt.Errorf("%w: unknown address action %q", errUsage, action)
}

// # Cart

func (a *app) cartCmd(ctx context.Context, args []string) error {
	action := "show"
	if len(args) > 0 {
		action, args = args[0], args[1:]
	}

	switch action {
	case "show":

	case "add":
		flags := a.newFlags("cart add")
		var product cart.Product
		var price string
		flags.Int64Var(&product.ID, "id", 0, "product id")
		flags.StringVar(&product.Name, "name", "", "product name")
		flags.StringVar(&price, "price", "0", "unit price")
		flags.IntVar(&product.Stock, "stock", 0, "units in stock")
		flags.StringVar(&product.Image, "image", "", "image URL")
		quantity := flags.IntP("quantity", "q", 1, "units to add")
		if err := parse(flags, args); err != nil {
			return err
		}
		if product.ID == 0 || product.Name == "" {
			return fmt.Errorf("%w: cart add needs --id and --name", errUsage)
		}

		unitPrice, err := decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("%w: invalid --price %q", errUsage, price)
		}
		product.Price = unitPrice

		if added := a.cart.Add(ctx, product, *quantity); added == 0 {
			a.toasts.Error(a.printer.Sprintf(i18n.OutOfStock, product.Name))
		} else {
			a.toasts.Success(a.printer.Sprintf(i18n.AddedToCart, added, product.Name))
		}

	case "update":
		if len(args) != 2 {
			return fmt.Errorf("%w: cart update <id> <quantity>", errUsage)
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		quantity := convert.ToIntD(args[1], -1)
		if quantity < 0 {
			return fmt.Errorf("%w: invalid quantity %q", errUsage, args[1])
		}
		a.cart.UpdateQuantity(ctx, id, quantity)
		a.toasts.Success(a.printer.Sprintf(i18n.CartUpdated))

	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("%w: cart remove <id>", errUsage)
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		a.cart.Remove(ctx, id)
		a.toasts.Success(a.printer.Sprintf(i18n.RemovedFromCart))

	case "clear":
		a.cart.Clear(ctx)
		a.toasts.Success(a.printer.Sprintf(i18n.CartCleared))

	default:
		return fmt.Errorf("%w: unknown cart action %q", errUsage, action)
	}

	printCart(a.stdout, a.cart.Snapshot())
	return nil
}

// # Preferences

func (a *app) themeCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.stdout, a.prefs.Theme(ctx))
		return nil
	}

	var theme prefs.Theme
	var err error
	if args[0] == "toggle" {
		theme, err = a.prefs.ToggleTheme(ctx, terminalDark(os.Getenv("COLORFGBG")))
	} else {
		theme = prefs.Theme(args[0])
		err = a.prefs.SetTheme(ctx, theme)
	}
	if err != nil {
		a.toasts.Error(err.Error())
		return err
	}

	a.toasts.Success(a.printer.Sprintf(i18n.ThemeChanged, theme))
	return nil
}

func (a *app) localeCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.stdout, a.prefs.Locale(ctx))
		return nil
	}

	tag, err := a.prefs.SetLocale(ctx, args[0])
	if err != nil {
		a.toasts.Error(err.Error())
		return err
	}

	// Confirm in the newly selected language.
	a.printer = i18n.Printer(tag)
	a.toasts.Success(a.printer.Sprintf(i18n.LocaleChanged, tag))
	return nil
}

// # Helpers

// errorMessage maps a failed call to a toast text. Field errors get the
// generic prompt; the fields themselves are listed by [app.fieldErrors].
func (a *app) errorMessage(err error) string {
	if apperr.IsValidation(err) {
		return a.printer.Sprintf(i18n.FixFields)
	}
	return apperr.Message(err)
}

func (a *app) fieldErrors(err error) {
	if ae := apperr.As(err); ae != nil && apperr.IsValidation(err) {
		a.printFields(ae.Errors)
	}
}

func parseID(raw string) (int64, error) {
	id := convert.ToInt64(raw)
	if id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errUsage, raw)
	}
	return id, nil
}
