// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/taibuivan/shopfront/internal/storefront/api"
	"github.com/taibuivan/shopfront/internal/storefront/cart"
	"github.com/taibuivan/shopfront/internal/storefront/toast"
	"github.com/taibuivan/shopfront/pkg/pointer"
)

// # Toasts

// renderer prints each toast once per distinct text. A loading toast that
// resolves is printed again with its final text.
type renderer struct {
	out io.Writer

	mu   sync.Mutex
	seen map[string]string
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{out: out, seen: make(map[string]string)}
}

// render is a [toast.Queue] listener.
func (r *renderer) render(toasts []toast.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The queue lists newest first.
	for _, item := range slices.Backward(toasts) {
		if !item.Visible {
			continue
		}
		line := item.String()
		if r.seen[item.ID] == line {
			continue
		}
		r.seen[item.ID] = line
		fmt.Fprintln(r.out, line)
	}
}

// # Data Output

func printUser(out io.Writer, user api.User) {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer writer.Flush()

	fmt.Fprintf(writer, "ID\t%d\n", user.ID)
	fmt.Fprintf(writer, "Name\t%s\n", user.Name)
	fmt.Fprintf(writer, "Phone\t%s\n", user.PhoneNumber)
	fmt.Fprintf(writer, "Verified\t%s\n", pointer.Fallback(user.PhoneVerifiedAt, "no"))
	if user.Email != "" {
		fmt.Fprintf(writer, "Email\t%s\n", user.Email)
	}
	if user.WhatsappNumber != "" {
		fmt.Fprintf(writer, "WhatsApp\t%s\n", user.WhatsappNumber)
	}
}

func printAddresses(out io.Writer, addresses []api.Address) {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer writer.Flush()

	fmt.Fprintln(writer, "ID\tLABEL\tRECIPIENT\tADDRESS\tCITY\tDEFAULT")
	for _, address := range addresses {
		line := address.AddressLine
		if address.Area != "" {
			line += ", " + address.Area
		}
		isDefault := ""
		if address.IsDefault {
			isDefault = "*"
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%s\n",
			address.ID, address.Label, address.RecipientName, line, address.City, isDefault)
	}
}

func printCart(out io.Writer, snapshot cart.Snapshot) {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	defer writer.Flush()

	fmt.Fprintln(writer, "ID\tPRODUCT\tPRICE\tQTY\tSUBTOTAL\t")
	for _, item := range snapshot.Items {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%d\t%s\t\n",
			item.Product.ID, item.Product.Name, item.Product.Price.StringFixed(2), item.Quantity, item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(writer, "\tTotal\t\t%d\t%s\t\n", snapshot.Count, snapshot.Total.StringFixed(2))
}

// printFields lists field errors on stderr, one field per line.
func (a *app) printFields(errs map[string][]string) {
	for _, field := range slices.Sorted(maps.Keys(errs)) {
		fmt.Fprintf(a.stderr, "  %s: %s\n", field, strings.Join(errs[field], " "))
	}
}
