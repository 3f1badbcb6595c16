// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package devapi

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/shopfront/internal/storefront/api"
)

// account is a stored customer with its credentials.
type account struct {
	user         api.User
	passwordHash string
}

type pendingOTP struct {
	code      string
	expiresAt time.Time
}

// Store is the in-memory state of the development backend.
//
// # Concurrency
//
// Safe for concurrent use. Returned values are copies.
type Store struct {
	mu sync.RWMutex

	nextUserID    int64
	nextAddressID int64

	accounts  map[int64]*account
	byPhone   map[string]int64
	addresses map[int64][]api.Address
	otps      map[string]pendingOTP
	// revoked maps a token id to the expiry of its token.
	revoked map[string]time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[int64]*account),
		byPhone:   make(map[string]int64),
		addresses: make(map[int64][]api.Address),
		otps:      make(map[string]pendingOTP),
		revoked:   make(map[string]time.Time),
	}
}

// ping fails for a zero Store that was not built with [NewStore].
func (store *Store) ping() error {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.accounts == nil {
		return errors.New("devapi: store not initialized")
	}
	return nil
}

// # Accounts

// createAccount stores user and assigns its id. It reports false when the
// phone number is taken.
func (store *Store) createAccount(user api.User, passwordHash string) (api.User, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, taken := store.byPhone[user.PhoneNumber]; taken {
		return api.User{}, false
	}

	store.nextUserID++
	user.ID = store.nextUserID
	store.accounts[user.ID] = &account{user: user, passwordHash: passwordHash}
	store.byPhone[user.PhoneNumber] = user.ID
	return user, true
}

func (store *Store) accountByPhone(phone string) (account, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	id, ok := store.byPhone[phone]
	if !ok {
		return account{}, false
	}
	return *store.accounts[id], true
}

func (store *Store) user(id int64) (api.User, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	found, ok := store.accounts[id]
	if !ok {
		return api.User{}, false
	}
	return found.user, true
}

// updateUser applies change to the stored user and returns the result.
func (store *Store) updateUser(id int64, change func(user *api.User)) (api.User, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	found, ok := store.accounts[id]
	if !ok {
		return api.User{}, false
	}
	change(&found.user)
	return found.user, true
}

// emailTaken reports whether another user owns email.
func (store *Store) emailTaken(email string, exceptID int64) bool {
	store.mu.RLock()
	defer store.mu.RUnlock()

	for id, existing := range store.accounts {
		if id != exceptID && email != "" && existing.user.Email == email {
			return true
		}
	}
	return false
}

// # One-Time Passwords

func (store *Store) putOTP(phone, code string, expiresAt time.Time) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.otps[phone] = pendingOTP{code: code, expiresAt: expiresAt}
}

// pendingCode returns the pending code of phone without consuming it.
func (store *Store) pendingCode(phone string) (string, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	pending, ok := store.otps[phone]
	return pending.code, ok
}

// consumeOTP deletes the pending code of phone when accept approves it. The
// check and the delete share one lock, so a code is accepted at most once.
func (store *Store) consumeOTP(phone string, accept func(pending pendingOTP) bool) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	pending, ok := store.otps[phone]
	if !ok || !accept(pending) {
		return false
	}
	delete(store.otps, phone)
	return true
}

// # Token Revocation

func (store *Store) revoke(tokenID string, expiresAt time.Time) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.revoked[tokenID] = expiresAt
}

func (store *Store) isRevoked(tokenID string, now time.Time) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	expiresAt, ok := store.revoked[tokenID]
	if ok && now.After(expiresAt) {
		// The token expired on its own; forget it.
		delete(store.revoked, tokenID)
		return false
	}
	return ok
}

// # Addresses

func (store *Store) addressList(userID int64) []api.Address {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return slices.Clone(store.addresses[userID])
}

func (store *Store) address(userID, id int64) (api.Address, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	list := store.addresses[userID]
	index := slices.IndexFunc(list, func(address api.Address) bool { return address.ID == id })
	if index < 0 {
		return api.Address{}, false
	}
	return list[index], true
}

// saveAddress creates (ID 0) or replaces an address. A default address
// clears the flag on the others. The first address is always the default.
func (store *Store) saveAddress(userID int64, address api.Address) (api.Address, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	list := store.addresses[userID]

	if address.ID == 0 {
		store.nextAddressID++
		address.ID = store.nextAddressID
		if len(list) == 0 {
			address.IsDefault = true
		}
		list = append(list, address)
	} else {
		index := slices.IndexFunc(list, func(existing api.Address) bool { return existing.ID == address.ID })
		if index < 0 {
			return api.Address{}, false
		}
		list[index] = address
	}

	if address.IsDefault {
		for index := range list {
			list[index].IsDefault = list[index].ID == address.ID
		}
	}

	store.addresses[userID] = list
	return address, true
}

// deleteAddress removes an address. Deleting the default promotes the oldest
// remaining one.
func (store *Store) deleteAddress(userID, id int64) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	list := store.addresses[userID]
	kept := slices.DeleteFunc(slices.Clone(list), func(address api.Address) bool { return address.ID == id })
	if len(kept) == len(list) {
		return false
	}
	if len(kept) > 0 && !slices.ContainsFunc(kept, func(address api.Address) bool { return address.IsDefault }) {
		kept[0].IsDefault = true
	}
	store.addresses[userID] = kept
	return true
}
