// Package store keeps TOTP accounts in a single JSON file.
//
// The in-memory collection is always sorted by name with no duplicates.
// Every successful mutation rewrites the whole file before returning. The file
// is opened and closed on each load or save; concurrent processes are not
// coordinated and the last writer wins.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/vulnetix/totp/internal/confirm"
	"github.com/vulnetix/totp/internal/otp"
)

var (
	ErrDuplicateAccount = errors.New("account already exists")
	ErrAccountNotFound  = errors.New("account not found")
	ErrInvalidIndex     = errors.New("invalid index")
	ErrInvalidName      = errors.New("account name must not be empty")
	ErrCorruptStore     = errors.New("store file is corrupted, back up your secrets immediately")
)

// Account is a named TOTP secret. The secret is kept exactly as entered.
type Account struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

// Store is the sorted, file-backed account collection
type Store struct {
	path     string
	accounts []Account

	// Label formats account names in confirmation questions
	Label func(name string) string
}

// New returns an empty store bound to path. Call Load to read the file.
func New(path string) *Store {
	return &Store{path: path}
}

// Open creates the backing file if needed and loads it
func Open(path string) (*Store, error) {
	s := New(path)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of accounts
func (s *Store) Len() int {
	return len(s.accounts)
}

// Accounts returns a copy of the accounts in name order
func (s *Store) Accounts() []Account {
	return slices.Clone(s.accounts)
}

// Load replaces the in-memory collection with the file contents
func (s *Store) Load() error {
	if err := ensureFile(s.path); err != nil {
		return err
	}
	accounts, err := readFile(s.path)
	if err != nil {
		return err
	}
	slices.SortFunc(accounts, compareAccounts)
	for i := 1; i < len(accounts); i++ {
		if accounts[i].Name == accounts[i-1].Name {
			return fmt.Errorf("%w: duplicate account %q in %s", ErrCorruptStore, accounts[i].Name, s.path)
		}
	}
	s.accounts = accounts
	slog.Debug("store loaded", "path", s.path, "accounts", len(accounts))
	return nil
}

// Save rewrites the backing file with the in-memory collection
func (s *Store) Save() error {
	if err := writeFile(s.path, s.accounts); err != nil {
		return err
	}
	slog.Debug("store saved", "path", s.path, "accounts", len(s.accounts))
	return nil
}

// Find returns the index of name and whether it exists
func (s *Store) Find(name string) (int, bool) {
	return slices.BinarySearchFunc(s.accounts, name, func(a Account, name string) int {
		return strings.Compare(a.Name, name)
	})
}

// Get returns the account called name
func (s *Store) Get(name string) (Account, error) {
	i, ok := s.Find(name)
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, name)
	}
	return s.accounts[i], nil
}

// At returns the account at a listing row index
func (s *Store) At(index int) (Account, error) {
	if index < 0 || index >= len(s.accounts) {
		return Account{}, fmt.Errorf("%w: %d is out of range", ErrInvalidIndex, index)
	}
	return s.accounts[index], nil
}

// Add validates secret and inserts the account at its sorted position.
// An existing name is left untouched and reported with ErrDuplicateAccount.
func (s *Store) Add(name, secret string) error {
	if name == "" {
		return ErrInvalidName
	}
	if _, err := otp.Decode(secret); err != nil {
		return err
	}

	i, found := s.Find(name)
	if found {
		return fmt.Errorf("%w: %s", ErrDuplicateAccount, name)
	}

	s.accounts = slices.Insert(s.accounts, i, Account{Name: name, Secret: secret})
	if err := s.Save(); err != nil {
		s.accounts = slices.Delete(s.accounts, i, i+1)
		return err
	}
	return nil
}

// Remove deletes name once gate confirms. The removed account is returned on
// commit so its secret can be shown one last time.
func (s *Store) Remove(name string, gate confirm.Gate) (Account, confirm.State, error) {
	i, ok := s.Find(name)
	if !ok {
		return Account{}, confirm.Requested, fmt.Errorf("%w: %s", ErrAccountNotFound, name)
	}
	acc := s.accounts[i]

	state, err := confirm.NewRequest(fmt.Sprintf("Do you wish to delete this account: %s", s.label(name))).Resolve(gate)
	if err != nil || state != confirm.Committed {
		return Account{}, state, err
	}

	prev := s.accounts
	s.accounts = slices.Delete(slices.Clone(s.accounts), i, i+1)
	if err := s.Save(); err != nil {
		s.accounts = prev
		return Account{}, state, err
	}
	return acc, state, nil
}

// RemoveAll empties the store once gate confirms
func (s *Store) RemoveAll(gate confirm.Gate) (confirm.State, error) {
	q := "Do you wish to delete all of these accounts? This action is irreversible."
	state, err := confirm.NewRequest(q).Resolve(gate)
	if err != nil || state != confirm.Committed {
		return state, err
	}

	prev := s.accounts
	s.accounts = []Account{}
	if err := s.Save(); err != nil {
		s.accounts = prev
		return state, err
	}
	return state, nil
}

func (s *Store) label(name string) string {
	if s.Label == nil {
		return name
	}
	return s.Label(name)
}

func compareAccounts(a, b Account) int {
	return strings.Compare(a.Name, b.Name)
}
