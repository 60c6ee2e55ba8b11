package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

var (
	keyringService = "xsboot"
	// keyringIndexUser holds the list of hosts that have credentials
	keyringIndexUser = "xsboot_hosts"
	credentialsFile  = "repository-credentials.json"
)

// ErrNoCredentials is returned when a host has no stored credentials
var ErrNoCredentials = errors.New("no credentials stored for host")

// Credentials are used to authenticate against a repository host.
// Either User and Password or Token are set
type Credentials struct {
	Host     string        `json:"host"`
	User     string        `json:"user,omitempty"`
	Password string        `json:"password,omitempty"`
	Token    *oauth2.Token `json:"token,omitempty"`
}

// Store stores repository credentials by host
type Store struct {
	globalDir     string
	NoKeyRingMode bool

	mu    sync.RWMutex
	hosts map[string]*Credentials
}

// New creates a new store and reads existing credentials
func New(globalDir string) (*Store, error) {
	store := &Store{globalDir: globalDir, hosts: map[string]*Credentials{}}
	if err := store.Find(); err != nil {
		return nil, err
	}
	return store, nil
}

// NormalizeHost lowercases host and strips default ports
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimSuffix(host, ":443")
	return host
}

// Find tries to find existing credentials
func (s *Store) Find() error {
	index, err := keyring.Get(keyringService, keyringIndexUser)
	switch err {
	case nil:
	case keyring.ErrNotFound:
		// no credentials (yet) is fine
		return nil
	default:
		s.NoKeyRingMode = true
		return s.findFromFile()
	}

	var hosts []string
	if err := json.Unmarshal([]byte(index), &hosts); err != nil {
		return errors.Wrap(err, "invalid credential index in keyring")
	}

	for _, host := range hosts {
		raw, err := keyring.Get(keyringService, host)
		if err == keyring.ErrNotFound {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "could not read credentials of %s", host)
		}
		creds := &Credentials{}
		if err := json.Unmarshal([]byte(raw), creds); err != nil {
			return errors.Wrapf(err, "invalid credentials for %s", host)
		}
		s.hosts[host] = creds
	}
	return nil
}

// Get returns the credentials of host
func (s *Store) Get(host string) (*Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds, ok := s.hosts[NormalizeHost(host)]
	if !ok {
		return nil, errors.Wrap(ErrNoCredentials, host)
	}
	return creds, nil
}

// Hosts returns all hosts with credentials, sorted
func (s *Store) Hosts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hosts := make([]string, 0, len(s.hosts))
	for host := range s.hosts {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}

// Set stores creds and persists them
func (s *Store) Set(creds *Credentials) error {
	if creds.Host == "" {
		return errors.New("credentials need a host")
	}
	creds.Host = NormalizeHost(creds.Host)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hosts[creds.Host] = creds

	if s.NoKeyRingMode {
		return s.writeFile()
	}

	blob, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if err := keyring.Set(keyringService, creds.Host, string(blob)); err != nil {
		return errors.Wrapf(err, "could not store credentials of %s", creds.Host)
	}
	return s.writeIndex()
}

// Remove deletes the credentials of host
func (s *Store) Remove(host string) error {
	host = NormalizeHost(host)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hosts[host]; !ok {
		return errors.Wrap(ErrNoCredentials, host)
	}
	delete(s.hosts, host)

	if s.NoKeyRingMode {
		return s.writeFile()
	}

	if err := keyring.Delete(keyringService, host); err != nil && err != keyring.ErrNotFound {
		return errors.Wrapf(err, "could not delete credentials of %s", host)
	}
	return s.writeIndex()
}

func (s *Store) writeIndex() error {
	hosts := make([]string, 0, len(s.hosts))
	for host := range s.hosts {
		hosts = append(hosts, host)
	}
	blob, err := json.Marshal(hosts)
	if err != nil {
		return err
	}
	return keyring.Set(keyringService, keyringIndexUser, string(blob))
}

// findFromFile is the same as Find but reads from a plain file instead
func (s *Store) findFromFile() error {
	file := filepath.Join(s.globalDir, credentialsFile)
	raw, err := os.ReadFile(file)
	switch {
	case err == nil:
		list := []*Credentials{}
		if err := json.Unmarshal(raw, &list); err != nil {
			return errors.Wrapf(err, "invalid credentials file %s", file)
		}
		for _, creds := range list {
			s.hosts[NormalizeHost(creds.Host)] = creds
		}
		return nil
	case os.IsNotExist(err):
		// no file is fine
		return nil
	default:
		return errors.Wrap(err, "could not read credentials file")
	}
}

// writeFile writes all credentials to the config dir
func (s *Store) writeFile() error {
	list := make([]*Credentials, 0, len(s.hosts))
	for _, creds := range s.hosts {
		list = append(list, creds)
	}
	blob, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.globalDir, 0700); err != nil {
		return errors.Wrap(err, "could not create config dir")
	}
	return errors.Wrap(
		os.WriteFile(filepath.Join(s.globalDir, credentialsFile), blob, 0600),
		"could not write credentials file",
	)
}
