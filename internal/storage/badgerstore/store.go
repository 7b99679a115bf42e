// Package badgerstore provides a Badger-backed content store.
//
// Catalog content (users, listings, posts, contact submissions) may
// outlive a process restart; sessions never do, so the session registry
// deliberately has no Badger implementation.
//
// Layout: one JSON document per record under a type prefix
// (user/{id}, prop/{id}, blog/{id}, contact/{id}) plus name and slug
// index keys pointing at the primary id.
package badgerstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v3"

	"github.com/nainaland/estate-go/internal/core/domain"
	"github.com/nainaland/estate-go/internal/telemetry/logger"
)

// Key prefixes.
const (
	prefixUser       = "user/"
	prefixUserByName = "user_name/"
	prefixProperty   = "prop/"
	prefixPost       = "blog/"
	prefixPostBySlug = "blog_slug/"
	prefixContact    = "contact/"
)

// Sequence names for id assignment.
const (
	seqUsers      = "seq/users"
	seqProperties = "seq/properties"
	seqPosts      = "seq/posts"
	seqContacts   = "seq/contacts"
)

// Config holds Badger store configuration.
type Config struct {
	// Dir is the data directory. Ignored when InMemory is set.
	Dir string

	// InMemory runs Badger without disk persistence (tests).
	InMemory bool
}

// Store is a Badger-backed implementation of the content repositories.
type Store struct {
	db  *badger.DB
	log logger.Logger

	seqUsers      *badger.Sequence
	seqProperties *badger.Sequence
	seqPosts      *badger.Sequence
	seqContacts   *badger.Sequence
}

// Open opens the store, creating the data directory as needed.
func Open(cfg Config, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Default()
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Dir == "" {
			return nil, fmt.Errorf("badgerstore: dir is required")
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: open db: %w", err)
	}

	s := &Store{db: db, log: log}

	// Sequences hand out ids in batches; bandwidth 16 keeps gaps small
	// after a crash without a write per id.
	for _, seq := range []struct {
		name string
		dst  **badger.Sequence
	}{
		{seqUsers, &s.seqUsers},
		{seqProperties, &s.seqProperties},
		{seqPosts, &s.seqPosts},
		{seqContacts, &s.seqContacts},
	} {
		sq, err := db.GetSequence([]byte(seq.name), 16)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("badgerstore: sequence %s: %w", seq.name, err)
		}
		*seq.dst = sq
	}

	log.Info("badger store opened", "dir", cfg.Dir, "in_memory", cfg.InMemory)
	return s, nil
}

// Close releases sequences and closes the database.
func (s *Store) Close() error {
	for _, seq := range []*badger.Sequence{s.seqUsers, s.seqProperties, s.seqPosts, s.seqContacts} {
		if seq != nil {
			seq.Release()
		}
	}
	return s.db.Close()
}

func idKey(prefix string, id int64) []byte {
	// Big-endian ids keep prefix iteration in insertion order.
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], uint64(id))
	return key
}

func (s *Store) nextID(seq *badger.Sequence) (int64, error) {
	n, err := seq.Next()
	if err != nil {
		return 0, err
	}
	// Sequences start at 0; ids start at 1.
	return int64(n) + 1, nil
}

func (s *Store) getJSON(key []byte, target any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, target)
		})
	})
}

func (s *Store) setJSON(txn *badger.Txn, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// FindByUsername resolves a username via the name index.
// Absence is a (nil, nil) result.
func (s *Store) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixUserByName + username))
		if err != nil {
			return err
		}
		var id int64
		if err := item.Value(func(val []byte) error {
			id = int64(binary.BigEndian.Uint64(val))
			return nil
		}); err != nil {
			return err
		}
		rec, err := txn.Get(idKey(prefixUser, id))
		if err != nil {
			return err
		}
		return rec.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID resolves a user by id. Absence is a (nil, nil) result.
func (s *Store) FindByID(_ context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.getJSON(idKey(prefixUser, id), &user)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser stores a new user and assigns its id.
func (s *Store) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	id, err := s.nextID(s.seqUsers)
	if err != nil {
		return nil, err
	}

	clone := *user
	clone.ID = id

	err = s.db.Update(func(txn *badger.Txn) error {
		nameKey := []byte(prefixUserByName + clone.Username)
		if _, err := txn.Get(nameKey); err == nil {
			return domain.ErrUsernameConflict
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		idBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(idBytes, uint64(id))
		if err := txn.Set(nameKey, idBytes); err != nil {
			return err
		}
		return s.setJSON(txn, idKey(prefixUser, id), &clone)
	})
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

// AllProperties returns every listing ordered by id.
func (s *Store) AllProperties(_ context.Context) ([]*domain.Property, error) {
	var result []*domain.Property
	err := s.scanJSON(prefixProperty, func(data []byte) error {
		var p domain.Property
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		result = append(result, &p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetProperty retrieves a listing by id.
func (s *Store) GetProperty(_ context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	err := s.getJSON(idKey(prefixProperty, id), &p)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProperty stores a new listing and assigns its id.
func (s *Store) CreateProperty(_ context.Context, p *domain.Property) (*domain.Property, error) {
	id, err := s.nextID(s.seqProperties)
	if err != nil {
		return nil, err
	}

	clone := p.Clone()
	clone.ID = id

	err = s.db.Update(func(txn *badger.Txn) error {
		return s.setJSON(txn, idKey(prefixProperty, id), clone)
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}

// AllBlogPosts returns every post ordered by id.
func (s *Store) AllBlogPosts(_ context.Context) ([]*domain.BlogPost, error) {
	var result []*domain.BlogPost
	err := s.scanJSON(prefixPost, func(data []byte) error {
		var p domain.BlogPost
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		result = append(result, &p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetBlogPost retrieves a post by id.
func (s *Store) GetBlogPost(_ context.Context, id int64) (*domain.BlogPost, error) {
	var p domain.BlogPost
	err := s.getJSON(idKey(prefixPost, id), &p)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrBlogPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBlogPostBySlug retrieves a post via the slug index.
func (s *Store) GetBlogPostBySlug(_ context.Context, slug string) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixPostBySlug + slug))
		if err != nil {
			return err
		}
		var id int64
		if err := item.Value(func(val []byte) error {
			id = int64(binary.BigEndian.Uint64(val))
			return nil
		}); err != nil {
			return err
		}
		rec, err := txn.Get(idKey(prefixPost, id))
		if err != nil {
			return err
		}
		return rec.Value(func(val []byte) error {
			return json.Unmarshal(val, &post)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrBlogPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// CreateBlogPost stores a new post and assigns its id.
func (s *Store) CreateBlogPost(_ context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	id, err := s.nextID(s.seqPosts)
	if err != nil {
		return nil, err
	}

	clone := post.Clone()
	clone.ID = id

	err = s.db.Update(func(txn *badger.Txn) error {
		slugKey := []byte(prefixPostBySlug + clone.Slug)
		if _, err := txn.Get(slugKey); err == nil {
			return domain.ErrSlugConflict
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		idBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(idBytes, uint64(id))
		if err := txn.Set(slugKey, idBytes); err != nil {
			return err
		}
		return s.setJSON(txn, idKey(prefixPost, id), clone)
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}

// CreateContactSubmission stores a submission and assigns its id.
func (s *Store) CreateContactSubmission(_ context.Context, c *domain.ContactSubmission) (*domain.ContactSubmission, error) {
	id, err := s.nextID(s.seqContacts)
	if err != nil {
		return nil, err
	}

	clone := *c
	clone.ID = id

	err = s.db.Update(func(txn *badger.Txn) error {
		return s.setJSON(txn, idKey(prefixContact, id), &clone)
	})
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

// scanJSON iterates every value under a prefix.
func (s *Store) scanJSON(prefix string, fn func(data []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := it.Item().Value(func(val []byte) error {
				data := append([]byte(nil), val...)
				return fn(data)
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
