// Package memory provides in-memory storage for the estate service.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nainaland/estate-go/internal/core/domain"
)

// Store is the in-memory content store: users, property listings, blog
// posts, and contact submissions. IDs are assigned sequentially starting
// at 1, mirroring a serial primary key.
type Store struct {
	mu sync.RWMutex

	users       map[int64]*domain.User
	usersByName map[string]int64

	properties  map[int64]*domain.Property
	posts       map[int64]*domain.BlogPost
	postsBySlug map[string]int64
	contacts    map[int64]*domain.ContactSubmission

	nextUserID     int64
	nextPropertyID int64
	nextPostID     int64
	nextContactID  int64
}

// NewStore creates an empty content store.
func NewStore() *Store {
	return &Store{
		users:          make(map[int64]*domain.User),
		usersByName:    make(map[string]int64),
		properties:     make(map[int64]*domain.Property),
		posts:          make(map[int64]*domain.BlogPost),
		postsBySlug:    make(map[string]int64),
		contacts:       make(map[int64]*domain.ContactSubmission),
		nextUserID:     1,
		nextPropertyID: 1,
		nextPostID:     1,
		nextContactID:  1,
	}
}

// FindByUsername resolves a username with case-sensitive exact match.
// Absence is a (nil, nil) result.
func (s *Store) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByName[username]
	if !ok {
		return nil, nil
	}
	clone := *s.users[id]
	return &clone, nil
}

// FindByID resolves a user by id. Absence is a (nil, nil) result.
func (s *Store) FindByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

// CreateUser stores a new user and assigns its id.
func (s *Store) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usersByName[user.Username]; taken {
		return nil, domain.ErrUsernameConflict
	}

	clone := *user
	clone.ID = s.nextUserID
	s.nextUserID++

	s.users[clone.ID] = &clone
	s.usersByName[clone.Username] = clone.ID

	result := clone
	return &result, nil
}

// AllProperties returns every listing ordered by id.
func (s *Store) AllProperties(_ context.Context) ([]*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetProperty retrieves a listing by id.
func (s *Store) GetProperty(_ context.Context, id int64) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return p.Clone(), nil
}

// CreateProperty stores a new listing and assigns its id.
func (s *Store) CreateProperty(_ context.Context, p *domain.Property) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := p.Clone()
	clone.ID = s.nextPropertyID
	s.nextPropertyID++

	s.properties[clone.ID] = clone
	return clone.Clone(), nil
}

// AllBlogPosts returns every post ordered by id.
func (s *Store) AllBlogPosts(_ context.Context) ([]*domain.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.BlogPost, 0, len(s.posts))
	for _, p := range s.posts {
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetBlogPost retrieves a post by id.
func (s *Store) GetBlogPost(_ context.Context, id int64) (*domain.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrBlogPostNotFound
	}
	return p.Clone(), nil
}

// GetBlogPostBySlug retrieves a post by slug.
func (s *Store) GetBlogPostBySlug(_ context.Context, slug string) (*domain.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.postsBySlug[slug]
	if !ok {
		return nil, domain.ErrBlogPostNotFound
	}
	return s.posts[id].Clone(), nil
}

// CreateBlogPost stores a new post and assigns its id.
func (s *Store) CreateBlogPost(_ context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.postsBySlug[post.Slug]; taken {
		return nil, domain.ErrSlugConflict
	}

	clone := post.Clone()
	clone.ID = s.nextPostID
	s.nextPostID++

	s.posts[clone.ID] = clone
	s.postsBySlug[clone.Slug] = clone.ID
	return clone.Clone(), nil
}

// CreateContactSubmission stores a submission and assigns its id.
func (s *Store) CreateContactSubmission(_ context.Context, c *domain.ContactSubmission) (*domain.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *c
	clone.ID = s.nextContactID
	s.nextContactID++

	s.contacts[clone.ID] = &clone

	result := clone
	return &result, nil
}
