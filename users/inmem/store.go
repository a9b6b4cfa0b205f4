package inmem

import (
	"strings"
	"sync"

	"github.com/Allan0411/Notes-API/users"
)

// InMemUserRepository keeps users in maps. It backs the service tests.
type InMemUserRepository struct {
	mu     sync.Mutex
	users  map[int]users.User
	codes  map[string]users.ResetCode
	lastID int
}

func NewInMemUserRepository() *InMemUserRepository {
	return &InMemUserRepository{
		users: make(map[int]users.User),
		codes: make(map[string]users.ResetCode),
	}
}

func (r *InMemUserRepository) Get(id int) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.users[id], nil
}

func (r *InMemUserRepository) GetByEmail(email string) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return users.User{}, nil
}

func (r *InMemUserRepository) GetByUsername(username string) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return users.User{}, nil
}

func (r *InMemUserRepository) List() ([]users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]users.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, u)
	}
	return list, nil
}

func (r *InMemUserRepository) Upsert(u *users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == 0 {
		r.lastID++
		u.ID = r.lastID
	} else if u.ID > r.lastID {
		r.lastID = u.ID
	}

	r.users[u.ID] = *u
	return nil
}

func (r *InMemUserRepository) SaveResetCode(rc users.ResetCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codes[strings.ToLower(rc.Email)] = rc
	return nil
}

func (r *InMemUserRepository) ResetCodeFor(email string) (users.ResetCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.codes[strings.ToLower(email)], nil
}

func (r *InMemUserRepository) DeleteResetCode(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.codes, strings.ToLower(email))
	return nil
}
