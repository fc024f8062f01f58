package fakeuserrepo

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

// FakeUserRepo keeps users in memory. Returned users are copies.
type FakeUserRepo struct {
	users    map[string]*users.User
	emailIds map[string]string // lower-cased email to user id
	lock     sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[string]*users.User),
		emailIds: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	email := strings.ToLower(user.Email)
	if id, ok := ur.emailIds[email]; ok && id != user.ID {
		return errors.Wrapf(errors.ErrConflict, "email %s", user.Email)
	}
	if prev, ok := ur.users[user.ID]; ok {
		delete(ur.emailIds, strings.ToLower(prev.Email))
	}
	stored := copyUser(user)
	ur.users[user.ID] = stored
	ur.emailIds[email] = user.ID
	return nil
}

func (ur *FakeUserRepo) Delete(id string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[id]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "user %s", id)
	}
	delete(ur.emailIds, strings.ToLower(user.Email))
	delete(ur.users, id)
	return nil
}

func (ur *FakeUserRepo) DeleteByTenant(tenantID string) (int, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	removed := 0
	for id, u := range ur.users {
		if u.Tenant() == tenantID {
			delete(ur.emailIds, strings.ToLower(u.Email))
			delete(ur.users, id)
			removed++
		}
	}
	return removed, nil
}

func (ur *FakeUserRepo) GetByEmail(email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[strings.ToLower(email)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "user %s", email)
	}
	return copyUser(ur.users[id]), nil
}

func (ur *FakeUserRepo) GetByID(id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "user %s", id)
	}
	return copyUser(user), nil
}

func (ur *FakeUserRepo) List(filter users.ListFilter) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	search := strings.ToLower(filter.Search)
	userList := make([]*users.User, 0)
	for _, v := range ur.users {
		if filter.TenantID != "" && v.Tenant() != filter.TenantID {
			continue
		}
		if filter.Role != "" && v.Role != filter.Role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(v.Nome), search) &&
			!strings.Contains(strings.ToLower(v.Email), search) {
			continue
		}
		userList = append(userList, copyUser(v))
	}

	sort.Slice(userList, func(i, j int) bool {
		return userList[i].Email < userList[j].Email
	})
	return userList, nil
}

func copyUser(u *users.User) *users.User {
	c := *u
	if u.TenantID != nil {
		tenant := *u.TenantID
		c.TenantID = &tenant
	}
	return &c
}
