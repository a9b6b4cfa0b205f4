package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/boltdb/bolt"

	"github.com/Allan0411/Notes-API/users"
)

// UserRepository stores users in a bolt database. Lookups by email and
// username go through lowercased index buckets mapping to the user id.
type UserRepository struct {
	driver *Driver
}

func NewUserRepository(driver *Driver) *UserRepository {
	return &UserRepository{driver: driver}
}

func (r *UserRepository) Get(id int) (users.User, error) {
	var user users.User
	err := r.driver.store.View(func(tx *bolt.Tx) error {
		return getUser(tx, id, &user)
	})
	if err != nil {
		return users.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(email string) (users.User, error) {
	return r.getByIndex(emailBucket, email)
}

func (r *UserRepository) GetByUsername(username string) (users.User, error) {
	return r.getByIndex(usernameBucket, username)
}

func (r *UserRepository) getByIndex(index []byte, key string) (users.User, error) {
	var user users.User
	err := r.driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(index).Get([]byte(strings.ToLower(key)))
		if data == nil {
			return nil
		}
		return getUser(tx, int(binary.BigEndian.Uint64(data)), &user)
	})
	if err != nil {
		return users.User{}, err
	}
	return user, nil
}

func (r *UserRepository) List() ([]users.User, error) {
	var list []users.User
	err := r.driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(userBucket).Cursor()
		for k, data := c.First(); k != nil; k, data = c.Next() {
			var user users.User
			if err := json.Unmarshal(data, &user); err != nil {
				return err
			}
			list = append(list, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *UserRepository) Upsert(u *users.User) error {
	return r.driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		if u.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			u.ID = int(id)
		} else {
			// Drop the old index entries in case email or username
			// changed.
			var old users.User
			if err := getUser(tx, u.ID, &old); err != nil {
				return err
			}
			if old.ID != 0 {
				if err := tx.Bucket(emailBucket).Delete([]byte(strings.ToLower(old.Email))); err != nil {
					return err
				}
				if err := tx.Bucket(usernameBucket).Delete([]byte(strings.ToLower(old.Username))); err != nil {
					return err
				}
			}
		}

		data, err := json.Marshal(u)
		if err != nil {
			return err
		}
		if err := bucket.Put(itob(u.ID), data); err != nil {
			return err
		}

		if err := tx.Bucket(emailBucket).Put([]byte(strings.ToLower(u.Email)), itob(u.ID)); err != nil {
			return err
		}
		return tx.Bucket(usernameBucket).Put([]byte(strings.ToLower(u.Username)), itob(u.ID))
	})
}

func (r *UserRepository) SaveResetCode(rc users.ResetCode) error {
	return r.driver.store.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(rc)
		if err != nil {
			return err
		}
		return tx.Bucket(resetCodeBucket).Put([]byte(strings.ToLower(rc.Email)), data)
	})
}

func (r *UserRepository) ResetCodeFor(email string) (users.ResetCode, error) {
	var rc users.ResetCode
	err := r.driver.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(resetCodeBucket).Get([]byte(strings.ToLower(email)))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &rc)
	})
	if err != nil {
		return users.ResetCode{}, err
	}
	return rc, nil
}

func (r *UserRepository) DeleteResetCode(email string) error {
	return r.driver.store.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(resetCodeBucket).Delete([]byte(strings.ToLower(email)))
	})
}

func getUser(tx *bolt.Tx, id int, user *users.User) error {
	data := tx.Bucket(userBucket).Get(itob(id))
	if data == nil {
		return nil
	}
	return json.Unmarshal(data, user)
}

// itob returns an 8-byte big endian representation of v.
func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
