package userservice

import (
	"database/sql"

	"github.com/sushihentaime/kamelthinks/internal/common"
)

type UserService struct {
	m  *UserModel
	mb common.MessageProducer
	c  *common.Cache
}

type UserModel struct {
	db *sql.DB
}

type User struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Password Password `json:"-"`
}

// Password keeps the bcrypt hash behind a small interface so the hash
// algorithm can be swapped without touching calling code.
type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}
