package models

// User lives in the relational store. Orders reference it by numeric id
// only; nothing enforces the reference across stores.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
