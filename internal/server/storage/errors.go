package storage

import "errors"

// Common server storage errors
var (
	// ErrDuplicateRecord indicates that a record with this ID already exists.
	// Unique constraint по клиентскому ID - внешнее требование контракта:
	// на нем держится идемпотентность повторных вставок клиента.
	ErrDuplicateRecord = errors.New("record already exists")

	// ErrRecordNotFound indicates that lunch record was not found
	ErrRecordNotFound = errors.New("lunch record not found")
)
