package models

import (
	"errors"
)

var (
	ErrGeneral               = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound      = errors.New("there is no")
	ErrSnapshotNameNotUnique = errors.New("the snapshot name must be unique for the resource")
	ErrSnapshotNameEmpty     = errors.New("the snapshot name must not be empty")
	ErrSnapshotCorrupt       = errors.New("the snapshot does not describe a valid ledger")
)
