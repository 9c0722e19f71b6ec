// Package policy gates account operations by caller privilege. It is a
// fixed rule table, not a general policy engine.
package policy

import (
	"github.com/tjarju/bank-users-go/errors"
	"github.com/tjarju/bank-users-go/models"
)

type Operation string

const (
	OpList    Operation = "list"
	OpGet     Operation = "get"
	OpCreate  Operation = "create"
	OpReplace Operation = "replace"
	OpPatch   Operation = "patch"
	OpDelete  Operation = "delete"
)

type level int

const (
	open level = iota
	authenticated
	admin
)

// Account self-registration is open; reads require a caller; all
// mutations of existing records are administrative.
var rules = map[Operation]level{
	OpList:    authenticated,
	OpGet:     authenticated,
	OpCreate:  open,
	OpReplace: admin,
	OpPatch:   admin,
	OpDelete:  admin,
}

// Authorize decides whether caller may perform op. A missing caller on a
// gated operation yields an authentication error; an insufficiently
// privileged caller yields a permission error, distinguishable from
// not-found.
func Authorize(op Operation, caller *models.Account) error {
	required, ok := rules[op]
	if !ok {
		return errors.NewPermissionError("unknown operation")
	}
	if required == open {
		return nil
	}
	if caller == nil {
		return errors.NewAuthenticationError("authentication required")
	}
	if required == admin && !caller.Elevated() {
		return errors.NewPermissionError("administrative privilege required")
	}
	return nil
}
