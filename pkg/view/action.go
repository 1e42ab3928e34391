package view

import (
	"errors"
	"fmt"
	"strings"
)

// Action identifies what a row button does. It is declared on the button and
// parsed back from the submitted form, never inferred from its label.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

var ErrUnknownAction = errors.New("unknown action")

func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionEdit, ActionDelete:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// RowAction is a button rendered next to a listed record.
type RowAction struct {
	Action  Action
	Id      string
	Label   string
	Class   string
	Confirm string
}

// RowActions returns the edit and delete buttons for a record. confirm is
// the question asked before deleting.
func RowActions(id, confirm string) []RowAction {
	return []RowAction{
		{Action: ActionEdit, Id: id, Label: "Edit", Class: "btn btn-secondary"},
		{Action: ActionDelete, Id: id, Label: "Hapus", Class: "btn btn-danger", Confirm: confirm},
	}
}
