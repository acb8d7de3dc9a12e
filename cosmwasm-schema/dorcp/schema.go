// Package dorcp holds the message schema of the Dorium community proposal (DORCP) escrow contract.
//
// Proposals are escrows keyed by a human-readable id. Validators assigned at creation approve the
// escrow (funds go to the proposer) or refund it (funds go back to the source).
package dorcp

import (
	"encoding/json"
	"errors"
	"fmt"

	cosmwasmschema "github.com/dorium/dorium-contracts/cosmwasm-schema"
)

var ErrInvalidID = errors.New("invalid proposal id")

const (
	MinIDLength = 3
	MaxIDLength = 20
)

func (r *InstantiateMsg) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *ExecuteMsg) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *QueryMsg) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

type InstantiateMsg struct {
}

type ExecuteMsg struct {
	Create       *Create       `json:"create,omitempty"`
	Approve      *Approve      `json:"approve,omitempty"`
	Refund       *Refund       `json:"refund,omitempty"`
	TopUp        *TopUp        `json:"top_up,omitempty"`
	SetStatus    *SetStatus    `json:"set_status,omitempty"`
	AddValidator *AddValidator `json:"add_validator,omitempty"`
	RmValidator  *RmValidator  `json:"rm_validator,omitempty"`
}

func (r *ExecuteMsg) Validate() error {
	selector, err := cosmwasmschema.Variant(r)
	if err != nil {
		return err
	}

	switch {
	case r.Create != nil:
		if err := validateID(selector, r.Create.ID); err != nil {
			return err
		}
		if err := cosmwasmschema.Require(selector, "proposer", r.Create.Proposer, "source", r.Create.Source); err != nil {
			return err
		}
		if len(r.Create.Validators) == 0 {
			return fmt.Errorf("%w: %s.validators", cosmwasmschema.ErrMissingField, selector)
		}
	case r.Approve != nil:
		return cosmwasmschema.Require(selector, "id", r.Approve.ID)
	case r.Refund != nil:
		return cosmwasmschema.Require(selector, "id", r.Refund.ID)
	case r.TopUp != nil:
		return cosmwasmschema.Require(selector, "id", r.TopUp.ID)
	case r.SetStatus != nil:
		if err := cosmwasmschema.Require(selector, "id", r.SetStatus.ID); err != nil {
			return err
		}
		if _, err := cosmwasmschema.Variant(&r.SetStatus.Status); err != nil {
			return fmt.Errorf("%s.status: %w", selector, err)
		}
	case r.AddValidator != nil:
		return cosmwasmschema.Require(selector, "id", r.AddValidator.ID, "addr", r.AddValidator.Addr)
	case r.RmValidator != nil:
		return cosmwasmschema.Require(selector, "id", r.RmValidator.ID, "addr", r.RmValidator.Addr)
	}
	return nil
}

func validateID(selector, id string) error {
	if err := cosmwasmschema.Require(selector, "id", id); err != nil {
		return err
	}
	if len(id) < MinIDLength || len(id) > MaxIDLength {
		return fmt.Errorf("%w: %s.id must be %d-%d bytes, got %d", ErrInvalidID, selector, MinIDLength, MaxIDLength, len(id))
	}
	return nil
}

// Create opens a new escrow. Native funds sent with the message become its initial balance.
type Create struct {
	ID            string   `json:"id"`
	Description   string   `json:"description"`
	Proposer      string   `json:"proposer"`
	Source        string   `json:"source"`
	Validators    []string `json:"validators"`
	Cw20Whitelist []string `json:"cw20_whitelist,omitempty"`
	URL           string   `json:"url,omitempty"`
}

type Approve struct {
	ID string `json:"id"`
}

type Refund struct {
	ID string `json:"id"`
}

type TopUp struct {
	ID string `json:"id"`
}

type SetStatus struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

type AddValidator struct {
	ID   string `json:"id"`
	Addr string `json:"addr"`
}

type RmValidator struct {
	ID   string `json:"id"`
	Addr string `json:"addr"`
}

// Status is tagged with the contract's variant names, e.g. {"InProgress":{}}. String and
// ParseStatus use the snake_case selectors of the command line.
type Status struct {
	Opened     *Opened     `json:"Opened,omitempty"`
	InProgress *InProgress `json:"InProgress,omitempty"`
	Canceled   *Canceled   `json:"Canceled,omitempty"`
	Completed  *Completed  `json:"Completed,omitempty"`
}

type Opened struct {
}

type InProgress struct {
}

type Canceled struct {
}

type Completed struct {
}

// ParseStatus maps a selector such as "in_progress" to its Status variant.
func ParseStatus(selector string) (Status, error) {
	switch selector {
	case "opened":
		return Status{Opened: &Opened{}}, nil
	case "in_progress":
		return Status{InProgress: &InProgress{}}, nil
	case "canceled":
		return Status{Canceled: &Canceled{}}, nil
	case "completed":
		return Status{Completed: &Completed{}}, nil
	}
	return Status{}, fmt.Errorf("%w: unknown status %q", cosmwasmschema.ErrNoVariant, selector)
}

// String returns the selector of the status, or "unknown".
func (s Status) String() string {
	if _, err := cosmwasmschema.Variant(&s); err != nil {
		return "unknown"
	}
	switch {
	case s.Opened != nil:
		return "opened"
	case s.InProgress != nil:
		return "in_progress"
	case s.Canceled != nil:
		return "canceled"
	}
	return "completed"
}

type QueryMsg struct {
	Details *Details `json:"details,omitempty"`
	List    *List    `json:"list,omitempty"`
}

func (r *QueryMsg) Validate() error {
	selector, err := cosmwasmschema.Variant(r)
	if err != nil {
		return err
	}
	if r.Details != nil {
		return cosmwasmschema.Require(selector, "id", r.Details.ID)
	}
	return nil
}

type Details struct {
	ID string `json:"id"`
}

type List struct {
}

type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type Cw20Coin struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

type DetailsResponse struct {
	ID            string     `json:"id"`
	URL           string     `json:"url"`
	Description   string     `json:"description"`
	Validators    []string   `json:"validators"`
	Proposer      string     `json:"proposer"`
	Source        string     `json:"source"`
	NativeBalance []Coin     `json:"native_balance"`
	Cw20Balance   []Cw20Coin `json:"cw20_balance"`
	Cw20Whitelist []string   `json:"cw20_whitelist"`
	Status        Status     `json:"status"`
}

type ListResponse struct {
	Escrows []string `json:"escrows"`
}
