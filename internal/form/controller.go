// Package form holds the transient input state for the expense form and
// the create/edit submit logic on top of the repository.
package form

import (
	"context"
	"strings"

	"spendlog/internal/core"
	"spendlog/internal/repo"
)

// Fields is a read-only view of the controller's current input state,
// handed to the presentation layer for rendering.
type Fields struct {
	Name      string
	Price     float64
	HasPrice  bool
	Date      string
	EditingID string
	Valid     bool
}

// Result reports what a submit did.
type Result struct {
	Submitted bool   // a repository operation ran
	Updated   bool   // it was an update (caller clears any date filter)
	ID        string // the affected record id
}

// Controller is the expense form's state machine. It starts in create
// mode: empty name, no price, date defaulted to today, no edit target.
type Controller struct {
	repository *repo.Repository

	name      string
	price     float64
	hasPrice  bool
	date      string
	editingID string

	today func() string
}

func NewController(repository *repo.Repository) *Controller {
	c := &Controller{repository: repository, today: core.Today}
	c.Reset()
	return c
}

// Reset returns the form to create-mode defaults.
func (c *Controller) Reset() {
	c.name = ""
	c.price = 0
	c.hasPrice = false
	c.date = c.today()
	c.editingID = ""
}

func (c *Controller) SetName(name string) {
	c.name = name
}

// SetPrice records the price input. Negative values are clamped to zero
// at the point of entry, so a negative amount never reaches the model.
func (c *Controller) SetPrice(price float64) {
	if price < 0 {
		price = 0
	}
	c.price = price
	c.hasPrice = true
}

func (c *Controller) ClearPrice() {
	c.price = 0
	c.hasPrice = false
}

// SetDate accepts only canonical dates; anything else leaves the field
// unchanged.
func (c *Controller) SetDate(date string) {
	if core.ValidateDate(date) == nil {
		c.date = date
	}
}

// BeginEdit switches to edit mode, pre-populating the fields from the
// repository's record with the given id. A vanished id is a no-op.
func (c *Controller) BeginEdit(id string) bool {
	rec, ok := c.repository.Get(id)
	if !ok {
		return false
	}
	c.name = rec.Name
	c.price = rec.Price
	c.hasPrice = true
	c.date = rec.Date
	c.editingID = id
	return true
}

// Editing reports whether the form is in edit mode.
func (c *Controller) Editing() bool {
	return c.editingID != ""
}

// Valid gates submission: non-empty name and a price strictly greater
// than zero.
func (c *Controller) Valid() bool {
	return strings.TrimSpace(c.name) != "" && c.hasPrice && c.price > 0
}

// Fields returns the current input state for rendering.
func (c *Controller) Fields() Fields {
	return Fields{
		Name:      c.name,
		Price:     c.price,
		HasPrice:  c.hasPrice,
		Date:      c.date,
		EditingID: c.editingID,
		Valid:     c.Valid(),
	}
}

// Submit runs the add or update against the repository when the form is
// valid, then resets to create-mode defaults regardless of outcome.
// Updated is reported so the caller can clear an active date filter and
// keep the edited record visible.
func (c *Controller) Submit(ctx context.Context) Result {
	if !c.Valid() {
		return Result{}
	}

	var res Result
	if c.editingID != "" {
		if c.repository.Update(ctx, c.editingID, c.name, c.price, c.date) {
			res = Result{Submitted: true, Updated: true, ID: c.editingID}
		}
	} else {
		id := c.repository.Add(ctx, c.name, c.price, c.date)
		res = Result{Submitted: true, ID: id}
	}

	c.Reset()
	return res
}
