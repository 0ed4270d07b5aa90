// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package canvas is the editable model of a design and its rasterizer.
// A Document holds the element stack in paint order (first is bottom),
// tracks a single active element and knows whether it has unsaved edits.
// Nothing is persisted automatically.
package canvas

import (
	"errors"
	"fmt"
	"slices"

	"brandstudio/internal/models"
)

// Canvas size in CSS pixels. Element percentages are relative to it.
const (
	Width  = 500
	Height = 500
)

// Document is an editable design. It is not safe for concurrent use.
type Document struct {
	elements []models.DesignElement
	brand    models.BrandSnapshot
	active   int // index into elements, -1 when nothing is selected
	dirty    bool
}

// NewDocument loads a design. The document owns a copy of the elements.
func NewDocument(d models.Design) *Document {
	return &Document{
		elements: slices.Clone(d.Elements),
		brand:    d.Brand,
		active:   -1,
	}
}

// Design returns the current state as a Design.
func (d *Document) Design() models.Design {
	return models.Design{Elements: d.Elements(), Brand: d.brand}
}

// Elements returns a copy of the element stack, bottom first.
func (d *Document) Elements() []models.DesignElement {
	out := slices.Clone(d.elements)
	if out == nil {
		out = []models.DesignElement{}
	}
	return out
}

// Brand returns the brand snapshot the design was styled with.
func (d *Document) Brand() models.BrandSnapshot { return d.brand }

// Select makes the first element with id active. Selecting is not an edit.
func (d *Document) Select(id string) bool {
	i := d.index(id)
	if i < 0 {
		return false
	}
	d.active = i
	return true
}

// Active returns the selected element.
func (d *Document) Active() (models.DesignElement, bool) {
	if d.active < 0 {
		return models.DesignElement{}, false
	}
	return d.elements[d.active], true
}

// ClearSelection deselects without changing anything else.
func (d *Document) ClearSelection() { d.active = -1 }

// Update replaces the element with the same id, keeping its position in
// the stack.
func (d *Document) Update(el models.DesignElement) bool {
	i := d.index(el.ID)
	if i < 0 {
		return false
	}
	d.elements[i] = el
	d.dirty = true
	return true
}

// BringToFront moves the element to the top of the stack.
func (d *Document) BringToFront(id string) bool {
	return d.move(id, len(d.elements)-1)
}

// SendToBack moves the element to the bottom of the stack.
func (d *Document) SendToBack(id string) bool {
	return d.move(id, 0)
}

// DeleteActive removes the selected element and clears the selection.
func (d *Document) DeleteActive() bool {
	if d.active < 0 {
		return false
	}
	d.elements = slices.Delete(d.elements, d.active, d.active+1)
	d.active = -1
	d.dirty = true
	return true
}

// Dirty reports whether there are edits since load.
func (d *Document) Dirty() bool { return d.dirty }

// Editor operations accepted by Apply.
const (
	OpSelect       = "select"
	OpDeselect     = "deselect"
	OpUpdate       = "update"
	OpBringToFront = "bringToFront"
	OpSendToBack   = "sendToBack"
	OpDelete       = "delete"
)

// ErrBadEdit is returned by Apply for an unknown or failed operation.
var ErrBadEdit = errors.New("canvas: bad edit")

// Edit is one editor action. Update uses Element and falls back to the
// active element when Element.ID is empty. Delete removes ID, or the
// active element when ID is empty.
type Edit struct {
	Op      string                `json:"op"`
	ID      string                `json:"id,omitempty"`
	Element *models.DesignElement `json:"element,omitempty"`
}

// Apply replays edits in order and stops at the first one that fails.
// Edits already applied are kept.
func (d *Document) Apply(edits []Edit) error {
	for i, e := range edits {
		var ok bool
		switch e.Op {
		case OpSelect:
			ok = d.Select(e.ID)
		case OpDeselect:
			d.ClearSelection()
			ok = true
		case OpUpdate:
			if e.Element == nil {
				break
			}
			el := *e.Element
			if el.ID == "" {
				active, has := d.Active()
				if !has {
					break
				}
				el.ID = active.ID
			}
			ok = d.Update(el)
		case OpBringToFront:
			ok = d.BringToFront(e.ID)
		case OpSendToBack:
			ok = d.SendToBack(e.ID)
		case OpDelete:
			if e.ID != "" && !d.Select(e.ID) {
				break
			}
			ok = d.DeleteActive()
		default:
			return fmt.Errorf("%w: #%d unknown op %q", ErrBadEdit, i, e.Op)
		}
		if !ok {
			return fmt.Errorf("%w: #%d %s %q", ErrBadEdit, i, e.Op, e.ID)
		}
	}
	return nil
}

func (d *Document) index(id string) int {
	return slices.IndexFunc(d.elements, func(e models.DesignElement) bool { return e.ID == id })
}

// move relocates the element to index to. The selection follows the
// element it pointed at.
func (d *Document) move(id string, to int) bool {
	from := d.index(id)
	if from < 0 {
		return false
	}
	if from == to {
		return true
	}

	el := d.elements[from]
	d.elements = slices.Delete(d.elements, from, from+1)
	d.elements = slices.Insert(d.elements, to, el)
	d.dirty = true

	switch {
	case d.active == from:
		d.active = to
	case d.active < 0:
	case from < d.active && to >= d.active:
		d.active--
	case from > d.active && to <= d.active:
		d.active++
	}
	return true
}
