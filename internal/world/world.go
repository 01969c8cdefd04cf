package world

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed mansion.yaml
var mansionContent []byte

// ErrInvalidContent is returned when world content fails validation.
var ErrInvalidContent = errors.New("invalid world content")

// Item is something the player can carry.
type Item struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Character is a person or creature living in a room.
type Character struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	Hostile       bool   `yaml:"hostile"`
	Health        int    `yaml:"health"`
	HasRiddle     bool   `yaml:"has_riddle"`
	IsFinal       bool   `yaml:"is_final"`
	RequiresLight bool   `yaml:"requires_light"`
}

// Object is a thing lying in a room. Hidden objects are excluded from
// listings and interaction until something reveals them.
type Object struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	CanTake     bool   `yaml:"can_take"`
	Hidden      bool   `yaml:"hidden"`
	IsPuzzle    bool   `yaml:"is_puzzle"`
	RequiresKey bool   `yaml:"requires_key"`
	Rewards     []Item `yaml:"rewards,omitempty"`
}

// Visible reports whether the player can see the object.
func (o *Object) Visible() bool { return !o.Hidden }

// AsItem converts a taken object into an inventory entry.
func (o *Object) AsItem() Item {
	return Item{ID: o.ID, Name: o.Name, Description: o.Description}
}

// Exit is a directional edge to another room.
type Exit struct {
	Direction string `yaml:"direction"`
	To        string `yaml:"to"`
}

// Room is a node of the mansion graph.
type Room struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Exits       []Exit       `yaml:"exits"`
	Characters  []*Character `yaml:"characters"`
	Objects     []*Object    `yaml:"objects"`
}

// Exit returns the destination for direction, if the room has such an exit.
func (r *Room) Exit(direction string) (string, bool) {
	for _, e := range r.Exits {
		if e.Direction == direction {
			return e.To, true
		}
	}
	return "", false
}

// Character finds a character in the room by id.
func (r *Room) Character(id string) *Character {
	for _, c := range r.Characters {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Object finds an object in the room by id, hidden or not.
func (r *Room) Object(id string) *Object {
	for _, o := range r.Objects {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// RemoveCharacter drops the character with the given id from the room.
func (r *Room) RemoveCharacter(id string) {
	r.Characters = slices.DeleteFunc(r.Characters, func(c *Character) bool { return c.ID == id })
}

// RemoveObject drops the object with the given id from the room.
func (r *Room) RemoveObject(id string) {
	r.Objects = slices.DeleteFunc(r.Objects, func(o *Object) bool { return o.ID == id })
}

// Reveal makes a hidden object visible. It reports whether the object exists.
func (r *Room) Reveal(id string) bool {
	o := r.Object(id)
	if o == nil {
		return false
	}
	o.Hidden = false
	return true
}

// VisibleObjects returns the objects the player can see, in room order.
func (r *Room) VisibleObjects() []*Object {
	var out []*Object
	for _, o := range r.Objects {
		if o.Visible() {
			out = append(out, o)
		}
	}
	return out
}

// World is the mansion: every room keyed by id.
type World struct {
	Start string
	Rooms map[string]*Room
	order []string
}

// Room returns the room with the given id, or nil.
func (w *World) Room(id string) *Room {
	return w.Rooms[id]
}

// RoomIDs lists room ids in declaration order.
func (w *World) RoomIDs() []string {
	return slices.Clone(w.order)
}

type document struct {
	Start string  `yaml:"start"`
	Rooms []*Room `yaml:"rooms"`
}

// Parse decodes and validates world content.
func Parse(data []byte) (*World, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse world YAML: %w", err)
	}

	w := &World{
		Start: doc.Start,
		Rooms: make(map[string]*Room, len(doc.Rooms)),
	}
	entities := make(map[string]string)
	for _, room := range doc.Rooms {
		if room == nil {
			return nil, fmt.Errorf("%w: empty room entry", ErrInvalidContent)
		}
		if room.ID == "" {
			return nil, fmt.Errorf("%w: room without id", ErrInvalidContent)
		}
		if _, dup := w.Rooms[room.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate room %q", ErrInvalidContent, room.ID)
		}
		for _, c := range room.Characters {
			if c == nil {
				return nil, fmt.Errorf("%w: empty character entry in %s", ErrInvalidContent, room.ID)
			}
			if prev, dup := entities[c.ID]; dup {
				return nil, fmt.Errorf("%w: entity %q in %s and %s", ErrInvalidContent, c.ID, prev, room.ID)
			}
			entities[c.ID] = room.ID
		}
		for _, o := range room.Objects {
			if o == nil {
				return nil, fmt.Errorf("%w: empty object entry in %s", ErrInvalidContent, room.ID)
			}
			if prev, dup := entities[o.ID]; dup {
				return nil, fmt.Errorf("%w: entity %q in %s and %s", ErrInvalidContent, o.ID, prev, room.ID)
			}
			entities[o.ID] = room.ID
		}
		w.Rooms[room.ID] = room
		w.order = append(w.order, room.ID)
	}

	if _, ok := w.Rooms[w.Start]; !ok {
		return nil, fmt.Errorf("%w: unknown start room %q", ErrInvalidContent, w.Start)
	}
	for _, room := range w.Rooms {
		for _, e := range room.Exits {
			if _, ok := w.Rooms[e.To]; !ok {
				return nil, fmt.Errorf("%w: exit %s from %s leads to unknown room %q", ErrInvalidContent, e.Direction, room.ID, e.To)
			}
		}
	}
	return w, nil
}

// Default builds a fresh copy of the mansion. Each call decodes the embedded
// content again, so no two worlds share entities.
func Default() *World {
	w, err := Parse(mansionContent)
	if err != nil {
		panic(fmt.Sprintf("embedded mansion content: %v", err))
	}
	return w
}
