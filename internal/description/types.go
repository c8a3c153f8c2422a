// Package description builds and caches the JSON view of the gateway:
// rooms with their bulbs and selectable ambiances.
package description

// Bulb is a light-capable device as exposed in the view.
type Bulb struct {
	Name   string `json:"name"`
	Dimmer int    `json:"dimmer"`
	State  bool   `json:"state"`
	ID     string `json:"id"`
}

// Ambiance is a catalog entry for a selectable lighting preset.
type Ambiance struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Room is the view of one gateway group.
type Room struct {
	Name           string     `json:"name"`
	Bulbs          []Bulb     `json:"bulbs"`
	Ambiances      []Ambiance `json:"ambiances"`
	ID             string     `json:"id"`
	AmbianceActive string     `json:"ambiance_active"`
}

// Description is the full read model, one entry per room in the gateway's
// group order. It is always rebuilt whole, never patched.
type Description []Room
