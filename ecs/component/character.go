package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/traversal"
)

// Character links an entity to its traversal controller and physical body.
type Character struct {
	Controller *traversal.Controller
	Body       traversal.Body
	// Spawn is where reset zones without their own point send the character.
	Spawn cp.Vector
	// Prefab the tuning was loaded from, for hot reload.
	Prefab string
}

var CharacterComponent = NewComponent[Character]()
