// Package lualibs embeds the bundled pure-Lua libraries that the API
// bridge merges into the pesto root table. Each library is a single
// chunk evaluating to a table; the bridge binds the table under the
// library's fixed key.
package lualibs

import _ "embed"

//go:embed collision.lua
var collisionSource string

//go:embed object.lua
var objectSource string

//go:embed tween.lua
var tweenSource string

//go:embed inspect.lua
var inspectSource string

//go:embed json.lua
var jsonSource string

//go:embed utils.lua
var utilsSource string

//go:embed timer.lua
var timerSource string

//go:embed ecs.lua
var ecsSource string

// Library is one bundled Lua library.
type Library struct {
	// Key is the field name under the pesto root table.
	Key string
	// Name is the chunk name used for error-message attribution.
	Name string
	// Source is the library's Lua source text.
	Source string
}

// All returns every bundled library in load order. The order is fixed so
// the namespace shape is deterministic and snapshot-testable.
func All() []Library {
	return []Library{
		{Key: "collision", Name: "collision.lua", Source: collisionSource},
		{Key: "Object", Name: "object.lua", Source: objectSource},
		{Key: "tween", Name: "tween.lua", Source: tweenSource},
		{Key: "inspect", Name: "inspect.lua", Source: inspectSource},
		{Key: "json", Name: "json.lua", Source: jsonSource},
		{Key: "utils", Name: "utils.lua", Source: utilsSource},
		{Key: "timer", Name: "timer.lua", Source: timerSource},
		{Key: "ecs", Name: "ecs.lua", Source: ecsSource},
	}
}
