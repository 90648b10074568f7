package tether

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Device is a raw input driver. Devices run out of band from dispatch: Poll
// only enqueues events, it never touches the routing indices or calls tools.
// The ToolSystem polls every registered device at the start of Update, then
// drains the queue.
type Device interface {
	Poll(sys *ToolSystem, now time.Time)
}

// NewDevices builds the device set described by a configuration's rawdevices
// entries. A nil cfg uses [DefaultConfig]. Unknown device names are an error;
// a configuration naming a driver this build does not have is a bug worth
// surfacing, not skipping.
func NewDevices(sys *ToolSystem, cfg *Config) ([]Device, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var keyboard *KeyboardDevice
	var mouse *MouseDevice
	var devices []Device

	for _, rd := range cfg.RawDevices {
		switch rd.Device {
		case "keyboard":
			if keyboard == nil {
				keyboard = &KeyboardDevice{}
				devices = append(devices, keyboard)
			}
			if err := keyboard.Bind(rd.Source, sys.Slot(rd.Slot)); err != nil {
				return nil, err
			}
		case "mouse":
			if mouse == nil {
				mouse = &MouseDevice{}
				devices = append(devices, mouse)
			}
			if err := mouse.Bind(rd.Source, sys.Slot(rd.Slot)); err != nil {
				return nil, err
			}
		case "timer":
			devices = append(devices, &TimerDevice{Slot: sys.Slot(rd.Slot)})
		default:
			return nil, fmt.Errorf("tether: unknown raw device %q", rd.Device)
		}
	}
	return devices, nil
}

// --- Keyboard ---

type keyBinding struct {
	key  ebiten.Key
	slot *Slot
	down bool
}

// KeyboardDevice turns keyboard keys into pressed/released slot events.
// Each bound key is edge-detected against its previous state, so holding a
// key emits exactly one AxisPressed and its release exactly one AxisOrigin.
type KeyboardDevice struct {
	bindings []keyBinding
}

// NewKeyboardDevice creates a keyboard device with the given key → slot
// table.
func NewKeyboardDevice(keys map[ebiten.Key]*Slot) *KeyboardDevice {
	d := &KeyboardDevice{}
	for k, s := range keys {
		d.bindings = append(d.bindings, keyBinding{key: k, slot: s})
	}
	return d
}

// Bind adds a key by its ebiten name ("A", "Space", "ArrowLeft", ...).
func (d *KeyboardDevice) Bind(keyName string, slot *Slot) error {
	var key ebiten.Key
	if err := key.UnmarshalText([]byte(keyName)); err != nil {
		return fmt.Errorf("tether: unknown key %q: %w", keyName, err)
	}
	d.bindings = append(d.bindings, keyBinding{key: key, slot: slot})
	return nil
}

// Poll enqueues transition events for every bound key whose state changed.
func (d *KeyboardDevice) Poll(sys *ToolSystem, now time.Time) {
	for i := range d.bindings {
		kb := &d.bindings[i]
		down := ebiten.IsKeyPressed(kb.key)
		if down == kb.down {
			continue
		}
		kb.down = down
		if down {
			sys.EnqueueAxis(kb.slot, AxisPressed)
		} else {
			sys.EnqueueAxis(kb.slot, AxisOrigin)
		}
	}
}

// --- Mouse ---

// MouseDevice turns mouse buttons into pressed/released slot events and the
// cursor position into transform events on a pointer slot.
//
// The pointer transform is a pure translation to the cursor's screen
// position; consumers needing world coordinates compose it with their
// camera's inverse view, which is outside this package's scope.
type MouseDevice struct {
	buttons []mouseButtonBinding
	pointer *Slot

	lastX, lastY int
	moved        bool // becomes true after the first Poll so X/Y 0,0 isn't "no move"
}

type mouseButtonBinding struct {
	button ebiten.MouseButton
	slot   *Slot
	down   bool
}

// Bind attaches a mouse source ("Left", "Right", "Middle", "Pointer") to a
// slot.
func (d *MouseDevice) Bind(source string, slot *Slot) error {
	switch source {
	case "Left":
		d.buttons = append(d.buttons, mouseButtonBinding{button: ebiten.MouseButtonLeft, slot: slot})
	case "Right":
		d.buttons = append(d.buttons, mouseButtonBinding{button: ebiten.MouseButtonRight, slot: slot})
	case "Middle":
		d.buttons = append(d.buttons, mouseButtonBinding{button: ebiten.MouseButtonMiddle, slot: slot})
	case "Pointer":
		d.pointer = slot
	default:
		return fmt.Errorf("tether: unknown mouse source %q", source)
	}
	return nil
}

// Poll enqueues button transitions and, when the cursor moved, one pointer
// transform event.
func (d *MouseDevice) Poll(sys *ToolSystem, now time.Time) {
	for i := range d.buttons {
		bb := &d.buttons[i]
		down := ebiten.IsMouseButtonPressed(bb.button)
		if down == bb.down {
			continue
		}
		bb.down = down
		if down {
			sys.EnqueueAxis(bb.slot, AxisPressed)
		} else {
			sys.EnqueueAxis(bb.slot, AxisOrigin)
		}
	}

	if d.pointer == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	if d.moved && x == d.lastX && y == d.lastY {
		return
	}
	d.moved = true
	d.lastX, d.lastY = x, y
	m := Identity
	m[4] = float64(x)
	m[5] = float64(y)
	sys.EnqueueTransform(d.pointer, m)
}

// --- Timer ---

// TimerDevice emits the elapsed milliseconds since system start as an
// absolute-counter axis event on every poll. Tools listening on its slot get
// one Perform per frame — the hook for time-driven behaviors.
type TimerDevice struct {
	Slot *Slot

	last int64
}

// Poll enqueues one absolute time reading when the millisecond count
// advanced since the previous poll.
func (d *TimerDevice) Poll(sys *ToolSystem, now time.Time) {
	ms := sys.Now()
	if ms == d.last {
		return
	}
	d.last = ms
	sys.EnqueueAxis(d.Slot, NewAxisStateInt(ms))
}
