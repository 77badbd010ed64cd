package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	// Navigation
	Up   Key
	Down Key
	Back Key

	// Application
	Quit Key
	Help Key

	// Function keys for module navigation
	F1  Key
	F2  Key
	F3  Key
	F10 Key

	// Fridge view
	NextFridge Key
	Increase   Key
	Decrease   Key
	AddItem    Key
	Remove     Key

	// Recipe view
	ToggleMerged Key

	Reload Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

func key(help string, keys ...string) Key {
	return Key{Keys: keys, Help: help, Enabled: true}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:   key("up", "up", "k"),
		Down: key("down", "down", "j"),
		Back: key("back", "esc"),

		Quit: key("quit", "q", "ctrl+c"),
		Help: key("help", "?"),

		F1:  key("Help", "f1"),
		F2:  key("Fridge", "f2"),
		F3:  key("Recipes", "f3"),
		F10: key("Quit", "f10"),

		NextFridge: key("next fridge", "tab"),
		Increase:   key("increase", "+", "="),
		Decrease:   key("decrease", "-", "_"),
		AddItem:    key("add item", "n"),
		Remove:     key("remove", "x", "delete"),

		ToggleMerged: key("all fridges", "a"),

		Reload: key("reload", "r"),
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// IsQuit checks if the key message is a quit command.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg) || km.F10.Matches(msg)
}

// IsFunctionKey checks if the key message is a function key.
func (km KeyMap) IsFunctionKey(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.F1, km.F2, km.F3, km.F10)
}

// FunctionKeyModule returns the module a function key switches to.
func (km KeyMap) FunctionKeyModule(msg tea.KeyMsg) Module {
	switch {
	case km.F1.Matches(msg):
		return ModuleHelp
	case km.F2.Matches(msg):
		return ModuleFridge
	case km.F3.Matches(msg):
		return ModuleRecipes
	default:
		return ""
	}
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp(width int) string {
	if width < 60 {
		return "F1 Help F2 Fridge F3 Recipes F10 Quit"
	}
	return "[F1]Help [F2]Fridge [F3]Recipes [F10]Quit"
}
