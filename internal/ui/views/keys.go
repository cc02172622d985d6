package views

import (
	"github.com/charmbracelet/bubbles/key"

	"drr/internal/ui/input/types"
)

// KeyMap is the set of key bindings shown for one screen. It implements
// help.KeyMap so the footer can be rendered by the bubbles help model.
type KeyMap struct {
	Title    string
	Bindings []key.Binding
	Global   []key.Binding
}

// ShortHelp returns the screen bindings for the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return k.Bindings
}

// FullHelp returns the screen bindings followed by the global ones
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.Bindings, k.Global}
}

func bind(keys string, desc string, alias ...string) key.Binding {
	return key.NewBinding(key.WithKeys(append([]string{keys}, alias...)...), key.WithHelp(keys, desc))
}

func globalKeys(superuser bool) []key.Binding {
	keys := []key.Binding{
		bind("↑/↓", "move", "j", "k"),
		bind("tab", "next screen"),
		bind("D", "domains"),
		bind("I", "integrations"),
	}
	if superuser {
		keys = append(keys, bind("U", "users"))
	}
	return append(keys,
		bind("r", "refresh"),
		bind("x", "dismiss banner"),
		bind("L", "log out"),
		bind("?", "help"),
		bind("q", "quit"),
	)
}

// KeysFor returns the bindings that apply to a screen
func KeysFor(screen types.Screen, superuser bool) KeyMap {
	km := KeyMap{Title: screen.String(), Global: globalKeys(superuser)}
	switch screen {
	case types.ScreenDomains:
		km.Bindings = []key.Binding{
			bind("1-7", "sort column"),
			bind("/", "filter"),
			bind("p", "page size"),
			bind("h/l", "page"),
			bind("enter", "details"),
			bind("c", "re-check"),
		}
		if superuser {
			km.Bindings = append(km.Bindings,
				bind("a", "add domain"),
				bind("s", "add SSL"),
				bind("d", "delete"),
			)
		}
	case types.ScreenIntegrations:
		km.Bindings = []key.Binding{
			bind("h/l", "platform"),
			bind("o", "connect"),
			bind("c", "pick channels"),
			bind("b", "invite bot"),
			bind("t", "test"),
			bind("v", "verify"),
			bind("d", "delete"),
		}
	case types.ScreenUsers:
		km.Bindings = []key.Binding{
			bind("a", "add user"),
			bind("v", "resend verification"),
			bind("S", "toggle superuser"),
			bind("V", "verified only"),
			bind("d", "delete"),
		}
	default:
		km.Global = nil
		km.Bindings = []key.Binding{
			bind("tab", "next field"),
			bind("enter", "submit"),
			bind("esc", "back"),
		}
		if screen == types.ScreenSignIn {
			km.Bindings = append(km.Bindings,
				bind("ctrl+r", "register"),
				bind("ctrl+f", "forgot password"),
				bind("ctrl+t", "reset with token"),
				bind("ctrl+c", "quit"),
			)
		}
	}
	return km
}

// PickerKeys returns the bindings of the channel picker
func PickerKeys() KeyMap {
	return KeyMap{Title: "Channel picker", Bindings: []key.Binding{
		bind("space", "toggle", "x"),
		bind("c", "clear"),
		bind("enter", "add channels"),
		bind("esc", "close", "q"),
	}}
}
