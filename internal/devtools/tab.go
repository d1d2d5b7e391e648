package devtools

import "context"

// ViewType discriminates the content of a tab.
type ViewType string

const (
	// ViewLaunch shows a description and launch buttons.
	ViewLaunch ViewType = "launch"

	// ViewIframe embeds a URL.
	ViewIframe ViewType = "iframe"
)

// Action is a button of a launch view.
type Action struct {
	Label   string `json:"label"`
	Pending bool   `json:"pending"`

	// Handle runs when the button is pressed.
	Handle func(ctx context.Context) error `json:"-"`
}

// View is the content of a tab; the fields used depend on Type.
type View struct {
	Type        ViewType `json:"type"`
	Description string   `json:"description,omitempty"`
	Actions     []Action `json:"actions,omitempty"`
	Src         string   `json:"src,omitempty"`
}

// Tab is a custom devtools tab.
type Tab struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	View  View   `json:"view"`
}
