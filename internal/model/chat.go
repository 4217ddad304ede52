package model

// VisibleValue is the editor-screen snapshot the WordPress plugin sends along
// with a chat turn. It is only ever folded into the model context, never
// persisted.
type VisibleValue struct {
	OrganizationName string `json:"organization_name"`
	AboutPress       string `json:"about_press"`
	PressDate        string `json:"press_date"`
	Article          string `json:"article"`
	Result           string `json:"result"`
}
