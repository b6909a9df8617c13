package domain

// Theme selects the UI color scheme persisted for clients.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings holds all named user options. The zero value is NOT a valid
// configuration; use DefaultSettings and merge stored values over it.
type Settings struct {
	Theme               Theme    `json:"theme"`
	EnableNotifications bool     `json:"enableNotifications"`
	AutoFillForms       bool     `json:"autoFillForms"`
	ShowContextMenu     bool     `json:"showContextMenu"`
	DefaultCategory     Category `json:"defaultCategory"`
	EnableAnimations    bool     `json:"enableAnimations"`
	EnableLinkPreview   bool     `json:"enableLinkPreview"`
	AIEnabled           bool     `json:"aiEnabled"`
	AutoCategorize      bool     `json:"autoCategorize"`
	SmartTags           bool     `json:"smartTags"`
	HasSeenWelcome      bool     `json:"hasSeenWelcome"`
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		Theme:               ThemeLight,
		EnableNotifications: true,
		AutoFillForms:       true,
		ShowContextMenu:     true,
		DefaultCategory:     CategoryPersonal,
		EnableAnimations:    true,
		EnableLinkPreview:   true,
		AIEnabled:           true,
		AutoCategorize:      true,
		SmartTags:           true,
		HasSeenWelcome:      false,
	}
}

// SettingsPatch carries a partial settings update. Nil fields are
// left untouched by MergeSettings.
type SettingsPatch struct {
	Theme               *Theme    `json:"theme,omitempty"`
	EnableNotifications *bool     `json:"enableNotifications,omitempty"`
	AutoFillForms       *bool     `json:"autoFillForms,omitempty"`
	ShowContextMenu     *bool     `json:"showContextMenu,omitempty"`
	DefaultCategory     *Category `json:"defaultCategory,omitempty"`
	EnableAnimations    *bool     `json:"enableAnimations,omitempty"`
	EnableLinkPreview   *bool     `json:"enableLinkPreview,omitempty"`
	AIEnabled           *bool     `json:"aiEnabled,omitempty"`
	AutoCategorize      *bool     `json:"autoCategorize,omitempty"`
	SmartTags           *bool     `json:"smartTags,omitempty"`
	HasSeenWelcome      *bool     `json:"hasSeenWelcome,omitempty"`
}

// MergeSettings applies every non-nil field of patch over base and
// returns the result.
func MergeSettings(base Settings, patch SettingsPatch) Settings {
	out := base
	if patch.Theme != nil {
		out.Theme = *patch.Theme
	}
	if patch.EnableNotifications != nil {
		out.EnableNotifications = *patch.EnableNotifications
	}
	if patch.AutoFillForms != nil {
		out.AutoFillForms = *patch.AutoFillForms
	}
	if patch.ShowContextMenu != nil {
		out.ShowContextMenu = *patch.ShowContextMenu
	}
	if patch.DefaultCategory != nil {
		out.DefaultCategory = *patch.DefaultCategory
	}
	if patch.EnableAnimations != nil {
		out.EnableAnimations = *patch.EnableAnimations
	}
	if patch.EnableLinkPreview != nil {
		out.EnableLinkPreview = *patch.EnableLinkPreview
	}
	if patch.AIEnabled != nil {
		out.AIEnabled = *patch.AIEnabled
	}
	if patch.AutoCategorize != nil {
		out.AutoCategorize = *patch.AutoCategorize
	}
	if patch.SmartTags != nil {
		out.SmartTags = *patch.SmartTags
	}
	if patch.HasSeenWelcome != nil {
		out.HasSeenWelcome = *patch.HasSeenWelcome
	}
	return out
}

// Validate rejects unknown enum values in a patch before merging.
func (p *SettingsPatch) Validate() error {
	if p.Theme != nil && *p.Theme != ThemeLight && *p.Theme != ThemeDark {
		return &ValidationError{Field: "theme", Reason: "must be light or dark"}
	}
	if p.DefaultCategory != nil && !ValidCategory(*p.DefaultCategory) {
		return &ValidationError{Field: "defaultCategory", Reason: "unknown category"}
	}
	return nil
}
