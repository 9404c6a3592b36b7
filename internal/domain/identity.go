package domain

// SummaryLength is the user's preferred summary size.
type SummaryLength string

const (
	SummaryShort  SummaryLength = "short"
	SummaryMedium SummaryLength = "medium"
	SummaryLong   SummaryLength = "long"
)

// Theme is the user's preferred colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Identity is the authenticated user record held by the session store.
// Its JSON form is the persisted session record.
type Identity struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Avatar      string      `json:"avatar,omitempty"`
	Preferences Preferences `json:"preferences"`
}

// Preferences groups per-user settings.
type Preferences struct {
	FavoriteCategories []Category    `json:"favoriteCategories"`
	SummaryLength      SummaryLength `json:"summaryLength"`
	Theme              Theme         `json:"theme"`
}

// Credentials is the login/signup input. Password is accepted but never
// inspected by the mock backend.
type Credentials struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"-"`
	Name     string `json:"name" validate:"max=100"`
}
