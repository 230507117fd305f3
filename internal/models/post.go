package models

// StringSlice is a []string that serializes as JSON in MySQL.
type StringSlice []string

// ColorTheme is the sketch-style color of a journal entry card.
type ColorTheme string

const (
	ColorRed    ColorTheme = "red"
	ColorBlue   ColorTheme = "blue"
	ColorGreen  ColorTheme = "green"
	ColorYellow ColorTheme = "yellow"
	ColorPurple ColorTheme = "purple"

	// DefaultColorTheme is applied when a new entry carries no theme.
	DefaultColorTheme = ColorYellow

	// MaxPostImages caps embedded base64 images per entry.
	MaxPostImages = 4
)

// Valid reports whether ct is one of the five allowed themes.
func (ct ColorTheme) Valid() bool {
	switch ct {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple:
		return true
	}
	return false
}

// PostModel is a journal entry, exclusively owned by one user.
type PostModel struct {
	Base
	OwnerID    string         `json:"userId"     gorm:"index;not null"`
	Title      string         `json:"title"      gorm:"not null"`
	Content    string         `json:"content"    gorm:"type:longtext;not null"`
	Mood       string         `json:"mood,omitempty"`
	Tags       StringSlice    `json:"tags"       gorm:"type:json;serializer:json"`
	Category   string         `json:"category,omitempty"`
	Images     StringSlice    `json:"images"     gorm:"type:longtext;serializer:json"`
	AISummary  string         `json:"aiSummary,omitempty" gorm:"type:text"`
	ColorTheme ColorTheme     `json:"colorTheme" gorm:"type:varchar(16);default:yellow"`
	Comments   []CommentModel `json:"comments"   gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (PostModel) TableName() string { return "posts" }

// CommentModel is a comment embedded in a journal entry's thread.
// Any authenticated user may append one; deletion follows the two-party
// rule (comment author or entry owner).
type CommentModel struct {
	Base
	PostID         string `json:"postId"   gorm:"index;not null"`
	AuthorID       string `json:"userId"   gorm:"index;not null"`
	AuthorUsername string `json:"username" gorm:"not null"`
	Content        string `json:"content"  gorm:"type:text;not null"`
}

func (CommentModel) TableName() string { return "comments" }
