package models

// Notification variants
const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notification is a toast shown to the visitor on the next rendered page
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// IsDestructive reports whether the notification describes a failure
func (n Notification) IsDestructive() bool {
	return n.Variant == VariantDestructive
}
