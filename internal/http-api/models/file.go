package models

// FileRef points at a file record owned by the asset resolver collaborator.
// Key is the storage path used to mint access URLs; URL is populated
// transiently at read time and never persisted.
type FileRef struct {
	ID  string `gorm:"type:uuid" json:"id,omitempty"`
	Key string `gorm:"size:300" json:"key,omitempty"`
	URL string `gorm:"-" json:"url,omitempty"`
}
