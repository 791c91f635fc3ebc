package models

import "time"

// Lockfile is the stored snapshot record, one per repository.
type Lockfile struct {
	// ID is a server-assigned UUID.
	ID string `gorm:"primaryKey;size:36"`
	// RepositoryID is the client-supplied key, unique per record.
	RepositoryID   string `gorm:"uniqueIndex;size:128"`
	RepositoryName string `gorm:"size:255"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	// Posts is replaced wholesale on every write.
	Posts []Post `gorm:"foreignKey:LockfileID;constraint:OnDelete:CASCADE"`
}

// Post is one published-document entry within a lockfile.
type Post struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	LockfileID string `gorm:"index;size:36"`
	// RemoteID is the publishing platform's id for the post.
	RemoteID string `gorm:"size:128"`
	Path     string `gorm:"size:512"`
	Hash     string `gorm:"size:64"`
	URL      string `gorm:"size:512"`
}
