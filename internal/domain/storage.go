package domain

import "context"

// File is an uploaded archive: a poster image, a trailer still, and so on.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileStorage stores binary archives in a named container and addresses them
// by public URL. Delete is a no-op when url is empty.
type FileStorage interface {
	Store(ctx context.Context, container string, file File) (string, error)
	Delete(ctx context.Context, url, container string) error
}
