package service

import "io"

// Upload is a file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

func (u *Upload) present() bool {
	return u != nil && u.Filename != "" && u.Content != nil
}
