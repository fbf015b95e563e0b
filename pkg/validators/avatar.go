package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNoFile              = errors.New("no file provided")
	ErrFileTypeUnsupported = errors.New("unsupported file type")
)

// AvatarValidator checks that the uploaded file really is an image and
// returns it opened and rewound, along with the detected MIME type.
func AvatarValidator(fh *multipart.FileHeader) (multipart.File, string, error) {
	if fh == nil {
		return nil, "", ErrNoFile
	}

	// Check the header first which is easy to spoof, but faster for
	// legit clients
	if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return nil, "", ErrFileTypeUnsupported
	}

	// And now sniff the actual bytes to catch malicious clients
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, "", err
	}

	if !strings.HasPrefix(mime.String(), "image/") {
		f.Close()
		return nil, "", ErrFileTypeUnsupported
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, "", err
	}

	return f, mime.String(), nil
}
