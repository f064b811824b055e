// Package attachment loads local files destined for multipart uploads,
// such as organization logos and course covers. Oversized images are
// downscaled client-side before they travel, so a 20MP photo does not
// hit the API at full weight.
package attachment

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
)

// Attachment is a file ready to be sent as one part of a multipart
// request.
type Attachment struct {
	Filename string
	MIME     string
	Content  []byte
}

// Load reads a local file and sniffs its MIME type from the content.
func Load(path string) (*Attachment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.KindValidation, "attachment.unreadable",
			fmt.Sprintf("read %s", path))
	}
	return &Attachment{
		Filename: filepath.Base(path),
		MIME:     http.DetectContentType(content),
		Content:  content,
	}, nil
}

// LoadImage reads a local image and fits it into the given bounding
// box. Images already inside the box are kept byte-identical; larger
// ones are downscaled and re-encoded as JPEG.
func LoadImage(path string, maxWidth, maxHeight int) (*Attachment, error) {
	att, err := Load(path)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(att.Content))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.KindValidation, "attachment.unsupported_format",
			fmt.Sprintf("decode %s", path))
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth && bounds.Dy() <= maxHeight {
		return att, nil
	}

	resized := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 80}); err != nil {
		return nil, apperror.Wrap(err, apperror.KindValidation, "attachment.unsupported_format",
			fmt.Sprintf("re-encode %s %s", format, path))
	}

	return &Attachment{
		Filename: jpegName(att.Filename),
		MIME:     "image/jpeg",
		Content:  buf.Bytes(),
	}, nil
}

// FilePart binds the attachment to a form field.
func (a *Attachment) FilePart(field string) apiclient.FilePart {
	return apiclient.FilePart{
		Field:    field,
		Filename: a.Filename,
		MIME:     a.MIME,
		Content:  a.Content,
	}
}

func jpegName(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + ".jpg"
}
