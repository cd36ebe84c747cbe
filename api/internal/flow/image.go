package flow

import (
	"aqua-bot/api/internal/aqua"
	"aqua-bot/api/internal/util"
)

// SelectedImage is an image staged in memory. It is never persisted.
type SelectedImage struct {
	DisplayURL string
	File       aqua.ImageFile
}

// SelectImage validates blob as an image. Anything that is not image/* is
// rejected, as is a jpeg, png, gif or webp whose header does not decode.
func SelectImage(blob []byte, declaredMime string) (SelectedImage, bool) {
	mime := util.PickMIME(declaredMime, blob)
	if !util.IsImageMIME(mime) {
		return SelectedImage{}, false
	}
	if extension(mime) != "" && !util.Decodable(blob) {
		return SelectedImage{}, false
	}
	return SelectedImage{
		DisplayURL: util.MakeDataURL(mime, blob),
		File: aqua.ImageFile{
			Name:  fileName(mime),
			Mime:  mime,
			Bytes: blob,
		},
	}, true
}

func extension(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ""
}

func fileName(mime string) string {
	if ext := extension(mime); ext != "" {
		return "image" + ext
	}
	return "image"
}
