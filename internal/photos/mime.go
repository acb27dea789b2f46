package photos

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var extByMimeType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
}

var allowedMimeDescription = buildAllowedMimeDescription()

func buildAllowedMimeDescription() string {
	list := make([]string, 0, len(extByMimeType))
	for value := range extByMimeType {
		list = append(list, value)
	}
	sort.Strings(list)
	return strings.Join(list, ", ")
}

// sniffMimeType inspects the leading bytes of an upload instead of trusting
// the client-declared content type.
func sniffMimeType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("photo is empty")
	}
	detected := strings.ToLower(http.DetectContentType(data))
	if mediaType, _, ok := strings.Cut(detected, ";"); ok {
		detected = strings.TrimSpace(mediaType)
	}
	if _, ok := extByMimeType[detected]; !ok {
		return "", fmt.Errorf("photo type %s is not supported, use %s", detected, allowedMimeDescription)
	}
	return detected, nil
}
