package util

import "strings"

// AcceptEncoding is a parsed Accept-Encoding request header.
type AcceptEncoding struct {
	codings map[string]bool
}

func ParseAcceptEncoding(acceptEncoding string) *AcceptEncoding {
	a := &AcceptEncoding{codings: make(map[string]bool)}
	for _, v := range strings.Split(acceptEncoding, ",") {
		coding, params, _ := strings.Cut(v, ";")
		coding = strings.ToLower(strings.TrimSpace(coding))
		if coding == "" {
			continue
		}
		a.codings[coding] = strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return a
}

// IsAccept reports whether encoding is listed and not refused with q=0.
func (a *AcceptEncoding) IsAccept(encoding string) bool {
	encoding = strings.ToLower(encoding)
	if encoding == "" {
		return false
	}
	if ok, listed := a.codings[encoding]; listed {
		return ok
	}
	return a.codings["*"]
}
